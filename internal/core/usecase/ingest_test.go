package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

type ingestRepoFake struct {
	created     *domain.Upload
	err         error
	nextSeq     int64
	statusCalls []statusCall
}

func (f *ingestRepoFake) Create(_ context.Context, upload *domain.Upload) error {
	if f.err != nil {
		return f.err
	}
	f.nextSeq++
	upload.Sequence = f.nextSeq
	copyUpload := *upload
	f.created = &copyUpload
	return nil
}

func (f *ingestRepoFake) GetByID(context.Context, string) (*domain.Upload, error) {
	return nil, errors.New("not implemented")
}

func (f *ingestRepoFake) UpdateStatus(_ context.Context, _ string, status domain.UploadStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	return nil
}

func (f *ingestRepoFake) SaveExtraction(context.Context, string, domain.ExtractedText) error {
	return errors.New("not implemented")
}

type ingestStorageFake struct {
	savedKey   string
	savedBody  string
	deletedKey string
	err        error
}

func (f *ingestStorageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	return nil
}

func (f *ingestStorageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.savedBody)), nil
}

func (f *ingestStorageFake) Delete(_ context.Context, key string) error {
	f.deletedKey = key
	return nil
}

type ingestQueueFake struct {
	uploadID string
	sequence int64
	err      error
}

func (f *ingestQueueFake) PublishDocumentUploaded(_ context.Context, uploadID string, sequence int64) error {
	if f.err != nil {
		return f.err
	}
	f.uploadID = uploadID
	f.sequence = sequence
	return nil
}

func (f *ingestQueueFake) SubscribeDocumentUploaded(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

func TestIngestUploadSuccess(t *testing.T) {
	repo := &ingestRepoFake{}
	storage := &ingestStorageFake{}
	queue := &ingestQueueFake{}
	uc := NewIngestDocumentUseCase(repo, storage, queue)

	upload, err := uc.Upload(context.Background(), "report 1.txt", "text/plain", bytes.NewBufferString("hello"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if upload.ID == "" {
		t.Fatalf("expected upload id")
	}
	if upload.Status != domain.StatusUploaded {
		t.Fatalf("expected status uploaded, got %s", upload.Status)
	}
	if repo.created == nil {
		t.Fatalf("expected repo.Create call")
	}
	if queue.uploadID != upload.ID {
		t.Fatalf("expected queued upload id %s, got %s", upload.ID, queue.uploadID)
	}
	if queue.sequence != 1 || upload.Sequence != 1 {
		t.Fatalf("expected sequence 1 to be published, got queue=%d upload=%d", queue.sequence, upload.Sequence)
	}
	if !strings.HasSuffix(storage.savedKey, "_report_1.txt") {
		t.Fatalf("expected sanitized key suffix, got %s", storage.savedKey)
	}
	if storage.savedBody != "hello" {
		t.Fatalf("expected saved body hello, got %s", storage.savedBody)
	}
}

func TestIngestUploadSequenceIncreases(t *testing.T) {
	repo := &ingestRepoFake{}
	queue := &ingestQueueFake{}
	uc := NewIngestDocumentUseCase(repo, &ingestStorageFake{}, queue)

	first, err := uc.Upload(context.Background(), "a.pdf", "application/pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	second, err := uc.Upload(context.Background(), "b.pdf", "application/pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if second.Sequence <= first.Sequence {
		t.Fatalf("expected increasing sequence, got %d then %d", first.Sequence, second.Sequence)
	}
}

func TestIngestUploadRejectsUnsupportedFormat(t *testing.T) {
	storage := &ingestStorageFake{}
	uc := NewIngestDocumentUseCase(&ingestRepoFake{}, storage, &ingestQueueFake{})

	_, err := uc.Upload(context.Background(), "photo.png", "image/png", strings.NewReader("png"))
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if storage.savedKey != "" {
		t.Fatalf("expected nothing stored, got %s", storage.savedKey)
	}
}

func TestIngestUploadRepoErrorRemovesStoredObject(t *testing.T) {
	storage := &ingestStorageFake{}
	uc := NewIngestDocumentUseCase(&ingestRepoFake{err: errors.New("db down")}, storage, &ingestQueueFake{})

	_, err := uc.Upload(context.Background(), "notes.txt", "", strings.NewReader("hello"))
	if err == nil || !strings.Contains(err.Error(), "create upload record") {
		t.Fatalf("expected create error, got %v", err)
	}
	if storage.deletedKey != storage.savedKey {
		t.Fatalf("expected stored object %q to be deleted, got %q", storage.savedKey, storage.deletedKey)
	}
}

func TestIngestUploadQueueError(t *testing.T) {
	repo := &ingestRepoFake{}
	storage := &ingestStorageFake{}
	queue := &ingestQueueFake{err: domain.WrapError(domain.ErrTemporary, "publish", errors.New("queue down"))}
	uc := NewIngestDocumentUseCase(repo, storage, queue)

	_, err := uc.Upload(context.Background(), "report.txt", "text/plain", bytes.NewBufferString("hello"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "publish upload event") {
		t.Fatalf("expected publish error, got %v", err)
	}
	if len(repo.statusCalls) != 1 || repo.statusCalls[0].status != domain.StatusFailed {
		t.Fatalf("expected upload marked failed, got %+v", repo.statusCalls)
	}
	if storage.deletedKey == "" {
		t.Fatalf("expected stored object to be deleted")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"report 1.txt":         "report_1.txt",
		"../../etc/passwd":     "passwd",
		`C:\docs\Lecture.pptx`: "Lecture.pptx",
		"":                     "document.bin",
		"конспект.pdf":         "________.pdf",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
