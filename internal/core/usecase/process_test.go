package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

type statusCall struct {
	status domain.UploadStatus
	errMsg string
}

type processRepoFake struct {
	upload        *domain.Upload
	getErr        error
	saveErr       error
	statusErr     error
	failStatusErr error
	statusCalls   []statusCall
	saved         *domain.ExtractedText
}

func (f *processRepoFake) Create(context.Context, *domain.Upload) error { return nil }

func (f *processRepoFake) GetByID(context.Context, string) (*domain.Upload, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyUpload := *f.upload
	return &copyUpload, nil
}

func (f *processRepoFake) UpdateStatus(_ context.Context, _ string, status domain.UploadStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	if status == domain.StatusFailed && f.failStatusErr != nil {
		return f.failStatusErr
	}
	if f.statusErr != nil {
		return f.statusErr
	}
	return nil
}

func (f *processRepoFake) SaveExtraction(_ context.Context, _ string, text domain.ExtractedText) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = &text
	return nil
}

type storageFake struct {
	objects map[string]string
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.objects[key] = string(raw)
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	body, ok := f.objects[key]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (f *storageFake) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

type textExtractionFake struct {
	got  domain.Document
	text domain.ExtractedText
	err  error
}

func (f *textExtractionFake) Extract(_ context.Context, doc domain.Document) (domain.ExtractedText, error) {
	f.got = doc
	if f.err != nil {
		return domain.ExtractedText{}, f.err
	}
	return f.text, nil
}

func newProcessFixture() (*processRepoFake, *storageFake) {
	repo := &processRepoFake{upload: &domain.Upload{
		ID:          "up-1",
		Filename:    "notes.txt",
		MimeType:    "text/plain",
		StoragePath: "up-1_notes.txt",
	}}
	storage := &storageFake{objects: map[string]string{"up-1_notes.txt": "photosynthesis"}}
	return repo, storage
}

func TestProcessByIDSuccess(t *testing.T) {
	repo, storage := newProcessFixture()
	extraction := &textExtractionFake{text: domain.ExtractedText{Text: "photosynthesis", SourceFormat: domain.TagPlain}}
	uc := NewProcessDocumentUseCase(repo, storage, extraction)

	if err := uc.ProcessByID(context.Background(), "up-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if string(extraction.got.Bytes) != "photosynthesis" || extraction.got.FileName != "notes.txt" {
		t.Fatalf("unexpected document passed to extraction: %+v", extraction.got)
	}
	if repo.saved == nil || repo.saved.Text != "photosynthesis" {
		t.Fatalf("expected extraction to be saved, got %+v", repo.saved)
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected 2 status calls, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[0].status != domain.StatusProcessing || repo.statusCalls[1].status != domain.StatusReady {
		t.Fatalf("unexpected status flow: %+v", repo.statusCalls)
	}
}

func TestProcessByIDMarksFailedWithUserMessage(t *testing.T) {
	repo, storage := newProcessFixture()
	extraction := &textExtractionFake{err: &domain.ExtractionError{Format: domain.FormatPDF, Cause: errors.New("xref table broken")}}
	uc := NewProcessDocumentUseCase(repo, storage, extraction)

	err := uc.ProcessByID(context.Background(), "up-1")
	if !errors.Is(err, domain.ErrExtractionFailure) {
		t.Fatalf("expected extraction failure, got %v", err)
	}
	last := repo.statusCalls[len(repo.statusCalls)-1]
	if last.status != domain.StatusFailed {
		t.Fatalf("expected failed status, got %s", last.status)
	}
	if strings.Contains(last.errMsg, "xref") {
		t.Fatalf("internal detail leaked into status message: %q", last.errMsg)
	}
	if last.errMsg != domain.UserMessage(err) {
		t.Fatalf("expected user message %q, got %q", domain.UserMessage(err), last.errMsg)
	}
}

func TestProcessByIDMissingSource(t *testing.T) {
	repo, _ := newProcessFixture()
	uc := NewProcessDocumentUseCase(repo, &storageFake{objects: map[string]string{}}, &textExtractionFake{})

	err := uc.ProcessByID(context.Background(), "up-1")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestProcessByIDSaveFailureMarksFailed(t *testing.T) {
	repo, storage := newProcessFixture()
	repo.saveErr = errors.New("disk full")
	uc := NewProcessDocumentUseCase(repo, storage, &textExtractionFake{text: domain.ExtractedText{Text: "x"}})

	err := uc.ProcessByID(context.Background(), "up-1")
	if err == nil || !strings.Contains(err.Error(), "save extraction") {
		t.Fatalf("expected save error, got %v", err)
	}
	if repo.statusCalls[len(repo.statusCalls)-1].status != domain.StatusFailed {
		t.Fatalf("expected failed status, got %+v", repo.statusCalls)
	}
}

func TestProcessByIDReturnsCombinedErrorWhenMarkFailedFails(t *testing.T) {
	repo, storage := newProcessFixture()
	repo.failStatusErr = errors.New("status write failed")
	uc := NewProcessDocumentUseCase(repo, storage, &textExtractionFake{err: errors.New("boom")})

	err := uc.ProcessByID(context.Background(), "up-1")
	if err == nil || !strings.Contains(err.Error(), "mark failed status") {
		t.Fatalf("expected combined error, got %v", err)
	}
}

func TestProcessByIDProcessingStatusError(t *testing.T) {
	repo, storage := newProcessFixture()
	repo.statusErr = domain.ErrDocumentNotFound
	uc := NewProcessDocumentUseCase(repo, storage, &textExtractionFake{})

	err := uc.ProcessByID(context.Background(), "up-1")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
