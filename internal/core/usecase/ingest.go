package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/core/ports"
)

type IngestDocumentUseCase struct {
	repo    ports.UploadRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewIngestDocumentUseCase(
	repo ports.UploadRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

// Upload stores the source bytes, records the upload with its submission
// sequence and publishes it for asynchronous extraction. Unsupported formats
// are refused before anything is stored.
func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.Upload, error) {
	if _, err := domain.ClassifyFormat(mimeType, filename); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	upload := &domain.Upload{
		ID:          id,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: storageKey,
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, upload); err != nil {
		_ = uc.storage.Delete(context.WithoutCancel(ctx), storageKey)
		return nil, fmt.Errorf("create upload record: %w", err)
	}

	if err := uc.queue.PublishDocumentUploaded(ctx, upload.ID, upload.Sequence); err != nil {
		cleanup := context.WithoutCancel(ctx)
		_ = uc.repo.UpdateStatus(cleanup, upload.ID, domain.StatusFailed, domain.UserMessage(err))
		_ = uc.storage.Delete(cleanup, storageKey)
		return nil, fmt.Errorf("publish upload event: %w", err)
	}

	return upload, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == ".." {
		return "document.bin"
	}
	return base
}
