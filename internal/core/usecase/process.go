package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	repo       ports.UploadRepository
	storage    ports.ObjectStorage
	extraction ports.TextExtraction
}

func NewProcessDocumentUseCase(
	repo ports.UploadRepository,
	storage ports.ObjectStorage,
	extraction ports.TextExtraction,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:       repo,
		storage:    storage,
		extraction: extraction,
	}
}

// ProcessByID extracts the text of a stored upload. On failure the upload is
// marked failed with the user-facing message for the error category.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, uploadID string) error {
	if err := uc.markStatus(ctx, uploadID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	text, err := uc.processPipeline(ctx, uploadID)
	if err != nil {
		if failErr := uc.markFailed(ctx, uploadID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveExtraction(ctx, uploadID, text); err != nil {
		err = fmt.Errorf("save extraction: %w", err)
		if failErr := uc.markFailed(ctx, uploadID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, uploadID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, uploadID string) (domain.ExtractedText, error) {
	upload, err := uc.repo.GetByID(ctx, uploadID)
	if err != nil {
		return domain.ExtractedText{}, fmt.Errorf("fetch upload by id: %w", err)
	}

	raw, err := uc.readSource(ctx, upload.StoragePath)
	if err != nil {
		return domain.ExtractedText{}, err
	}

	return uc.extraction.Extract(ctx, domain.Document{
		Bytes:    raw,
		MimeType: upload.MimeType,
		FileName: upload.Filename,
	})
}

func (uc *ProcessDocumentUseCase) readSource(ctx context.Context, key string) ([]byte, error) {
	rc, err := uc.storage.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return raw, nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, uploadID string, status domain.UploadStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, uploadID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, uploadID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(context.WithoutCancel(ctx), uploadID, domain.StatusFailed, domain.UserMessage(processErr))
}
