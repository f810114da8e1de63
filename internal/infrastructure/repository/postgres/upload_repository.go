package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

type UploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Create inserts the upload and fills in its database-assigned sequence.
func (r *UploadRepository) Create(ctx context.Context, upload *domain.Upload) error {
	row := r.db.QueryRowContext(ctx, `
INSERT INTO uploads (id, filename, mime_type, storage_path, status, error_message, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING sequence
`, upload.ID, upload.Filename, upload.MimeType, upload.StoragePath, string(upload.Status), upload.Error, upload.CreatedAt, upload.UpdatedAt)

	if err := row.Scan(&upload.Sequence); err != nil {
		return fmt.Errorf("insert upload: %w", err)
	}
	return nil
}

func (r *UploadRepository) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, sequence, filename, mime_type, storage_path, source_format, extracted_text, status, error_message, created_at, updated_at
FROM uploads
WHERE id = $1
`, id)

	var (
		upload       domain.Upload
		sourceFormat string
		status       string
	)
	err := row.Scan(
		&upload.ID, &upload.Sequence, &upload.Filename, &upload.MimeType, &upload.StoragePath,
		&sourceFormat, &upload.ExtractedText, &status, &upload.Error, &upload.CreatedAt, &upload.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get upload by id", err)
	}
	if err != nil {
		return nil, fmt.Errorf("get upload by id: %w", err)
	}
	upload.SourceFormat = domain.FormatTag(sourceFormat)
	upload.Status = domain.UploadStatus(status)
	return &upload, nil
}

func (r *UploadRepository) UpdateStatus(ctx context.Context, id string, status domain.UploadStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE uploads
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update upload status: %w", err)
	}
	return requireAffected(result, domain.ErrDocumentNotFound, "update upload status")
}

func (r *UploadRepository) SaveExtraction(ctx context.Context, id string, text domain.ExtractedText) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE uploads
SET source_format = $2, extracted_text = $3, updated_at = $4
WHERE id = $1
`, id, string(text.SourceFormat), text.Text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save extraction: %w", err)
	}
	return requireAffected(result, domain.ErrDocumentNotFound, "save extraction")
}

func requireAffected(result sql.Result, kind error, operation string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(kind, operation, sql.ErrNoRows)
	}
	return nil
}
