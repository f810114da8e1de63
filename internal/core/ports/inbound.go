package ports

import (
	"context"
	"io"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

// TextExtraction is the inbound contract for synchronous document extraction.
type TextExtraction interface {
	Extract(ctx context.Context, doc domain.Document) (domain.ExtractedText, error)
}

// DocumentIngestor is the inbound contract for asynchronous upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Upload, error)
}

// UploadReader is the inbound read model for upload state.
type UploadReader interface {
	GetByID(ctx context.Context, id string) (*domain.Upload, error)
}

// UploadProcessor is the inbound contract for asynchronous extraction.
type UploadProcessor interface {
	ProcessByID(ctx context.Context, uploadID string) error
}

// DeckGenerator turns source content into a validated deck and records it in history.
type DeckGenerator interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (*domain.Deck, error)
}

// DeckExporter encodes decks into presentation containers.
type DeckExporter interface {
	Export(ctx context.Context, deck domain.Deck) (*domain.Export, error)
	ExportByID(ctx context.Context, id string, theme domain.Theme) (*domain.Export, error)
}

// DeckHistoryService exposes retained decks.
type DeckHistoryService interface {
	List(ctx context.Context) ([]domain.DeckSummary, error)
	Get(ctx context.Context, id string) (*domain.Deck, error)
	Delete(ctx context.Context, id string) error
}
