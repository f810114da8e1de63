package ports

import (
	"context"
	"io"
	"time"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

// Extractor decodes one document with the strategy chosen for its format.
type Extractor interface {
	Extract(ctx context.Context, doc domain.Document, format domain.Format) (domain.ExtractedText, error)
}

// Synthesizer is the content-synthesis boundary. The response is untrusted text.
type Synthesizer interface {
	Synthesize(ctx context.Context, content string, policy domain.SynthesisPolicy) (string, error)
}

// CandidateValidator repairs untrusted synthesis output into slides.
type CandidateValidator interface {
	Validate(raw string) ([]domain.Slide, error)
}

// DeckRenderer assembles and encodes a deck into a presentation container.
type DeckRenderer interface {
	Render(deck domain.Deck) (*domain.Export, error)
}

// DeckHistory retains generated decks, most recent first. Append must add the
// deck and evict beyond capacity as one atomic step.
type DeckHistory interface {
	Append(ctx context.Context, deck domain.Deck) error
	List(ctx context.Context) ([]domain.Deck, error)
	Get(ctx context.Context, id string) (*domain.Deck, error)
	Delete(ctx context.Context, id string) error
}

// UploadRepository persists upload state.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) error
	GetByID(ctx context.Context, id string) (*domain.Upload, error)
	UpdateStatus(ctx context.Context, id string, status domain.UploadStatus, errMessage string) error
	SaveExtraction(ctx context.Context, id string, text domain.ExtractedText) error
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// MessageQueue publishes/consumes upload events.
type MessageQueue interface {
	PublishDocumentUploaded(ctx context.Context, uploadID string, sequence int64) error
	SubscribeDocumentUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// PipelineObserver receives per-stage outcomes. Implementations must be safe
// for concurrent use.
type PipelineObserver interface {
	ObserveExtraction(format domain.Format, duration time.Duration, err error)
	ObserveSynthesis(duration time.Duration, err error)
	ObserveDeck(slides int)
	ObserveExport(size int, err error)
}
