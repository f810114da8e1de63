package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/core/ports"
)

// ExtractUseCase classifies a document and runs the matching extraction strategy.
type ExtractUseCase struct {
	extractor ports.Extractor
	observer  ports.PipelineObserver
}

func NewExtractUseCase(extractor ports.Extractor, observer ports.PipelineObserver) *ExtractUseCase {
	return &ExtractUseCase{
		extractor: extractor,
		observer:  observerOrNoop(observer),
	}
}

func (uc *ExtractUseCase) Extract(ctx context.Context, doc domain.Document) (domain.ExtractedText, error) {
	format, err := domain.ClassifyFormat(doc.MimeType, doc.FileName)
	if err != nil {
		return domain.ExtractedText{}, err
	}

	start := time.Now()
	text, err := uc.extractor.Extract(ctx, doc, format)
	uc.observer.ObserveExtraction(format, time.Since(start), err)
	if err != nil {
		return domain.ExtractedText{}, fmt.Errorf("extract %s: %w", format, err)
	}
	return text, nil
}
