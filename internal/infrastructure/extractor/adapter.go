// Package extractor dispatches a classified document to the decoder for its
// container format and normalizes the outcome.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/infrastructure/extractor/legacyppt"
	"github.com/kirillkom/slidemaker/internal/infrastructure/extractor/ooxml"
	"github.com/kirillkom/slidemaker/internal/infrastructure/extractor/pdftext"
	"github.com/kirillkom/slidemaker/internal/infrastructure/extractor/plaintext"
)

// Strategy decodes the raw bytes of one container format into text.
type Strategy interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

type StrategyFunc func(ctx context.Context, data []byte) (string, error)

func (f StrategyFunc) Extract(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

type Adapter struct {
	strategies map[domain.Format]Strategy
	logger     *slog.Logger
}

type Option func(*Adapter)

// WithStrategy replaces the decoder used for a format.
func WithStrategy(format domain.Format, strategy Strategy) Option {
	return func(a *Adapter) {
		a.strategies[format] = strategy
	}
}

func NewAdapter(logger *slog.Logger, opts ...Option) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Adapter{
		logger: logger,
		strategies: map[domain.Format]Strategy{
			domain.FormatPDF:   StrategyFunc(pdftext.Extract),
			domain.FormatDOCX:  StrategyFunc(ooxml.ExtractDocument),
			domain.FormatPPTX:  StrategyFunc(ooxml.ExtractPresentation),
			domain.FormatODP:   StrategyFunc(ooxml.ExtractOpenDocumentPresentation),
			domain.FormatPPT:   StrategyFunc(legacyppt.Extract),
			domain.FormatPlain: StrategyFunc(plaintext.Extract),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Extract runs the strategy for format. Decoder errors and panics surface as
// *domain.ExtractionError and never carry partial text.
func (a *Adapter) Extract(ctx context.Context, doc domain.Document, format domain.Format) (out domain.ExtractedText, err error) {
	strategy, ok := a.strategies[format]
	if !ok {
		return domain.ExtractedText{}, &domain.UnsupportedFormatError{MimeType: doc.MimeType, Extension: string(format)}
	}
	if err := ctx.Err(); err != nil {
		return domain.ExtractedText{}, err
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			a.logger.Error("extractor_panic", "format", string(format), "file_name", doc.FileName, "panic", fmt.Sprint(recovered))
			out = domain.ExtractedText{}
			err = &domain.ExtractionError{Format: format, Cause: fmt.Errorf("decoder panic: %v", recovered)}
		}
	}()

	text, err := strategy.Extract(ctx, doc.Bytes)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.ExtractedText{}, ctxErr
		}
		return domain.ExtractedText{}, &domain.ExtractionError{Format: format, Cause: err}
	}

	return domain.ExtractedText{
		Text:         strings.TrimSpace(text),
		SourceFormat: format.Tag(),
	}, nil
}
