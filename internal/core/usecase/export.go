package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/core/ports"
)

type ExportDeckUseCase struct {
	renderer ports.DeckRenderer
	history  ports.DeckHistory
	observer ports.PipelineObserver
}

func NewExportDeckUseCase(renderer ports.DeckRenderer, history ports.DeckHistory, observer ports.PipelineObserver) *ExportDeckUseCase {
	return &ExportDeckUseCase{
		renderer: renderer,
		history:  history,
		observer: observerOrNoop(observer),
	}
}

// Export encodes a caller-supplied deck. Slides must already be valid: a
// blank title is refused rather than repaired.
func (uc *ExportDeckUseCase) Export(ctx context.Context, deck domain.Deck) (*domain.Export, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(deck.Slides) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyDeck, "export deck", errors.New("deck has no slides"))
	}
	for i, slide := range deck.Slides {
		if strings.TrimSpace(slide.Title) == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, "export deck", fmt.Errorf("slide %d has no title", i+1))
		}
	}
	theme, ok := domain.ParseTheme(string(deck.Theme))
	if !ok {
		return nil, domain.WrapError(domain.ErrInvalidInput, "export deck", fmt.Errorf("unknown theme %q", deck.Theme))
	}
	deck.Theme = theme

	export, err := uc.renderer.Render(deck)
	size := 0
	if export != nil {
		size = len(export.Bytes)
	}
	uc.observer.ObserveExport(size, err)
	if err != nil {
		return nil, fmt.Errorf("render deck: %w", err)
	}
	return export, nil
}

// ExportByID re-exports a deck from history. A non-empty theme overrides the
// one the deck was generated with.
func (uc *ExportDeckUseCase) ExportByID(ctx context.Context, id string, theme domain.Theme) (*domain.Export, error) {
	deck, err := uc.history.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if theme != "" {
		deck.Theme = theme
	}
	return uc.Export(ctx, *deck)
}
