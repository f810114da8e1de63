package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/core/ports"
)

type GenerateDeckUseCase struct {
	synthesizer ports.Synthesizer
	validator   ports.CandidateValidator
	history     ports.DeckHistory
	observer    ports.PipelineObserver

	now   func() time.Time
	newID func() string
}

func NewGenerateDeckUseCase(
	synthesizer ports.Synthesizer,
	validator ports.CandidateValidator,
	history ports.DeckHistory,
	observer ports.PipelineObserver,
) *GenerateDeckUseCase {
	return &GenerateDeckUseCase{
		synthesizer: synthesizer,
		validator:   validator,
		history:     history,
		observer:    observerOrNoop(observer),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Generate synthesizes candidate slides for the content, repairs them into a
// deck and records the deck in history. Content is passed through as given;
// a deck with zero slides is refused with ErrEmptyDeck.
func (uc *GenerateDeckUseCase) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.Deck, error) {
	theme, ok := domain.ParseTheme(string(req.Theme))
	if !ok {
		return nil, domain.WrapError(domain.ErrInvalidInput, "generate deck", fmt.Errorf("unknown theme %q", req.Theme))
	}

	start := time.Now()
	raw, err := uc.synthesizer.Synthesize(ctx, req.Content, req.Policy)
	uc.observer.ObserveSynthesis(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("synthesize slides: %w", err)
	}

	slides, err := uc.validator.Validate(raw)
	if err != nil {
		return nil, fmt.Errorf("validate candidates: %w", err)
	}
	if len(slides) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyDeck, "generate deck", errors.New("synthesis returned no slides"))
	}

	deck := domain.Deck{
		ID:                uc.newID(),
		PresentationTitle: strings.TrimSpace(req.PresentationTitle),
		Theme:             theme,
		Slides:            slides,
		CreatedAt:         uc.now().UTC(),
	}
	if err := uc.history.Append(ctx, deck); err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}
	uc.observer.ObserveDeck(len(deck.Slides))

	return &deck, nil
}
