package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/core/ports"
)

type HistoryUseCase struct {
	history ports.DeckHistory
}

func NewHistoryUseCase(history ports.DeckHistory) *HistoryUseCase {
	return &HistoryUseCase{history: history}
}

// List returns summaries, most recent first.
func (uc *HistoryUseCase) List(ctx context.Context) ([]domain.DeckSummary, error) {
	decks, err := uc.history.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DeckSummary, 0, len(decks))
	for _, deck := range decks {
		out = append(out, deck.Summary())
	}
	return out, nil
}

func (uc *HistoryUseCase) Get(ctx context.Context, id string) (*domain.Deck, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "get deck", errors.New("id is required"))
	}
	return uc.history.Get(ctx, id)
}

func (uc *HistoryUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "delete deck", errors.New("id is required"))
	}
	return uc.history.Delete(ctx, id)
}
