// Package memory provides a process-local deck history.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

// History keeps decks most recent first, evicting the oldest beyond capacity.
type History struct {
	mu       sync.RWMutex
	capacity int
	decks    []domain.Deck
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = domain.HistoryCapacity
	}
	return &History{capacity: capacity, decks: make([]domain.Deck, 0, capacity)}
}

func (h *History) Append(_ context.Context, deck domain.Deck) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]domain.Deck, 0, h.capacity)
	next = append(next, cloneDeck(deck))
	for _, existing := range h.decks {
		if len(next) == h.capacity {
			break
		}
		if existing.ID == deck.ID {
			continue
		}
		next = append(next, existing)
	}
	h.decks = next
	return nil
}

func (h *History) List(_ context.Context) ([]domain.Deck, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]domain.Deck, 0, len(h.decks))
	for _, deck := range h.decks {
		out = append(out, cloneDeck(deck))
	}
	return out, nil
}

func (h *History) Get(_ context.Context, id string) (*domain.Deck, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, deck := range h.decks {
		if deck.ID == id {
			out := cloneDeck(deck)
			return &out, nil
		}
	}
	return nil, domain.WrapError(domain.ErrDeckNotFound, "get deck", fmt.Errorf("id %q", id))
}

func (h *History) Delete(_ context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, deck := range h.decks {
		if deck.ID == id {
			h.decks = append(h.decks[:i], h.decks[i+1:]...)
			return nil
		}
	}
	return domain.WrapError(domain.ErrDeckNotFound, "delete deck", fmt.Errorf("id %q", id))
}

// cloneDeck detaches stored decks from caller-owned slices.
func cloneDeck(deck domain.Deck) domain.Deck {
	slides := make([]domain.Slide, len(deck.Slides))
	for i, slide := range deck.Slides {
		slide.Bullets = append([]string(nil), slide.Bullets...)
		slides[i] = slide
	}
	deck.Slides = slides
	return deck
}
