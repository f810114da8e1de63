package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("MSK", 3*60*60))

func newGenerateUseCase(synth *synthesizerFake, validator *validatorFake, history *historyFake, observer *observerFake) *GenerateDeckUseCase {
	uc := NewGenerateDeckUseCase(synth, validator, history, observer)
	uc.now = func() time.Time { return fixedNow }
	uc.newID = func() string { return "deck-1" }
	return uc
}

func TestGenerateBuildsDeckAndAppendsHistory(t *testing.T) {
	synth := &synthesizerFake{response: `[{"title":"Cells"}]`}
	validator := &validatorFake{slides: []domain.Slide{{Title: "Cells", Bullets: []string{"Membrane"}}}}
	history := &historyFake{}
	observer := &observerFake{}
	uc := newGenerateUseCase(synth, validator, history, observer)

	deck, err := uc.Generate(context.Background(), domain.GenerateRequest{
		Content:           "Cells are the basic unit of life.",
		PresentationTitle: "  Biology  ",
		Theme:             "LIGHT",
		Policy:            domain.SynthesisPolicy{APIKey: "client-key", Model: "m"},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if deck.ID != "deck-1" || deck.PresentationTitle != "Biology" || deck.Theme != domain.ThemeLight {
		t.Fatalf("unexpected deck: %+v", deck)
	}
	if !deck.CreatedAt.Equal(fixedNow) || deck.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC creation time, got %s", deck.CreatedAt)
	}
	if synth.gotPolicy.APIKey != "client-key" {
		t.Fatalf("expected policy to reach synthesizer, got %+v", synth.gotPolicy)
	}
	if validator.gotRaw != synth.response {
		t.Fatalf("validator received %q", validator.gotRaw)
	}
	if len(history.decks) != 1 || history.decks[0].ID != "deck-1" {
		t.Fatalf("expected deck in history, got %+v", history.decks)
	}
	if observer.synthesis != 1 || len(observer.decks) != 1 || observer.decks[0] != 1 {
		t.Fatalf("unexpected observations: %+v", observer)
	}
}

func TestGenerateDefaultsThemeToDark(t *testing.T) {
	uc := newGenerateUseCase(&synthesizerFake{response: "[]"}, &validatorFake{slides: []domain.Slide{{Title: "A"}}}, &historyFake{}, &observerFake{})

	deck, err := uc.Generate(context.Background(), domain.GenerateRequest{Content: "x"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if deck.Theme != domain.ThemeDark {
		t.Fatalf("expected dark theme, got %s", deck.Theme)
	}
	if deck.DisplayTitle() != domain.DefaultPresentationTitle {
		t.Fatalf("expected default display title, got %q", deck.DisplayTitle())
	}
}

func TestGenerateEmptyDeckIsNotRecorded(t *testing.T) {
	history := &historyFake{}
	observer := &observerFake{}
	synth := &synthesizerFake{response: "[]"}
	uc := newGenerateUseCase(synth, &validatorFake{slides: []domain.Slide{}}, history, observer)

	_, err := uc.Generate(context.Background(), domain.GenerateRequest{Content: ""})
	if !errors.Is(err, domain.ErrEmptyDeck) {
		t.Fatalf("expected ErrEmptyDeck, got %v", err)
	}
	if synth.calls != 1 {
		t.Fatalf("empty content is still passed to synthesis, got %d calls", synth.calls)
	}
	if len(history.decks) != 0 || len(observer.decks) != 0 {
		t.Fatalf("empty deck must not be recorded")
	}
}

func TestGeneratePropagatesSynthesisAndEnvelopeErrors(t *testing.T) {
	uc := newGenerateUseCase(&synthesizerFake{err: domain.ErrUnauthorized}, &validatorFake{}, &historyFake{}, &observerFake{})
	if _, err := uc.Generate(context.Background(), domain.GenerateRequest{Content: "x"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	history := &historyFake{}
	uc = newGenerateUseCase(&synthesizerFake{response: "not json"}, &validatorFake{err: domain.ErrSynthesisEnvelopeInvalid}, history, &observerFake{})
	if _, err := uc.Generate(context.Background(), domain.GenerateRequest{Content: "x"}); !errors.Is(err, domain.ErrSynthesisEnvelopeInvalid) {
		t.Fatalf("expected ErrSynthesisEnvelopeInvalid, got %v", err)
	}
	if len(history.decks) != 0 {
		t.Fatalf("failed generation must not touch history")
	}
}

func TestGenerateRejectsUnknownThemeBeforeSynthesis(t *testing.T) {
	synth := &synthesizerFake{}
	uc := newGenerateUseCase(synth, &validatorFake{}, &historyFake{}, &observerFake{})

	_, err := uc.Generate(context.Background(), domain.GenerateRequest{Content: "x", Theme: "sepia"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if synth.calls != 0 {
		t.Fatalf("synthesizer must not be called")
	}
}

func TestGenerateHistoryFailure(t *testing.T) {
	uc := newGenerateUseCase(&synthesizerFake{response: "[]"}, &validatorFake{slides: []domain.Slide{{Title: "A"}}}, &historyFake{appendErr: errors.New("db down")}, &observerFake{})

	if _, err := uc.Generate(context.Background(), domain.GenerateRequest{Content: "x"}); err == nil {
		t.Fatalf("expected history error")
	}
}
