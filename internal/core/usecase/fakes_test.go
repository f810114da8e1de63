package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

type synthesizerFake struct {
	response  string
	err       error
	gotText   string
	gotPolicy domain.SynthesisPolicy
	calls     int
}

func (f *synthesizerFake) Synthesize(_ context.Context, content string, policy domain.SynthesisPolicy) (string, error) {
	f.calls++
	f.gotText = content
	f.gotPolicy = policy
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type validatorFake struct {
	slides []domain.Slide
	err    error
	gotRaw string
}

func (f *validatorFake) Validate(raw string) ([]domain.Slide, error) {
	f.gotRaw = raw
	if f.err != nil {
		return nil, f.err
	}
	return f.slides, nil
}

type historyFake struct {
	mu        sync.Mutex
	decks     []domain.Deck
	appendErr error
}

func (f *historyFake) Append(_ context.Context, deck domain.Deck) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.decks = append([]domain.Deck{deck}, f.decks...)
	return nil
}

func (f *historyFake) List(context.Context) ([]domain.Deck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Deck(nil), f.decks...), nil
}

func (f *historyFake) Get(_ context.Context, id string) (*domain.Deck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, deck := range f.decks {
		if deck.ID == id {
			out := deck
			return &out, nil
		}
	}
	return nil, domain.ErrDeckNotFound
}

func (f *historyFake) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, deck := range f.decks {
		if deck.ID == id {
			f.decks = append(f.decks[:i], f.decks[i+1:]...)
			return nil
		}
	}
	return domain.ErrDeckNotFound
}

type rendererFake struct {
	got    domain.Deck
	export *domain.Export
	err    error
}

func (f *rendererFake) Render(deck domain.Deck) (*domain.Export, error) {
	f.got = deck
	if f.err != nil {
		return nil, f.err
	}
	return f.export, nil
}

type observerFake struct {
	extractions []domain.Format
	extractErrs []error
	synthesis   int
	decks       []int
	exports     []int
	exportErrs  []error
}

func (f *observerFake) ObserveExtraction(format domain.Format, _ time.Duration, err error) {
	f.extractions = append(f.extractions, format)
	f.extractErrs = append(f.extractErrs, err)
}

func (f *observerFake) ObserveSynthesis(time.Duration, error) { f.synthesis++ }

func (f *observerFake) ObserveDeck(slides int) { f.decks = append(f.decks, slides) }

func (f *observerFake) ObserveExport(size int, err error) {
	f.exports = append(f.exports, size)
	f.exportErrs = append(f.exportErrs, err)
}

type extractorFake struct {
	gotFormat domain.Format
	text      domain.ExtractedText
	err       error
}

func (f *extractorFake) Extract(_ context.Context, _ domain.Document, format domain.Format) (domain.ExtractedText, error) {
	f.gotFormat = format
	if f.err != nil {
		return domain.ExtractedText{}, f.err
	}
	return f.text, nil
}
