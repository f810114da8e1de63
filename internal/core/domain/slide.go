package domain

import (
	"strings"
	"time"
)

// HistoryCapacity bounds the number of retained decks.
const HistoryCapacity = 20

const DefaultPresentationTitle = "Generated Presentation"

// Slide is a validated slide. Title is never empty.
type Slide struct {
	Title        string   `json:"title"`
	Bullets      []string `json:"bullets"`
	SpeakerNotes string   `json:"speakerNotes"`
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "dark" and "light" case-insensitively; blank means dark.
func ParseTheme(raw string) (Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ThemeDark):
		return ThemeDark, true
	case string(ThemeLight):
		return ThemeLight, true
	default:
		return "", false
	}
}

// Deck is the unit exported and persisted to history. Slide order is display order.
type Deck struct {
	ID                string    `json:"id"`
	PresentationTitle string    `json:"presentation_title"`
	Theme             Theme     `json:"theme"`
	Slides            []Slide   `json:"slides"`
	CreatedAt         time.Time `json:"created_at"`
}

// DisplayTitle falls back to the default title when none was given.
func (d Deck) DisplayTitle() string {
	if title := strings.TrimSpace(d.PresentationTitle); title != "" {
		return title
	}
	return DefaultPresentationTitle
}

// SynthesisPolicy carries per-request settings for the content-synthesis service.
type SynthesisPolicy struct {
	APIKey string
	Model  string
}

type GenerateRequest struct {
	Content           string
	PresentationTitle string
	Theme             Theme
	Policy            SynthesisPolicy
}

// DeckSummary is the list view of a history entry.
type DeckSummary struct {
	ID                string    `json:"id"`
	PresentationTitle string    `json:"presentation_title"`
	Theme             Theme     `json:"theme"`
	SlideCount        int       `json:"slide_count"`
	CreatedAt         time.Time `json:"created_at"`
}

func (d Deck) Summary() DeckSummary {
	return DeckSummary{
		ID:                d.ID,
		PresentationTitle: d.PresentationTitle,
		Theme:             d.Theme,
		SlideCount:        len(d.Slides),
		CreatedAt:         d.CreatedAt,
	}
}

// Export is an encoded presentation container.
type Export struct {
	Bytes    []byte
	FileName string
	MimeType string
}
