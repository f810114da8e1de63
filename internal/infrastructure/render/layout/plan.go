// Package layout turns a validated deck into a render plan with absolute
// geometry and resolved theme tokens. Units are inches on a 10 x 5.625 page.
package layout

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

const (
	PageWidth  = 10.0
	PageHeight = 5.625

	FontFace = "Arial"
	Subtitle = "Created with SlideMaker"
)

type Box struct {
	X, Y, W, H float64
}

type Align string

const (
	AlignLeft   Align = "l"
	AlignCenter Align = "ctr"
)

type Anchor string

const (
	AnchorTop    Anchor = "t"
	AnchorMiddle Anchor = "ctr"
)

type Paragraph struct {
	Text         string
	Bullet       bool
	BulletColor  string
	SpaceAfterPt float64
}

type TextBox struct {
	Name       string
	Box        Box
	FontFace   string
	SizePt     float64
	Color      string
	Bold       bool
	Align      Align
	Anchor     Anchor
	Paragraphs []Paragraph
}

type SlideKind string

const (
	KindTitle   SlideKind = "title"
	KindContent SlideKind = "content"
)

type SlidePlan struct {
	Kind SlideKind
	// Number is 0 for the title slide and 1-based for content slides.
	Number int
	Boxes  []TextBox
	Notes  string
}

// Master holds what every slide shares.
type Master struct {
	Background string
	AccentBar  Box
	Accent     string
}

type RenderPlan struct {
	PresentationTitle string
	Theme             domain.Theme
	Tokens            Tokens
	Master            Master
	Slides            []SlidePlan
	CreatedAt         time.Time
}

// ContentSlides returns the number of content slides in the plan.
func (p RenderPlan) ContentSlides() int {
	n := 0
	for _, s := range p.Slides {
		if s.Kind == KindContent {
			n++
		}
	}
	return n
}

var (
	titleBlock    = Box{X: 0.5, Y: 2.0, W: 9, H: 1.5}
	subtitleBlock = Box{X: 0.5, Y: 4.0, W: 9, H: 0.5}
	accentBar     = Box{X: 0, Y: 0, W: PageWidth, H: 0.15}
	numberBlock   = Box{X: 9.2, Y: 0.3, W: 0.5, H: 0.4}
	headingBlock  = Box{X: 0.5, Y: 0.5, W: 9, H: 0.8}
	bulletBlock   = Box{X: 0.5, Y: 1.5, W: 9, H: 4.0}
)

const (
	titleSizePt         = 44
	subtitleSizePt      = 18
	numberSizePt        = 14
	headingSizePt       = 32
	bulletSizePt        = 18
	bulletSpaceAfterPts = 12
)

// Assemble builds the render plan for a deck. Bullet overflow is not measured.
func Assemble(deck domain.Deck) (RenderPlan, error) {
	if len(deck.Slides) == 0 {
		return RenderPlan{}, domain.WrapError(domain.ErrEmptyDeck, "assemble deck", errors.New("deck has no slides"))
	}
	theme := deck.Theme
	if theme == "" {
		theme = domain.ThemeDark
	}
	tokens, ok := TokensFor(theme)
	if !ok {
		return RenderPlan{}, domain.WrapError(domain.ErrInvalidInput, "assemble deck", fmt.Errorf("unknown theme %q", deck.Theme))
	}

	plan := RenderPlan{
		PresentationTitle: deck.DisplayTitle(),
		Theme:             theme,
		Tokens:            tokens,
		Master: Master{
			Background: tokens.Background,
			AccentBar:  accentBar,
			Accent:     tokens.Accent,
		},
		Slides:    make([]SlidePlan, 0, len(deck.Slides)+1),
		CreatedAt: deck.CreatedAt,
	}

	plan.Slides = append(plan.Slides, titleSlide(plan.PresentationTitle, tokens))
	for i, slide := range deck.Slides {
		plan.Slides = append(plan.Slides, contentSlide(i+1, slide, tokens))
	}
	return plan, nil
}

func titleSlide(title string, tokens Tokens) SlidePlan {
	return SlidePlan{
		Kind: KindTitle,
		Boxes: []TextBox{
			{
				Name:       "Title",
				Box:        titleBlock,
				FontFace:   FontFace,
				SizePt:     titleSizePt,
				Color:      tokens.Title,
				Bold:       true,
				Align:      AlignCenter,
				Anchor:     AnchorMiddle,
				Paragraphs: []Paragraph{{Text: title}},
			},
			{
				Name:       "Subtitle",
				Box:        subtitleBlock,
				FontFace:   FontFace,
				SizePt:     subtitleSizePt,
				Color:      tokens.SlideNumber,
				Align:      AlignCenter,
				Anchor:     AnchorMiddle,
				Paragraphs: []Paragraph{{Text: Subtitle}},
			},
		},
	}
}

func contentSlide(number int, slide domain.Slide, tokens Tokens) SlidePlan {
	bullets := make([]Paragraph, 0, len(slide.Bullets))
	for _, text := range slide.Bullets {
		bullets = append(bullets, Paragraph{
			Text:         text,
			Bullet:       true,
			BulletColor:  tokens.Accent,
			SpaceAfterPt: bulletSpaceAfterPts,
		})
	}

	return SlidePlan{
		Kind:   KindContent,
		Number: number,
		Notes:  slide.SpeakerNotes,
		Boxes: []TextBox{
			{
				Name:       "Slide Number",
				Box:        numberBlock,
				FontFace:   FontFace,
				SizePt:     numberSizePt,
				Color:      tokens.SlideNumber,
				Align:      AlignLeft,
				Anchor:     AnchorMiddle,
				Paragraphs: []Paragraph{{Text: strconv.Itoa(number)}},
			},
			{
				Name:       "Title",
				Box:        headingBlock,
				FontFace:   FontFace,
				SizePt:     headingSizePt,
				Color:      tokens.Title,
				Bold:       true,
				Align:      AlignLeft,
				Anchor:     AnchorMiddle,
				Paragraphs: []Paragraph{{Text: slide.Title}},
			},
			{
				Name:       "Bullets",
				Box:        bulletBlock,
				FontFace:   FontFace,
				SizePt:     bulletSizePt,
				Color:      tokens.Bullet,
				Align:      AlignLeft,
				Anchor:     AnchorTop,
				Paragraphs: bullets,
			},
		},
	}
}
