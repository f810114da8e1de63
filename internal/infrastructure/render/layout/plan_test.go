package layout

import (
	"testing"
	"time"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

func testDeck(theme domain.Theme) domain.Deck {
	return domain.Deck{
		PresentationTitle: "Cells",
		Theme:             theme,
		CreatedAt:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Slides: []domain.Slide{
			{Title: "Membranes", Bullets: []string{"Lipid bilayer", "Proteins"}, SpeakerNotes: "talk slowly"},
			{Title: "Nucleus", Bullets: []string{}},
		},
	}
}

func TestAssembleBuildsTitleAndContentSlides(t *testing.T) {
	plan, err := Assemble(testDeck(domain.ThemeDark))
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(plan.Slides) != 3 {
		t.Fatalf("expected title + 2 content slides, got %d", len(plan.Slides))
	}
	if plan.Slides[0].Kind != KindTitle || plan.Slides[0].Boxes[0].Paragraphs[0].Text != "Cells" {
		t.Fatalf("unexpected title slide: %+v", plan.Slides[0])
	}
	if plan.Slides[0].Boxes[1].Paragraphs[0].Text != Subtitle {
		t.Fatalf("expected subtitle on title slide")
	}
	if plan.ContentSlides() != 2 {
		t.Fatalf("expected 2 content slides, got %d", plan.ContentSlides())
	}

	first := plan.Slides[1]
	if first.Number != 1 || first.Notes != "talk slowly" {
		t.Fatalf("unexpected first content slide: %+v", first)
	}
	number, heading, bullets := first.Boxes[0], first.Boxes[1], first.Boxes[2]
	if number.Paragraphs[0].Text != "1" || number.Box != (Box{X: 9.2, Y: 0.3, W: 0.5, H: 0.4}) {
		t.Fatalf("unexpected slide number box: %+v", number)
	}
	if !heading.Bold || heading.SizePt != 32 || heading.Align != AlignLeft {
		t.Fatalf("unexpected heading style: %+v", heading)
	}
	if bullets.Anchor != AnchorTop || len(bullets.Paragraphs) != 2 {
		t.Fatalf("unexpected bullet block: %+v", bullets)
	}
	for _, p := range bullets.Paragraphs {
		if !p.Bullet || p.BulletColor != "6366F1" || p.SpaceAfterPt != 12 {
			t.Fatalf("unexpected bullet paragraph: %+v", p)
		}
	}
	if plan.Slides[2].Number != 2 {
		t.Fatalf("expected second content slide numbered 2")
	}
}

func TestAssembleResolvesThemeTokens(t *testing.T) {
	cases := []struct {
		theme domain.Theme
		want  Tokens
	}{
		{domain.ThemeDark, Tokens{Background: "1A1A2E", Accent: "6366F1", Title: "FFFFFF", Bullet: "E2E8F0", SlideNumber: "A5B4FC"}},
		{domain.ThemeLight, Tokens{Background: "FFFFFF", Accent: "6366F1", Title: "1E293B", Bullet: "475569", SlideNumber: "94A3B8"}},
	}
	for _, tc := range cases {
		plan, err := Assemble(testDeck(tc.theme))
		if err != nil {
			t.Fatalf("Assemble(%s) error = %v", tc.theme, err)
		}
		if plan.Tokens != tc.want {
			t.Fatalf("tokens for %s = %+v, want %+v", tc.theme, plan.Tokens, tc.want)
		}
		if plan.Master.Background != tc.want.Background || plan.Master.Accent != tc.want.Accent {
			t.Fatalf("master for %s does not carry theme tokens: %+v", tc.theme, plan.Master)
		}
		content := plan.Slides[1]
		if content.Boxes[1].Color != tc.want.Title || content.Boxes[2].Color != tc.want.Bullet || content.Boxes[0].Color != tc.want.SlideNumber {
			t.Fatalf("content slide colors for %s not resolved from tokens", tc.theme)
		}
	}
}

func TestAssembleDefaultsTitleAndTheme(t *testing.T) {
	deck := testDeck("")
	deck.PresentationTitle = "   "
	plan, err := Assemble(deck)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if plan.PresentationTitle != domain.DefaultPresentationTitle {
		t.Fatalf("expected default title, got %q", plan.PresentationTitle)
	}
	if plan.Theme != domain.ThemeDark {
		t.Fatalf("expected dark theme default, got %q", plan.Theme)
	}
}

func TestAssembleRejectsEmptyDeckAndUnknownTheme(t *testing.T) {
	deck := testDeck(domain.ThemeDark)
	deck.Slides = nil
	if _, err := Assemble(deck); !domain.IsKind(err, domain.ErrEmptyDeck) {
		t.Fatalf("expected ErrEmptyDeck, got %v", err)
	}

	if _, err := Assemble(testDeck("neon")); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown theme, got %v", err)
	}
}
