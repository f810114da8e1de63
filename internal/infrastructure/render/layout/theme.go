package layout

import "github.com/kirillkom/slidemaker/internal/core/domain"

// Tokens are the colors applied uniformly across every slide of a deck.
// Values are RGB hex without the leading '#'.
type Tokens struct {
	Background  string
	Accent      string
	Title       string
	Bullet      string
	SlideNumber string
}

// Adding a theme means adding a row here.
var themeTokens = map[domain.Theme]Tokens{
	domain.ThemeDark: {
		Background:  "1A1A2E",
		Accent:      "6366F1",
		Title:       "FFFFFF",
		Bullet:      "E2E8F0",
		SlideNumber: "A5B4FC",
	},
	domain.ThemeLight: {
		Background:  "FFFFFF",
		Accent:      "6366F1",
		Title:       "1E293B",
		Bullet:      "475569",
		SlideNumber: "94A3B8",
	},
}

// TokensFor resolves the token set of a theme.
func TokensFor(theme domain.Theme) (Tokens, bool) {
	tokens, ok := themeTokens[theme]
	return tokens, ok
}
