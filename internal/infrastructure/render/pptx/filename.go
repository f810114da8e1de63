package pptx

import "strings"

const (
	Extension       = ".pptx"
	MimeType        = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	DefaultFileBase = "presentation"
)

// SanitizeBaseName replaces every rune outside [A-Za-z0-9] with '_'. A blank
// title becomes DefaultFileBase first. The result is a fixed point of itself.
func SanitizeBaseName(title string) string {
	if strings.TrimSpace(title) == "" {
		title = DefaultFileBase
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, title)
}

func SuggestedFileName(title string) string {
	return SanitizeBaseName(title) + Extension
}
