package domain

import (
	"mime"
	"path/filepath"
	"strings"
)

// FormatTag is the coarse source format reported with extracted text.
type FormatTag string

const (
	TagPDF          FormatTag = "pdf"
	TagDOCX         FormatTag = "docx"
	TagPresentation FormatTag = "presentation"
	TagPlain        FormatTag = "plain"
)

// Format is the concrete container selected by the dispatcher.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatPPTX  Format = "pptx"
	FormatPPT   Format = "ppt"
	FormatODP   Format = "odp"
	FormatPlain Format = "txt"
)

const (
	MimePDF   = "application/pdf"
	MimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePPTX  = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimePPT   = "application/vnd.ms-powerpoint"
	MimeODP   = "application/vnd.oasis.opendocument.presentation"
	MimePlain = "text/plain"
)

var formatsByMime = map[string]Format{
	MimePDF:   FormatPDF,
	MimeDOCX:  FormatDOCX,
	MimePPTX:  FormatPPTX,
	MimePPT:   FormatPPT,
	MimeODP:   FormatODP,
	MimePlain: FormatPlain,
}

var formatsByExtension = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".pptx": FormatPPTX,
	".ppt":  FormatPPT,
	".odp":  FormatODP,
	".txt":  FormatPlain,
}

// Browsers and HTTP clients send these when they do not know the real type.
var genericMimeTypes = map[string]struct{}{
	"":                             {},
	"application/octet-stream":     {},
	"binary/octet-stream":          {},
	"application/zip":              {},
	"application/x-zip-compressed": {},
	"application/unknown":          {},
}

func (f Format) Tag() FormatTag {
	switch f {
	case FormatPDF:
		return TagPDF
	case FormatDOCX:
		return TagDOCX
	case FormatPPTX, FormatPPT, FormatODP:
		return TagPresentation
	default:
		return TagPlain
	}
}

// Label is the user-facing name of the format.
func (f Format) Label() string {
	switch f {
	case FormatPDF:
		return "PDF"
	case FormatDOCX:
		return "Word"
	case FormatPPTX, FormatPPT:
		return "PowerPoint"
	case FormatODP:
		return "OpenDocument presentation"
	case FormatPlain:
		return "text"
	default:
		return string(f)
	}
}

// AcceptedFormats lists the accepted file types for user-facing messages.
func AcceptedFormats() []string {
	return []string{"PDF (.pdf)", "Word (.docx)", "PowerPoint (.pptx, .ppt)", "OpenDocument presentation (.odp)", "plain text (.txt)"}
}

// ClassifyFormat selects the extraction strategy from the declared MIME type,
// falling back to the file extension only when the MIME type is absent or
// generic. Content bytes are never inspected.
func ClassifyFormat(mimeType, fileName string) (Format, error) {
	declared := normalizeMime(mimeType)
	if format, ok := formatsByMime[declared]; ok {
		return format, nil
	}

	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(fileName)))
	if _, generic := genericMimeTypes[declared]; generic {
		if format, ok := formatsByExtension[ext]; ok {
			return format, nil
		}
	}

	return "", &UnsupportedFormatError{MimeType: declared, Extension: ext}
}

func normalizeMime(mimeType string) string {
	raw := strings.TrimSpace(mimeType)
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(raw)
	}
	return strings.ToLower(mediaType)
}
