package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDeckNotFound     = errors.New("deck not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrTemporary        = errors.New("temporary failure")

	ErrUnsupportedFormat        = errors.New("unsupported format")
	ErrExtractionFailure        = errors.New("extraction failure")
	ErrSynthesisEnvelopeInvalid = errors.New("synthesis envelope invalid")
	ErrEmptyDeck                = errors.New("empty deck")
	ErrEncodingFailure          = errors.New("encoding failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// UnsupportedFormatError carries the rejected MIME type and extension so the
// caller can tell the user what was refused.
type UnsupportedFormatError struct {
	MimeType  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: mime=%q extension=%q", e.MimeType, e.Extension)
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// ExtractionError is a decoder-level fault for one document.
type ExtractionError struct {
	Format Format
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("extract %s: failed", e.Format)
	}
	return fmt.Sprintf("extract %s: %v", e.Format, e.Cause)
}

func (e *ExtractionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrExtractionFailure}
	}
	return []error{ErrExtractionFailure, e.Cause}
}

// UserMessage maps an error to the single human-readable message shown for
// its category. Internal detail never leaks through it.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var unsupported *UnsupportedFormatError
	var extraction *ExtractionError
	switch {
	case errors.As(err, &unsupported):
		rejected := unsupported.MimeType
		if rejected == "" {
			rejected = unsupported.Extension
		}
		if rejected == "" {
			rejected = "unknown"
		}
		return fmt.Sprintf("Unsupported file type %q. Accepted formats: %s.", rejected, strings.Join(AcceptedFormats(), ", "))
	case IsKind(err, ErrUnsupportedFormat):
		return fmt.Sprintf("Unsupported file type. Accepted formats: %s.", strings.Join(AcceptedFormats(), ", "))
	case errors.As(err, &extraction):
		return fmt.Sprintf("Could not read text from the %s document.", extraction.Format.Label())
	case IsKind(err, ErrExtractionFailure):
		return "Could not read text from the document."
	case IsKind(err, ErrSynthesisEnvelopeInvalid):
		return "Failed to parse slide data from the AI response. Please try generating again."
	case IsKind(err, ErrEmptyDeck):
		return "No slides could be generated from this content."
	case IsKind(err, ErrEncodingFailure):
		return "Error generating the PowerPoint file."
	case IsKind(err, ErrUnauthorized):
		return "Invalid or missing API key. Please check your settings."
	case IsKind(err, ErrDocumentNotFound):
		return "Document not found."
	case IsKind(err, ErrDeckNotFound):
		return "Presentation not found."
	case IsKind(err, ErrTemporary):
		return "The service is temporarily unavailable. Please retry."
	case IsKind(err, ErrInvalidInput):
		return "Invalid request."
	default:
		return "Something went wrong."
	}
}
