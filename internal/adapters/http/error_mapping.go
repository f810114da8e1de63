package httpadapter

import (
	"errors"
	"net/http"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

var errBodyTooLarge = errors.New("request body too large")

func mapErrorToHTTPStatus(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes), errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case domain.IsKind(err, domain.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case domain.IsKind(err, domain.ErrExtractionFailure):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrSynthesisEnvelopeInvalid):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrEmptyDeck):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrEncodingFailure):
		return http.StatusInternalServerError
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case domain.IsKind(err, domain.ErrDocumentNotFound), domain.IsKind(err, domain.ErrDeckNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) string {
	if mapErrorToHTTPStatus(err) == http.StatusRequestEntityTooLarge {
		return "The uploaded file is too large."
	}
	return domain.UserMessage(err)
}
