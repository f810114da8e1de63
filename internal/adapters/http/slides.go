package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

const apiKeyHeader = "X-Api-Key"

type generateRequest struct {
	Content           string `json:"content"`
	PresentationTitle string `json:"presentation_title"`
	Theme             string `json:"theme"`
	APIKey            string `json:"api_key"`
	Model             string `json:"model"`
}

type exportRequest struct {
	PresentationTitle string         `json:"presentation_title"`
	Theme             string         `json:"theme"`
	Slides            []domain.Slide `json:"slides"`
}

func (rt *Router) generateSlides(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(r.Header.Get(apiKeyHeader))
	}

	deck, err := rt.services.Generator.Generate(r.Context(), domain.GenerateRequest{
		Content:           req.Content,
		PresentationTitle: req.PresentationTitle,
		Theme:             domain.Theme(req.Theme),
		Policy: domain.SynthesisPolicy{
			APIKey: apiKey,
			Model:  strings.TrimSpace(req.Model),
		},
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	annotate(r, "deck_id", deck.ID, "slides", len(deck.Slides))
	slog.Info("slides_generated",
		"request_id", requestIDFromContext(r.Context()),
		"deck_id", deck.ID,
		"slides", len(deck.Slides),
		"theme", string(deck.Theme),
	)
	writeJSON(w, http.StatusOK, deck)
}

func (rt *Router) exportSlides(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	export, err := rt.services.Exporter.Export(r.Context(), domain.Deck{
		PresentationTitle: strings.TrimSpace(req.PresentationTitle),
		Theme:             domain.Theme(req.Theme),
		Slides:            req.Slides,
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeExport(w, r, export)
}

func (rt *Router) listHistory(w http.ResponseWriter, r *http.Request) {
	summaries, err := rt.services.History.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"decks": summaries})
}

func (rt *Router) getHistory(w http.ResponseWriter, r *http.Request) {
	deck, err := rt.services.History.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (rt *Router) deleteHistory(w http.ResponseWriter, r *http.Request) {
	if err := rt.services.History.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) exportHistory(w http.ResponseWriter, r *http.Request) {
	var theme domain.Theme
	if raw := strings.TrimSpace(r.URL.Query().Get("theme")); raw != "" {
		parsed, ok := domain.ParseTheme(raw)
		if !ok {
			writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "export history", fmt.Errorf("unknown theme %q", raw)))
			return
		}
		theme = parsed
	}

	annotate(r, "deck_id", r.PathValue("id"))
	export, err := rt.services.Exporter.ExportByID(r.Context(), r.PathValue("id"), theme)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeExport(w, r, export)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return domain.WrapError(domain.ErrInvalidInput, "decode request", err)
	}
	return nil
}

func writeExport(w http.ResponseWriter, r *http.Request, export *domain.Export) {
	annotate(r, "export_file", export.FileName)
	w.Header().Set("Content-Type", export.MimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Bytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Bytes)
}
