package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kirillkom/slidemaker/internal/config"
	"github.com/kirillkom/slidemaker/internal/core/ports"
	"github.com/kirillkom/slidemaker/internal/observability/metrics"
)

const (
	serviceName         = "api"
	defaultMaxUpload    = 50 << 20
	maxJSONBodyBytes    = 8 << 20
	backpressureTimeout = 250 * time.Millisecond
)

// Services are the inbound ports the router exposes.
type Services struct {
	Extraction ports.TextExtraction
	Ingestor   ports.DocumentIngestor
	Uploads    ports.UploadReader
	Generator  ports.DeckGenerator
	Exporter   ports.DeckExporter
	History    ports.DeckHistoryService
}

type Router struct {
	cfg      config.Config
	services Services
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(cfg config.Config, services Services, httpMetrics *metrics.HTTPServerMetrics) *Router {
	if cfg.APIMaxUploadBytes <= 0 {
		cfg.APIMaxUploadBytes = defaultMaxUpload
	}
	return &Router{
		cfg:      cfg,
		services: services,
		metrics:  httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /v1/extract", rt.extractDocument)
	api.HandleFunc("POST /v1/documents", rt.uploadDocument)
	api.HandleFunc("GET /v1/documents/{id}", rt.getDocumentByID)
	api.HandleFunc("POST /v1/slides", rt.generateSlides)
	api.HandleFunc("POST /v1/slides/export", rt.exportSlides)
	api.HandleFunc("GET /v1/history", rt.listHistory)
	api.HandleFunc("GET /v1/history/{id}", rt.getHistory)
	api.HandleFunc("DELETE /v1/history/{id}", rt.deleteHistory)
	api.HandleFunc("GET /v1/history/{id}/export", rt.exportHistory)

	limited := backpressureMiddleware(api, rt.cfg.APIMaxInFlight, backpressureTimeout, rt.rejected("backpressure"))
	limited = rateLimitMiddleware(limited, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, rt.rejected("rate_limit"))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}
	mux.Handle("/v1/", limited)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) rejected(reason string) func() {
	return func() {
		if rt.metrics != nil {
			rt.metrics.RecordRejected(serviceName, reason)
		}
	}
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError logs the internal error and answers with the user-facing
// message for its category.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	attrs := []any{
		"request_id", requestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"status", status,
		"error", err.Error(),
	}
	if status >= http.StatusInternalServerError {
		slog.Error("request_failed", attrs...)
	} else {
		slog.Warn("request_failed", attrs...)
	}
	writeJSON(w, status, errorResponse{
		Error:     userMessage(err),
		RequestID: requestIDFromContext(r.Context()),
	})
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
