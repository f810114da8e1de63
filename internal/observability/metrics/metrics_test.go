package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

func TestPipelineCounters(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	p := m.Pipeline()

	p.ObserveExtraction(domain.FormatPDF, 10*time.Millisecond, nil)
	p.ObserveExtraction(domain.FormatPDF, 10*time.Millisecond, errors.New("bad"))
	p.ObserveSynthesis(time.Second, nil)
	p.ObserveDeck(7)
	p.ObserveExport(2048, nil)
	p.RecordCandidateRepairs(map[string]int{"title": 2, "bullets": 0}, 1, 3)
	p.OnRetry("ollama.generate", 1)
	p.OnStateChange("ollama.generate", "closed", "open")

	if got := testutil.ToFloat64(p.extractionsTotal.WithLabelValues("api", "pdf", "success")); got != 1 {
		t.Fatalf("pdf success extractions = %v", got)
	}
	if got := testutil.ToFloat64(p.extractionsTotal.WithLabelValues("api", "pdf", "error")); got != 1 {
		t.Fatalf("pdf failed extractions = %v", got)
	}
	if got := testutil.ToFloat64(p.candidateRepairs.WithLabelValues("api", "title")); got != 2 {
		t.Fatalf("title repairs = %v", got)
	}
	if got := testutil.ToFloat64(p.candidateRepairs.WithLabelValues("api", "dropped_bullet")); got != 3 {
		t.Fatalf("dropped bullets = %v", got)
	}
	if got := testutil.ToFloat64(p.breakerTransitions.WithLabelValues("api", "ollama.generate", "open")); got != 1 {
		t.Fatalf("breaker transitions = %v", got)
	}
}

func TestMiddlewareNormalizesPathsAndExposesMetrics(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	handler := m.Middleware("api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/history/abc/export", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/history/def", nil))

	if got := testutil.ToFloat64(m.requestTotal.WithLabelValues("api", "GET", "/v1/history/{id}/export", "404")); got != 1 {
		t.Fatalf("export requests = %v", got)
	}
	if got := testutil.ToFloat64(m.requestTotal.WithLabelValues("api", "GET", "/v1/history/{id}", "404")); got != 1 {
		t.Fatalf("history requests = %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "slidemaker_http_requests_total") {
		t.Fatalf("metrics output misses request counter")
	}
}

func TestWorkerMetricsShareRegistryWithPipeline(t *testing.T) {
	m := NewWorkerMetrics("worker")
	m.StartUpload()
	m.FinishUpload("worker", time.Second, nil)
	m.Pipeline().ObserveExtraction(domain.FormatDOCX, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, name := range []string{"slidemaker_worker_upload_process_total", "slidemaker_extraction_total"} {
		if !strings.Contains(body, name) {
			t.Fatalf("metrics output misses %s", name)
		}
	}
}
