package httpadapter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func captureDefaultLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestAccessLogCarriesHandlerNotes(t *testing.T) {
	logs := captureDefaultLogger(t)

	handler := requestIDMiddleware(accessLogMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		annotate(r, "deck_id", "deck-7", "slides", 4)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	})))

	req := httptest.NewRequest(http.MethodPost, "/v1/slides", nil)
	req.Header.Set(requestIDHeader, "req-42")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	var entry map[string]any
	if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", logs.String(), err)
	}
	if entry["msg"] != "http_request" {
		t.Fatalf("unexpected message %v", entry["msg"])
	}
	if entry["request_id"] != "req-42" || entry["deck_id"] != "deck-7" {
		t.Fatalf("missing request attributes: %v", entry)
	}
	if entry["slides"] != float64(4) || entry["status"] != float64(http.StatusCreated) || entry["bytes"] != float64(4) {
		t.Fatalf("unexpected counters: %v", entry)
	}
}

func TestAnnotateWithoutAccessLogIsNoop(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	annotate(req, "deck_id", "ignored")
}
