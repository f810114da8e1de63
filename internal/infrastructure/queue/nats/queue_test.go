package nats

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/slidemaker/internal/core/domain"
)

func TestUploadMessageRoundTripCarriesSequence(t *testing.T) {
	msg := newUploadMessage("documents.uploaded", "u-42", 42)
	if msg.Subject != "documents.uploaded" {
		t.Fatalf("subject = %q", msg.Subject)
	}

	id, seq := parseUploadMessage(msg)
	if id != "u-42" || seq != 42 {
		t.Fatalf("parsed id=%q seq=%d", id, seq)
	}
}

func TestParseUploadMessageWithoutHeader(t *testing.T) {
	id, seq := parseUploadMessage(&nats.Msg{Data: []byte("legacy")})
	if id != "legacy" || seq != 0 {
		t.Fatalf("parsed id=%q seq=%d", id, seq)
	}
}

func TestClassifyNATSError(t *testing.T) {
	tests := []struct {
		err       error
		retryable bool
		record    bool
	}{
		{err: context.Canceled},
		{err: fmt.Errorf("nats publish: %w", nats.ErrConnectionClosed), retryable: true, record: true},
		{err: nats.ErrNoServers, retryable: true, record: true},
		{err: nats.ErrMaxPayload},
		{err: errors.New("weird"), record: true},
	}
	for _, tt := range tests {
		got := classifyNATSError(tt.err)
		if got.Retryable != tt.retryable || got.RecordFailure != tt.record {
			t.Fatalf("classifyNATSError(%v) = %+v", tt.err, got)
		}
	}
}

func TestWrapTemporaryIfNeeded(t *testing.T) {
	if err := wrapTemporaryIfNeeded(nats.ErrTimeout); !errors.Is(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary, got %v", err)
	}
	permanent := errors.New("bad")
	if err := wrapTemporaryIfNeeded(permanent); err != permanent {
		t.Fatalf("expected passthrough, got %v", err)
	}
}
