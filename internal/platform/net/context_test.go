package net_test

import (
	"context"
	"testing"

	pnet "smartjotter/internal/platform/net"
)

func TestWithRequestAndRequestID(t *testing.T) {
	ctx := pnet.WithRequest(context.Background(), "req-9")
	if got := pnet.RequestID(ctx); got != "req-9" {
		t.Fatalf("RequestID = %q, want %q", got, "req-9")
	}

	// empty id is not stored
	ctx2 := pnet.WithRequest(context.Background(), "")
	if got := pnet.RequestID(ctx2); got != "" {
		t.Fatalf("RequestID on empty = %q, want empty", got)
	}
}

func TestWithRunAndRunID(t *testing.T) {
	ctx := pnet.WithRun(context.Background(), "run-1")
	if got := pnet.RunID(ctx); got != "run-1" {
		t.Fatalf("RunID = %q, want %q", got, "run-1")
	}
	if got := pnet.RunID(context.Background()); got != "" {
		t.Fatalf("RunID on empty ctx = %q, want empty", got)
	}
}
