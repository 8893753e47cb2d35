package logger

import (
	"context"
	"testing"
)

func TestParseLevel_AllBranches(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "debug"},
		{"bogus", "debug"},
	}
	for _, c := range cases {
		if got := parseLevel(c.in).String(); got != c.want {
			t.Errorf("parseLevel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNamed_EmptyReturnsRoot(t *testing.T) {
	if Named("") != Get() {
		t.Fatal("Named(\"\") should return the root logger")
	}
	if Named("ingest") == Get() {
		t.Fatal("Named(component) should return a child, not root")
	}
}

func TestC_WithRequestID(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-123")
	if C(ctx) == nil {
		t.Fatal("C returned nil")
	}
	// no request id on a bare context is fine too
	if C(context.Background()) == nil {
		t.Fatal("C on bare context returned nil")
	}
}
