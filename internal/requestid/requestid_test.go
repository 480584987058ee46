package requestid_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ErlanBelekov/easydev/internal/requestid"
	"github.com/google/uuid"
)

func TestFromHeader(t *testing.T) {
	if got := requestid.FromHeader("req-123_a.b"); got != "req-123_a.b" {
		t.Errorf("FromHeader kept = %q", got)
	}

	for _, raw := range []string{"", "bad id", "line\nbreak", strings.Repeat("a", 65)} {
		got := requestid.FromHeader(raw)
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("FromHeader(%q) = %q, want a fresh uuid", raw, got)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	if got := requestid.FromContext(context.Background()); got != "" {
		t.Errorf("empty ctx = %q", got)
	}
	ctx := requestid.WithRequestID(context.Background(), "abc")
	if got := requestid.FromContext(ctx); got != "abc" {
		t.Errorf("FromContext = %q, want abc", got)
	}
}
