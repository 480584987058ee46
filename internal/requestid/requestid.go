package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

const maxLen = 64

type ctxKey struct{}

func New() string {
	return uuid.NewString()
}

// FromHeader keeps a caller-supplied ID only when it is short and made of
// [A-Za-z0-9._-]; anything else is replaced so it cannot forge log lines.
func FromHeader(raw string) string {
	if raw == "" || len(raw) > maxLen {
		return New()
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return New()
		}
	}
	return raw
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns "" when ctx carries no ID.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
