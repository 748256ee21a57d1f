package logging

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// ValidateAndExtractRequestID keeps a well-formed incoming id and mints a new
// one otherwise.
func ValidateAndExtractRequestID(header string) string {
	if _, err := uuid.Parse(header); err == nil {
		return header
	}

	return uuid.NewString()
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}

	return ""
}
