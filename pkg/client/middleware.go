package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// RateLimit blocks each request until the limiter grants a token.
func RateLimit(l *rate.Limiter) Middleware {
	return func(ctx context.Context, _ *http.Request) error {
		return l.Wait(ctx)
	}
}

// RequestID tags each request with a fresh X-Request-ID unless one is set.
func RequestID() Middleware {
	return func(_ context.Context, req *http.Request) error {
		if req.Header.Get(requestIDHeader) == "" {
			req.Header.Set(requestIDHeader, uuid.NewString())
		}
		return nil
	}
}

// UserAgent sets the User-Agent header.
func UserAgent(ua string) Middleware {
	return func(_ context.Context, req *http.Request) error {
		req.Header.Set("User-Agent", ua)
		return nil
	}
}
