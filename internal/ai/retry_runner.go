package ai

import (
	"context"

	"github.com/CodexForgeBR/flash-ui/internal/parser"
)

// RetryGenerator wraps any Generator with WithRetry backoff.
type RetryGenerator struct {
	Inner    Generator
	RetryCfg RetryConfig
}

// Generate delegates to the inner generator, retrying rate-limited calls.
func (r *RetryGenerator) Generate(ctx context.Context, req Request) (string, error) {
	return WithRetry(ctx, r.RetryCfg, func() (string, error) {
		return r.Inner.Generate(ctx, req)
	})
}

// Stream delegates to the inner generator, retrying only the opening of
// the stream. Failures after the first fragment are not retried.
func (r *RetryGenerator) Stream(ctx context.Context, req Request) (parser.Source, error) {
	return WithRetry(ctx, r.RetryCfg, func() (parser.Source, error) {
		return r.Inner.Stream(ctx, req)
	})
}
