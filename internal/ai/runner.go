package ai

import (
	"context"

	"github.com/CodexForgeBR/flash-ui/internal/parser"
)

// Request describes one call to a generative model.
type Request struct {
	Model  string
	Prompt string

	// Temperature is sent only when non-nil.
	Temperature *float64
}

// Generator defines the interface for generative model backends.
type Generator interface {
	// Generate returns the complete text of a single response.
	Generate(ctx context.Context, req Request) (string, error)

	// Stream opens a streaming response. The returned Source yields text
	// fragments as they arrive and io.EOF when the response is complete.
	Stream(ctx context.Context, req Request) (parser.Source, error)
}

// Temperature returns a pointer to t, for use in Request.
func Temperature(t float64) *float64 {
	return &t
}
