package generator

import "context"

// Request is one call to a text generation backend.
type Request struct {
	System string
	Prompt string
	// JSON asks the backend for a JSON-only response when it supports it.
	JSON bool
}

// Provider is a generative text backend. Implementations are stateless from
// the caller's point of view and safe for concurrent use.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}
