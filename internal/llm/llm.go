package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured signals that no usable API credential is present and the
// caller should take its deterministic fallback path.
var ErrNotConfigured = errors.New("llm: no API key configured")

// Client is the outbound interface to the generative model. Implementations
// must be safe for concurrent use.
type Client interface {
	// Generate sends a single prompt and returns the raw model reply text.
	Generate(ctx context.Context, prompt string) (string, error)
	// Configured reports whether a usable credential is present. Callers use
	// this to decide on mock mode once, at construction time.
	Configured() bool
}
