// Package llm wraps the language-model providers behind the narrow prompt-in,
// text-out contract the decision layer depends on. Providers are swappable;
// nothing outside this package imports a provider SDK.
package llm

import (
	"context"
)

type (
	// Client is the single model dependency of the core. A failed or empty
	// completion is a transport failure: the caller aborts its cycle.
	Client interface {
		Complete(ctx context.Context, prompt string) (string, error)
	}

	// Embedder turns text into vectors for the semantic index.
	Embedder interface {
		Embed(ctx context.Context, texts ...string) ([][]float32, error)
	}
)
