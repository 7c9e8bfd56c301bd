package memory

import (
	"context"
)

// SemanticIndex is a pure similarity oracle over news item bodies. It knows
// nothing about agents or processed state; filtering the ranked ids is the
// caller's job.
type SemanticIndex interface {
	// Index stores one entry per news id, overwriting on re-index.
	Index(ctx context.Context, newsID, text string) error

	// Query returns news ids ranked by descending relevance. Querying an
	// empty index returns an empty list, never an error.
	Query(ctx context.Context, query string, topK int) ([]string, error)
}
