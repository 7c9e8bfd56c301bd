// Package news fetches AI-related article candidates from configured RSS
// sources and extracts full article bodies from the source sites.
package news

import (
	"context"
)

// Candidate is one article found in a feed. It carries only feed metadata;
// the full body is fetched separately and only for articles that survive
// deduplication.
type Candidate struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}

// Producer finds new article candidates and resolves their full text.
type Producer interface {
	FetchCandidates(ctx context.Context) ([]Candidate, error)
	FetchBody(ctx context.Context, candidate Candidate) (string, error)
}
