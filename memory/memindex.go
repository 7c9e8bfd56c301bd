package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/llm"
	"gonum.org/v1/gonum/mat"
)

// InMemoryIndex scores entries by inner product against the query embedding.
// Used in tests and vector-disabled deployments; the sqlite-vec index is the
// durable one.
type InMemoryIndex struct {
	embedder llm.Embedder

	mu      sync.RWMutex
	vectors map[string][]float32
}

var _ SemanticIndex = (*InMemoryIndex)(nil)

func NewInMemoryIndex(embedder llm.Embedder) *InMemoryIndex {
	return &InMemoryIndex{
		embedder: embedder,
		vectors:  make(map[string][]float32),
	}
}

func (s *InMemoryIndex) Index(ctx context.Context, newsID, text string) error {
	embeddings, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return errors.Wrapf(err, "failed to embed news %s", newsID)
	}
	if len(embeddings) == 0 {
		return errors.Errorf("embedder returned no vector for news %s", newsID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors[newsID] = embeddings[0]
	return nil
}

func (s *InMemoryIndex) Query(ctx context.Context, query string, topK int) ([]string, error) {
	if topK < 1 {
		topK = 1
	}

	s.mu.RLock()
	empty := len(s.vectors) == 0
	s.mu.RUnlock()
	if empty {
		return nil, nil
	}

	// Embed outside the lock: a slow remote call must not block writers.
	embeddings, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to embed query")
	}
	if len(embeddings) == 0 {
		return nil, nil
	}
	queryEmbedding := embeddings[0]

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.vectors) == 0 {
		return nil, nil
	}

	dim := len(queryEmbedding)
	ids := make([]string, 0, len(s.vectors))
	for id, vec := range s.vectors {
		if len(vec) == dim {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids) // stable order for equal scores

	queryVec := make([]float64, dim)
	for i, v := range queryEmbedding {
		queryVec[i] = float64(v)
	}
	data := make([]float64, len(ids)*dim)
	for i, id := range ids {
		for j, v := range s.vectors[id] {
			data[i*dim+j] = float64(v)
		}
	}

	var scores mat.VecDense
	scores.MulVec(mat.NewDense(len(ids), dim, data), mat.NewVecDense(dim, queryVec))

	type scored struct {
		id    string
		score float64
	}
	ranked := make([]scored, len(ids))
	for i, id := range ids {
		ranked[i] = scored{id: id, score: scores.AtVec(i)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	result := make([]string, len(ranked))
	for i, r := range ranked {
		result[i] = r.id
	}
	return result, nil
}
