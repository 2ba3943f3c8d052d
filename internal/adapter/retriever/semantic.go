package retriever

import (
	"fmt"

	"github.com/nerdjerry/ai-projects/internal/adapter/cache"
	"github.com/nerdjerry/ai-projects/internal/adapter/index"
	"github.com/nerdjerry/ai-projects/internal/domain"
	"github.com/nerdjerry/ai-projects/internal/port"
)

// SemanticRetriever embeds a query and searches the vector index. Beyond
// defaulting k it is a pass-through; the index owns scoring and ordering.
type SemanticRetriever struct {
	index    *index.VectorIndex
	embedder port.Embedder
	defaultK int
	cache    *cache.EmbeddingCache
}

func NewSemanticRetriever(idx *index.VectorIndex, embedder port.Embedder, defaultK int) *SemanticRetriever {
	if defaultK <= 0 {
		defaultK = 3
	}
	return &SemanticRetriever{
		index:    idx,
		embedder: embedder,
		defaultK: defaultK,
		cache:    cache.NewEmbeddingCache(100),
	}
}

func (r *SemanticRetriever) Search(query string, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		k = r.defaultK
	}

	queryEmbedding, ok := r.cache.Get(query)
	if !ok {
		embeddings, err := r.embedder.Embed([]string{query})
		if err != nil {
			return nil, fmt.Errorf("failed to embed query: %w", err)
		}
		if len(embeddings) == 0 {
			return nil, fmt.Errorf("%w: embedding returned empty result", domain.ErrEmbeddingService)
		}
		queryEmbedding = embeddings[0]
		r.cache.Put(query, queryEmbedding)
	}

	results, err := r.index.Search(queryEmbedding, k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return results, nil
}
