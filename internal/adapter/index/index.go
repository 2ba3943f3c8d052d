package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/nerdjerry/ai-projects/internal/domain"
	"github.com/nerdjerry/ai-projects/internal/port"
)

// VectorIndex holds (chunk, embedding) pairs in memory and supports linear
// cosine-similarity search. It is owned by a single pipeline run and rebuilt
// from scratch each run; brute force is fine for document collections of a
// few files.
type VectorIndex struct {
	chunks     []domain.Chunk
	embeddings [][]float32
	dimension  int
}

func NewVectorIndex() *VectorIndex {
	return &VectorIndex{}
}

// ProgressFunc reports build progress as (embedded, total) chunks.
type ProgressFunc func(done, total int)

const embedBatchSize = 100

// Build embeds every chunk and stores the pairs. On failure the index is
// left unchanged, so a failed build never produces a partially filled index.
func (x *VectorIndex) Build(chunks []domain.Chunk, embedder port.Embedder, progress ProgressFunc) error {
	if len(chunks) == 0 {
		x.chunks = nil
		x.embeddings = nil
		x.dimension = embedder.Dimension()
		return nil
	}

	embeddings := make([][]float32, 0, len(chunks))
	for i := 0; i < len(chunks); i += embedBatchSize {
		end := i + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-i)
		for _, c := range chunks[i:end] {
			texts = append(texts, c.Text)
		}

		batch, err := embedder.Embed(texts)
		if err != nil {
			return fmt.Errorf("embedding chunks %d-%d: %w", i, end, err)
		}
		if len(batch) != len(texts) {
			return fmt.Errorf("%w: expected %d embeddings, got %d", domain.ErrEmbeddingService, len(texts), len(batch))
		}
		embeddings = append(embeddings, batch...)

		if progress != nil {
			progress(end, len(chunks))
		}
	}

	dim := embedder.Dimension()
	for i, e := range embeddings {
		if len(e) != dim {
			return fmt.Errorf("%w: chunk %d has dimension %d, expected %d", domain.ErrEmbeddingService, i, len(e), dim)
		}
	}

	x.chunks = append([]domain.Chunk(nil), chunks...)
	x.embeddings = embeddings
	x.dimension = dim
	return nil
}

// Search returns the top-k chunks by cosine similarity, highest first.
// k is clamped to the index size. Equal scores keep insertion order.
func (x *VectorIndex) Search(query []float32, k int) ([]domain.ScoredChunk, error) {
	if len(x.chunks) == 0 {
		return nil, nil
	}
	if len(query) != x.dimension {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", x.dimension, len(query))
	}

	results := make([]domain.ScoredChunk, 0, len(x.chunks))
	for i, chunk := range x.chunks {
		results = append(results, domain.ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(query, x.embeddings[i]),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	if k < 0 {
		k = 0
	}
	return results[:k], nil
}

// Size returns the number of stored chunks.
func (x *VectorIndex) Size() int {
	return len(x.chunks)
}

// Dimension returns the embedding dimension the index was built with.
func (x *VectorIndex) Dimension() int {
	return x.dimension
}

// cosineSimilarity calculates the cosine similarity between two vectors.
// A zero-magnitude vector yields similarity 0 rather than an error.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
