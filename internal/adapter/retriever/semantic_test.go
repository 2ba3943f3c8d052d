package retriever

import (
	"testing"

	"github.com/nerdjerry/ai-projects/internal/adapter/index"
	"github.com/nerdjerry/ai-projects/internal/domain"
)

// countingEmbedder tracks how many Embed calls were made.
type countingEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (e *countingEmbedder) Embed(texts []string) ([][]float32, error) {
	e.calls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.vectors[t]
	}
	return out, nil
}

func (e *countingEmbedder) Dimension() int    { return 2 }
func (e *countingEmbedder) ModelName() string { return "counting" }

func buildIndex(t *testing.T, emb *countingEmbedder) *index.VectorIndex {
	t.Helper()
	idx := index.NewVectorIndex()
	chunks := []domain.Chunk{
		{ID: "c1", Text: "east"},
		{ID: "c2", Text: "north"},
	}
	if err := idx.Build(chunks, emb, nil); err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestSemanticRetrieverDefaultK(t *testing.T) {
	emb := &countingEmbedder{vectors: map[string][]float32{
		"east":  {1, 0},
		"north": {0, 1},
		"query": {1, 0.1},
	}}
	idx := buildIndex(t, emb)

	r := NewSemanticRetriever(idx, emb, 1)
	results, err := r.Search("query", 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 1 {
		t.Fatalf("expected default k=1 result, got %d", len(results))
	}
	if results[0].Chunk.ID != "c1" {
		t.Errorf("expected c1 as best match, got %s", results[0].Chunk.ID)
	}
}

func TestSemanticRetrieverExplicitK(t *testing.T) {
	emb := &countingEmbedder{vectors: map[string][]float32{
		"east":  {1, 0},
		"north": {0, 1},
		"query": {1, 1},
	}}
	idx := buildIndex(t, emb)

	r := NewSemanticRetriever(idx, emb, 1)
	results, err := r.Search("query", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("explicit k should override the default, got %d results", len(results))
	}
}

func TestSemanticRetrieverCachesQueryEmbedding(t *testing.T) {
	emb := &countingEmbedder{vectors: map[string][]float32{
		"east":  {1, 0},
		"north": {0, 1},
		"query": {1, 0},
	}}
	idx := buildIndex(t, emb)

	r := NewSemanticRetriever(idx, emb, 1)

	buildCalls := emb.calls
	if _, err := r.Search("query", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Search("query", 1); err != nil {
		t.Fatal(err)
	}

	if emb.calls != buildCalls+1 {
		t.Errorf("expected 1 embedding call for repeated query, got %d", emb.calls-buildCalls)
	}
}
