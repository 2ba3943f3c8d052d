package usecase

import (
	"fmt"
	"log/slog"

	"github.com/nerdjerry/ai-projects/internal/adapter/index"
	"github.com/nerdjerry/ai-projects/internal/adapter/retriever"
	"github.com/nerdjerry/ai-projects/internal/domain"
	"github.com/nerdjerry/ai-projects/internal/port"
)

// RagOptions are the tunables of one pipeline run.
type RagOptions struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	PromptBudget int
}

// RagPipeline owns one in-memory vector index, built once per run and then
// queried any number of times. The build phase finishes before the first
// query; queries never mutate the index.
type RagPipeline struct {
	loader   port.Loader
	chunker  port.Chunker
	embedder port.Embedder
	llm      port.LLM
	opts     RagOptions
	logger   *slog.Logger

	index     *index.VectorIndex
	retriever port.Retriever
}

func NewRagPipeline(
	loader port.Loader,
	chunker port.Chunker,
	embedder port.Embedder,
	llm port.LLM,
	opts RagOptions,
	logger *slog.Logger,
) *RagPipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &RagPipeline{
		loader:   loader,
		chunker:  chunker,
		embedder: embedder,
		llm:      llm,
		opts:     opts,
		logger:   logger,
	}
}

// BuildStats summarizes one index build.
type BuildStats struct {
	Documents int
	Chunks    int
}

// Build loads, chunks and embeds every document under dir. A failed build
// leaves no usable index behind.
func (p *RagPipeline) Build(dir string, progress index.ProgressFunc) (BuildStats, error) {
	docs, err := p.loader.Load(dir)
	if err != nil {
		return BuildStats{}, err
	}

	var chunks []domain.Chunk
	for _, doc := range docs {
		docChunks, err := p.chunker.Chunk(doc)
		if err != nil {
			return BuildStats{}, fmt.Errorf("chunking %s: %w", doc.Source, err)
		}
		chunks = append(chunks, docChunks...)
	}

	p.logger.Info("building vector index",
		"documents", len(docs),
		"chunks", len(chunks),
		"model", p.embedder.ModelName())

	idx := index.NewVectorIndex()
	if err := idx.Build(chunks, p.embedder, progress); err != nil {
		return BuildStats{}, err
	}

	p.index = idx
	p.retriever = retriever.NewSemanticRetriever(idx, p.embedder, p.opts.TopK)

	return BuildStats{Documents: len(docs), Chunks: len(chunks)}, nil
}

// Retrieve returns the top-k chunks for a question without generating an
// answer. Useful for inspecting what the generator would be grounded on.
func (p *RagPipeline) Retrieve(question string, k int) ([]domain.ScoredChunk, error) {
	if p.retriever == nil {
		return nil, fmt.Errorf("pipeline has no index; call Build first")
	}
	return p.retriever.Search(question, k)
}

// Ask answers a question against the built index.
func (p *RagPipeline) Ask(question string) (domain.Answer, error) {
	results, err := p.Retrieve(question, p.opts.TopK)
	if err != nil {
		return domain.Answer{}, err
	}

	prompt, err := ComposePrompt(question, results, p.opts.PromptBudget)
	if err != nil {
		return domain.Answer{}, err
	}

	text, err := p.llm.GenerateWithSystem(
		"You are a helpful assistant that answers questions based on the provided context.",
		prompt,
	)
	if err != nil {
		return domain.Answer{}, err
	}

	return domain.Answer{Text: text, Sources: results}, nil
}
