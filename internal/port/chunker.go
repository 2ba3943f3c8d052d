package port

import "github.com/nerdjerry/ai-projects/internal/domain"

type Chunker interface {
	Chunk(doc domain.Document) ([]domain.Chunk, error)
}
