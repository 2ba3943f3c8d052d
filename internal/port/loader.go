package port

import "github.com/nerdjerry/ai-projects/internal/domain"

// Loader reads documents from a source directory in a deterministic order.
type Loader interface {
	Load(dir string) ([]domain.Document, error)
}
