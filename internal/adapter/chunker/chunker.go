package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/nerdjerry/ai-projects/internal/domain"
)

// TextChunker splits documents into overlapping fixed-size character windows.
type TextChunker struct {
	chunkSize int
	overlap   int
}

func NewTextChunker(chunkSize, overlap int) (*TextChunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk_size must be > 0, got %d", domain.ErrInvalidConfig, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap must satisfy 0 <= overlap < chunk_size, got overlap=%d chunk_size=%d",
			domain.ErrInvalidConfig, overlap, chunkSize)
	}
	return &TextChunker{
		chunkSize: chunkSize,
		overlap:   overlap,
	}, nil
}

// Chunk covers the full document with no gaps. Sizes and offsets are in
// characters, not bytes, so multi-byte runes are never split. Each chunk
// spans [offset, offset+chunkSize) clipped to the document length; the next
// offset advances by chunkSize-overlap. A document shorter than chunkSize
// yields exactly one chunk.
func (c *TextChunker) Chunk(doc domain.Document) ([]domain.Chunk, error) {
	if doc.Text == "" {
		return nil, nil
	}

	runes := []rune(doc.Text)
	var chunks []domain.Chunk
	step := c.chunkSize - c.overlap

	for offset := 0; offset < len(runes); offset += step {
		end := offset + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, domain.Chunk{
			ID:     generateChunkID(doc.ID, offset, end),
			DocID:  doc.ID,
			Source: doc.Source,
			Start:  offset,
			End:    end,
			Text:   string(runes[offset:end]),
		})

		if end == len(runes) {
			break
		}
	}

	return chunks, nil
}

func generateChunkID(docID string, start, end int) string {
	data := fmt.Sprintf("%s:%d-%d", docID, start, end)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:8])
}
