package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nerdjerry/ai-projects/internal/domain"
)

const promptHeader = `Based on the following context, please answer the question.
If the answer is not in the context, say "I don't have enough information to answer that."`

const chunkSeparator = "\n\n"

// ComposePrompt assembles the generation prompt: instruction header, the
// retrieved chunk texts in retrieval order (highest similarity first), then
// the literal question. The output never exceeds budget characters; chunks
// are dropped from the lowest-similarity end first, and the last surviving
// chunk is truncated if it alone would overflow. Identical inputs always
// produce identical output.
func ComposePrompt(question string, results []domain.ScoredChunk, budget int) (string, error) {
	prefix := promptHeader + "\n\nContext:\n"
	suffix := fmt.Sprintf("\n\nQuestion: %s\n\nAnswer:", question)

	// The budget is measured in characters, matching the chunker.
	overhead := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(suffix)
	if budget <= 0 || budget < overhead {
		return "", fmt.Errorf("%w: prompt budget %d cannot fit the question", domain.ErrInvalidConfig, budget)
	}

	available := budget - overhead

	texts := make([]string, 0, len(results))
	used := 0
	for i, r := range results {
		sep := 0
		if i > 0 {
			sep = len(chunkSeparator)
		}
		need := sep + utf8.RuneCountInString(r.Chunk.Text)

		if used+need > available {
			// Keep at least one chunk, truncated to whatever fits.
			if len(texts) == 0 {
				chunkRunes := []rune(r.Chunk.Text)
				room := available
				if room > len(chunkRunes) {
					room = len(chunkRunes)
				}
				if room > 0 {
					texts = append(texts, string(chunkRunes[:room]))
				}
			}
			break
		}

		texts = append(texts, r.Chunk.Text)
		used += need
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(strings.Join(texts, chunkSeparator))
	sb.WriteString(suffix)

	return sb.String(), nil
}
