package port

import "github.com/nerdjerry/ai-projects/internal/domain"

// LLM represents a language model for text generation.
type LLM interface {
	// Generate generates text based on the prompt.
	Generate(prompt string) (string, error)

	// GenerateWithSystem generates text with a system prompt.
	GenerateWithSystem(systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}

// ChatModel generates a reply conditioned on a conversation transcript.
type ChatModel interface {
	Chat(system string, messages []domain.Message) (string, error)
}
