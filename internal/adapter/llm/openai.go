package llm

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nerdjerry/ai-projects/internal/domain"
)

// OpenAIClient generates text through the chat completions API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewOpenAIClient(apiKeyEnv, model, baseURL string, temperature float32, maxTokens int) (*OpenAIClient, error) {
	key := os.Getenv(apiKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}

	cfg := openai.DefaultConfig(key)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (c *OpenAIClient) Generate(prompt string) (string, error) {
	return c.GenerateWithSystem("", prompt)
}

func (c *OpenAIClient) GenerateWithSystem(systemPrompt, userPrompt string) (string, error) {
	return c.Chat(systemPrompt, []domain.Message{{Role: "user", Content: userPrompt}})
}

// Chat sends a system prompt plus a conversation transcript. The memory
// assistant uses this directly; Generate and GenerateWithSystem are
// single-turn conveniences on top of it.
func (c *OpenAIClient) Chat(system string, messages []domain.Message) (string, error) {
	var apiMessages []openai.ChatCompletionMessage
	if system != "" {
		apiMessages = append(apiMessages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleAssistant && role != openai.ChatMessageRoleSystem {
			role = openai.ChatMessageRoleUser
		}
		apiMessages = append(apiMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    apiMessages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationService, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", domain.ErrGenerationService)
	}

	return resp.Choices[0].Message.Content, nil
}

// WithTemperature returns a copy of the client using a different sampling
// temperature. The review pass wants colder output than post generation.
func (c *OpenAIClient) WithTemperature(temperature float32) *OpenAIClient {
	clone := *c
	clone.temperature = temperature
	return &clone
}

func (c *OpenAIClient) ModelName() string {
	return c.model
}
