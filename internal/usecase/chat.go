package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/nerdjerry/ai-projects/internal/domain"
	"github.com/nerdjerry/ai-projects/internal/port"
)

const chatSystemPrompt = "You are a helpful assistant with memory of the conversation. " +
	"Use the conversation history to give personalized, contextual responses."

// ChatService is a conversational assistant whose history survives process
// restarts. Each session object exclusively owns its store handle; there is
// no process-wide singleton history.
type ChatService struct {
	model         port.ChatModel
	history       port.HistoryStore
	contextWindow int
}

func NewChatService(model port.ChatModel, history port.HistoryStore, contextWindow int) *ChatService {
	if contextWindow <= 0 {
		contextWindow = 10
	}
	return &ChatService{
		model:         model,
		history:       history,
		contextWindow: contextWindow,
	}
}

// Send submits one user message and returns the assistant reply. The model
// sees the most recent contextWindow turns; both new turns are persisted
// only after a successful generation, so a failed call leaves history
// untouched.
func (c *ChatService) Send(userMessage string) (string, error) {
	userMessage = strings.TrimSpace(userMessage)
	if userMessage == "" {
		return "", fmt.Errorf("%w: empty message", domain.ErrInvalidConfig)
	}

	history, err := c.history.ListMessages()
	if err != nil {
		return "", fmt.Errorf("loading history: %w", err)
	}

	if len(history) > c.contextWindow {
		history = history[len(history)-c.contextWindow:]
	}

	turns := append(history, domain.Message{
		Role:      "user",
		Content:   userMessage,
		Timestamp: time.Now(),
	})

	reply, err := c.model.Chat(chatSystemPrompt, turns)
	if err != nil {
		return "", err
	}

	if err := c.history.AppendMessage(turns[len(turns)-1]); err != nil {
		return "", fmt.Errorf("saving user turn: %w", err)
	}
	if err := c.history.AppendMessage(domain.Message{
		Role:      "assistant",
		Content:   reply,
		Timestamp: time.Now(),
	}); err != nil {
		return "", fmt.Errorf("saving assistant turn: %w", err)
	}

	return reply, nil
}

// History returns the full persisted transcript.
func (c *ChatService) History() ([]domain.Message, error) {
	return c.history.ListMessages()
}

// Forget deletes all persisted history.
func (c *ChatService) Forget() error {
	return c.history.ClearMessages()
}
