package port

import "github.com/nerdjerry/ai-projects/internal/domain"

// HistoryStore persists conversation history across sessions.
type HistoryStore interface {
	AppendMessage(msg domain.Message) error

	ListMessages() ([]domain.Message, error)

	ClearMessages() error
}

// PostStore persists approved social posts.
type PostStore interface {
	SavePost(post domain.SocialPost) error

	ListPosts() ([]domain.SocialPost, error)
}
