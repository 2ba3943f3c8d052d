package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/nerdjerry/ai-projects/internal/domain"
	"github.com/nerdjerry/ai-projects/internal/port"
)

var stylePrompts = map[string]string{
	"casual":       "Write in a friendly, conversational tone",
	"professional": "Write in a professional, business tone",
	"funny":        "Write in a humorous, entertaining tone",
	"informative":  "Write in an educational, informative tone",
}

// SocialService generates posts, runs an automated review pass, and persists
// posts the human operator approves. Publishing itself stays out of scope;
// the approval gate is the point.
type SocialService struct {
	generator port.LLM
	reviewer  port.LLM
	posts     port.PostStore
}

// NewSocialService wires a generator and a reviewer. The reviewer should be
// a colder model configuration than the generator.
func NewSocialService(generator, reviewer port.LLM, posts port.PostStore) *SocialService {
	return &SocialService{
		generator: generator,
		reviewer:  reviewer,
		posts:     posts,
	}
}

// Styles lists the supported writing styles.
func Styles() []string {
	return []string{"casual", "professional", "funny", "informative"}
}

// GeneratePost drafts a post about topic in the given style, capped at
// maxLength characters.
func (s *SocialService) GeneratePost(topic, style string, maxLength int) (domain.SocialPost, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.SocialPost{}, fmt.Errorf("%w: empty topic", domain.ErrInvalidConfig)
	}
	if maxLength <= 0 {
		maxLength = 280
	}

	styleInstruction, ok := stylePrompts[style]
	if !ok {
		style = "casual"
		styleInstruction = stylePrompts[style]
	}

	prompt := fmt.Sprintf(`Create a social media post about: %s

Requirements:
- %s
- Maximum %d characters
- Engaging and attention-grabbing
- Include relevant hashtags (1-3)
- Can include emojis if appropriate

Generate only the post text, nothing else.`, topic, styleInstruction, maxLength)

	text, err := s.generator.GenerateWithSystem(
		"You are a creative social media content creator.",
		prompt,
	)
	if err != nil {
		return domain.SocialPost{}, err
	}

	return domain.SocialPost{
		Topic:     topic,
		Style:     style,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now(),
	}, nil
}

// ReviewPost asks the reviewer model to check the draft for safety issues.
// A response containing APPROVED passes; anything else is surfaced as an
// issue for the human operator.
func (s *SocialService) ReviewPost(post domain.SocialPost) (domain.ReviewResult, error) {
	prompt := fmt.Sprintf(`Review this social media post for potential issues:

"%s"

Check for:
- Offensive content
- Misinformation claims
- Promotional spam
- Privacy violations

If there are concerns, list them. If the post is fine, respond with "APPROVED".
Be strict but fair.`, post.Text)

	result, err := s.reviewer.GenerateWithSystem(
		"You are a content moderator focused on safety and ethics.",
		prompt,
	)
	if err != nil {
		return domain.ReviewResult{}, err
	}

	result = strings.TrimSpace(result)
	if strings.Contains(strings.ToUpper(result), "APPROVED") {
		return domain.ReviewResult{Approved: true}, nil
	}
	return domain.ReviewResult{Approved: false, Issues: []string{result}}, nil
}

// SaveApproved persists a post the human operator accepted.
func (s *SocialService) SaveApproved(post domain.SocialPost) error {
	return s.posts.SavePost(post)
}

// ListApproved returns all previously approved posts.
func (s *SocialService) ListApproved() ([]domain.SocialPost, error) {
	return s.posts.ListPosts()
}
