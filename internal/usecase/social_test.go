package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/nerdjerry/ai-projects/internal/domain"
)

func TestGeneratePost(t *testing.T) {
	gen := &fakeLLM{reply: "Go 1.22 loops are saner now! #golang"}
	s := NewSocialService(gen, &fakeLLM{}, &memPosts{})

	post, err := s.GeneratePost("go 1.22 release", "informative", 280)
	if err != nil {
		t.Fatal(err)
	}

	if post.Text != "Go 1.22 loops are saner now! #golang" {
		t.Errorf("unexpected post text %q", post.Text)
	}
	if post.Style != "informative" {
		t.Errorf("expected style preserved, got %s", post.Style)
	}
	if post.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "go 1.22 release") {
		t.Error("prompt missing the topic")
	}
	if !strings.Contains(prompt, "Maximum 280 characters") {
		t.Error("prompt missing the length requirement")
	}
	if !strings.Contains(prompt, "educational, informative tone") {
		t.Error("prompt missing the style instruction")
	}
}

func TestGeneratePostUnknownStyleFallsBack(t *testing.T) {
	gen := &fakeLLM{reply: "post"}
	s := NewSocialService(gen, &fakeLLM{}, &memPosts{})

	post, err := s.GeneratePost("topic", "sarcastic", 280)
	if err != nil {
		t.Fatal(err)
	}
	if post.Style != "casual" {
		t.Errorf("expected fallback to casual, got %s", post.Style)
	}
}

func TestGeneratePostEmptyTopic(t *testing.T) {
	s := NewSocialService(&fakeLLM{}, &fakeLLM{}, &memPosts{})
	if _, err := s.GeneratePost("   ", "casual", 280); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestReviewPostApproved(t *testing.T) {
	rev := &fakeLLM{reply: "APPROVED"}
	s := NewSocialService(&fakeLLM{}, rev, &memPosts{})

	result, err := s.ReviewPost(domain.SocialPost{Text: "a harmless post"})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Approved {
		t.Error("expected approval")
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected no issues, got %v", result.Issues)
	}
	if !strings.Contains(rev.prompts[0], "a harmless post") {
		t.Error("review prompt missing the post text")
	}
}

func TestReviewPostFlagged(t *testing.T) {
	rev := &fakeLLM{reply: "This post contains an unverifiable health claim."}
	s := NewSocialService(&fakeLLM{}, rev, &memPosts{})

	result, err := s.ReviewPost(domain.SocialPost{Text: "miracle cure!"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Approved {
		t.Error("expected rejection")
	}
	if len(result.Issues) != 1 || !strings.Contains(result.Issues[0], "health claim") {
		t.Errorf("expected reviewer output surfaced as an issue, got %v", result.Issues)
	}
}

func TestSaveAndListApproved(t *testing.T) {
	posts := &memPosts{}
	s := NewSocialService(&fakeLLM{}, &fakeLLM{}, posts)

	post := domain.SocialPost{Topic: "t", Text: "approved post"}
	if err := s.SaveApproved(post); err != nil {
		t.Fatal(err)
	}

	saved, err := s.ListApproved()
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 1 || saved[0].Text != "approved post" {
		t.Errorf("unexpected saved posts %v", saved)
	}
}

func TestGeneratePostServiceError(t *testing.T) {
	gen := &fakeLLM{err: domain.ErrGenerationService}
	s := NewSocialService(gen, &fakeLLM{}, &memPosts{})

	if _, err := s.GeneratePost("topic", "casual", 280); !errors.Is(err, domain.ErrGenerationService) {
		t.Errorf("expected ErrGenerationService to propagate, got %v", err)
	}
}
