package llm

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nerdjerry/ai-projects/internal/domain"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature float32 `json:"temperature"`
}

func newTestServer(t *testing.T, captured *chatRequest, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		})
	}))
}

func newTestClient(t *testing.T, baseURL string) *OpenAIClient {
	t.Helper()
	t.Setenv("TEST_API_KEY", "test-key")
	client, err := NewOpenAIClient("TEST_API_KEY", "gpt-4o-mini", baseURL, 0.7, 500)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestGenerateWithSystem(t *testing.T) {
	var req chatRequest
	srv := newTestServer(t, &req, "the answer")
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	out, err := client.GenerateWithSystem("be helpful", "what is up?")
	if err != nil {
		t.Fatal(err)
	}
	if out != "the answer" {
		t.Errorf("unexpected reply %q", out)
	}

	if len(req.Messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" || req.Messages[0].Content != "be helpful" {
		t.Errorf("unexpected system message %+v", req.Messages[0])
	}
	if req.Messages[1].Role != "user" || req.Messages[1].Content != "what is up?" {
		t.Errorf("unexpected user message %+v", req.Messages[1])
	}
}

func TestChatMapsTranscriptRoles(t *testing.T) {
	var req chatRequest
	srv := newTestServer(t, &req, "ok")
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.Chat("system prompt", []domain.Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi there"},
		{Role: "weird", Content: "mystery"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(req.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(req.Messages))
	}
	roles := []string{"system", "user", "assistant", "user"}
	for i, want := range roles {
		if req.Messages[i].Role != want {
			t.Errorf("message %d: expected role %s, got %s", i, want, req.Messages[i].Role)
		}
	}
}

func TestChatServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.Generate("anything")
	if !errors.Is(err, domain.ErrGenerationService) {
		t.Errorf("expected ErrGenerationService, got %v", err)
	}
}

func TestWithTemperature(t *testing.T) {
	var req chatRequest
	srv := newTestServer(t, &req, "ok")
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	cold := client.WithTemperature(0.2)

	if _, err := cold.Generate("review this"); err != nil {
		t.Fatal(err)
	}
	if req.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %v", req.Temperature)
	}
	if client.temperature != 0.7 {
		t.Errorf("original client temperature changed to %v", client.temperature)
	}
}

func TestMissingAPIKey(t *testing.T) {
	t.Setenv("MISSING_KEY_VAR", "")
	if _, err := NewOpenAIClient("MISSING_KEY_VAR", "gpt-4o-mini", "", 0.7, 500); err == nil {
		t.Error("expected error for missing API key")
	}
}
