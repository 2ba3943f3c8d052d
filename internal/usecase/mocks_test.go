package usecase

import (
	"errors"

	"github.com/nerdjerry/ai-projects/internal/domain"
)

// fakeLLM records prompts and returns canned replies.
type fakeLLM struct {
	reply   string
	err     error
	prompts []string
	systems []string
}

func (f *fakeLLM) Generate(prompt string) (string, error) {
	return f.GenerateWithSystem("", prompt)
}

func (f *fakeLLM) GenerateWithSystem(system, prompt string) (string, error) {
	f.systems = append(f.systems, system)
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) ModelName() string { return "fake" }

// fakeChatModel records the transcript it was given.
type fakeChatModel struct {
	reply    string
	err      error
	lastSeen []domain.Message
}

func (f *fakeChatModel) Chat(system string, messages []domain.Message) (string, error) {
	f.lastSeen = append([]domain.Message(nil), messages...)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// memHistory is an in-memory HistoryStore.
type memHistory struct {
	messages []domain.Message
}

func (m *memHistory) AppendMessage(msg domain.Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memHistory) ListMessages() ([]domain.Message, error) {
	return append([]domain.Message(nil), m.messages...), nil
}

func (m *memHistory) ClearMessages() error {
	m.messages = nil
	return nil
}

// memPosts is an in-memory PostStore.
type memPosts struct {
	posts []domain.SocialPost
}

func (m *memPosts) SavePost(post domain.SocialPost) error {
	m.posts = append(m.posts, post)
	return nil
}

func (m *memPosts) ListPosts() ([]domain.SocialPost, error) {
	return append([]domain.SocialPost(nil), m.posts...), nil
}

// fakeQuotes serves quotes from a map.
type fakeQuotes struct {
	quotes map[string]domain.StockQuote
}

func (f *fakeQuotes) Quote(symbol string) (domain.StockQuote, error) {
	q, ok := f.quotes[symbol]
	if !ok {
		return domain.StockQuote{}, errors.New("unknown symbol " + symbol)
	}
	return q, nil
}

// wordOverlapEmbedder maps text to a bag-of-words vector over a fixed
// vocabulary, so semantically overlapping strings really are more similar.
type wordOverlapEmbedder struct {
	vocab []string
}

func (e *wordOverlapEmbedder) Embed(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(e.vocab))
		for j, word := range e.vocab {
			if containsWord(text, word) {
				vec[j] = 1
			}
		}
		out[i] = vec
	}
	return out, nil
}

func containsWord(text, word string) bool {
	for _, t := range splitWords(text) {
		if t == word {
			return true
		}
	}
	return false
}

func splitWords(text string) []string {
	var words []string
	var cur []rune
	for _, r := range text {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			if 'A' <= r && r <= 'Z' {
				r += 'a' - 'A'
			}
			cur = append(cur, r)
		} else if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}
	if len(cur) > 0 {
		words = append(words, string(cur))
	}
	return words
}

func (e *wordOverlapEmbedder) Dimension() int    { return len(e.vocab) }
func (e *wordOverlapEmbedder) ModelName() string { return "word-overlap" }
