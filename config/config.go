package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the ai-projects tools.
type Config struct {
	Documents DocumentsConfig `yaml:"documents"`
	Rag       RagConfig       `yaml:"rag"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Social    SocialConfig    `yaml:"social"`
	Stocks    StocksConfig    `yaml:"stocks"`
	Memory    MemoryConfig    `yaml:"memory"`
	Quality   QualityConfig   `yaml:"quality"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DocumentsConfig controls which files the document loader accepts.
type DocumentsConfig struct {
	Dir      string   `yaml:"dir"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// RagConfig holds retrieval pipeline configuration.
type RagConfig struct {
	ChunkSize    int `yaml:"chunk_size"`    // max characters per chunk
	ChunkOverlap int `yaml:"chunk_overlap"` // characters shared with the previous chunk
	TopK         int `yaml:"top_k"`
	PromptBudget int `yaml:"prompt_budget"` // max characters of composed prompt
}

// OpenAIConfig holds settings for the hosted model APIs.
type OpenAIConfig struct {
	APIKeyEnv         string  `yaml:"api_key_env"`        // environment variable for the API key
	BaseURL           string  `yaml:"base_url"`           // empty means the default endpoint
	ChatModel         string  `yaml:"chat_model"`
	EmbeddingProvider string  `yaml:"embedding_provider"` // "openai" or "ollama"
	EmbeddingModel    string  `yaml:"embedding_model"`
	Temperature       float32 `yaml:"temperature"`
	MaxTokens         int     `yaml:"max_tokens"`
}

// SocialConfig holds post generation settings.
type SocialConfig struct {
	Style     string `yaml:"style"` // "casual", "professional", "funny", "informative"
	MaxLength int    `yaml:"max_length"`
}

// StocksConfig holds quote fetching settings.
type StocksConfig struct {
	BaseURL string `yaml:"base_url"` // empty means the default Yahoo endpoint
}

// MemoryConfig holds chat history settings.
type MemoryConfig struct {
	DBPath        string `yaml:"db_path"`
	ContextWindow int    `yaml:"context_window"` // recent messages sent with each turn
}

// QualityConfig holds CSV profiling settings.
type QualityConfig struct {
	SampleRows int  `yaml:"sample_rows"` // rows included in the AI summary prompt
	Narrative  bool `yaml:"narrative"`   // ask the model for a written summary
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Documents: DocumentsConfig{
			Dir:      "documents",
			Includes: []string{"*.txt", "*.md", "*.pdf"},
			Excludes: []string{".*"},
		},
		Rag: RagConfig{
			ChunkSize:    500,
			ChunkOverlap: 50,
			TopK:         3,
			PromptBudget: 4000,
		},
		OpenAI: OpenAIConfig{
			APIKeyEnv:         "OPENAI_API_KEY",
			ChatModel:         "gpt-4o-mini",
			EmbeddingProvider: "openai",
			EmbeddingModel:    "text-embedding-3-small",
			Temperature:       0.7,
			MaxTokens:         500,
		},
		Social: SocialConfig{
			Style:     "casual",
			MaxLength: 280,
		},
		Stocks: StocksConfig{},
		Memory: MemoryConfig{
			DBPath:        ".ai-projects/history.db",
			ContextWindow: 10,
		},
		Quality: QualityConfig{
			SampleRows: 5,
			Narrative:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for ai-projects.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "ai-projects.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".ai-projects", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HistoryDBPath resolves the chat history database path relative to dir.
func (c *Config) HistoryDBPath(dir string) string {
	if filepath.IsAbs(c.Memory.DBPath) {
		return c.Memory.DBPath
	}
	return filepath.Join(dir, c.Memory.DBPath)
}

// EnsureStateDir ensures the .ai-projects directory exists under dir.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".ai-projects"), 0755)
}
