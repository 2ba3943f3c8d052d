package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nerdjerry/ai-projects/internal/adapter/chunker"
	"github.com/nerdjerry/ai-projects/internal/adapter/embedding"
	"github.com/nerdjerry/ai-projects/internal/adapter/fs"
	"github.com/nerdjerry/ai-projects/internal/adapter/llm"
	"github.com/nerdjerry/ai-projects/internal/port"
	"github.com/nerdjerry/ai-projects/internal/usecase"
)

var (
	askQuestion    string
	askTopK        int
	askShowSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [documents-dir]",
	Short: "Answer questions over your documents",
	Long: `Index a directory of .txt, .md and .pdf files and answer questions
grounded in them. Without -q the command starts an interactive session.

Examples:
  ai-projects ask ./documents -q "What is the refund policy?"
  ai-projects ask ./documents --sources`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "single question (omit for interactive mode)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askShowSources, "sources", false, "show the retrieved chunks with each answer")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	docsDir := filepath.Join(GetRootDir(), cfg.Documents.Dir)
	if len(args) > 0 {
		var err error
		docsDir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}
	info, err := os.Stat(docsDir)
	if err != nil {
		return fmt.Errorf("documents directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", docsDir)
	}

	chk, err := chunker.NewTextChunker(cfg.Rag.ChunkSize, cfg.Rag.ChunkOverlap)
	if err != nil {
		return err
	}

	var embedder port.Embedder
	switch cfg.OpenAI.EmbeddingProvider {
	case "", "openai":
		embedder, err = embedding.NewOpenAIEmbedder(cfg.OpenAI.APIKeyEnv, cfg.OpenAI.EmbeddingModel, cfg.OpenAI.BaseURL)
	case "ollama":
		embedder, err = embedding.NewOllamaEmbedder(cfg.OpenAI.EmbeddingModel, cfg.OpenAI.BaseURL)
	default:
		return fmt.Errorf("unsupported embedding provider: %s", cfg.OpenAI.EmbeddingProvider)
	}
	if err != nil {
		return err
	}

	model, err := llm.NewOpenAIClient(cfg.OpenAI.APIKeyEnv, cfg.OpenAI.ChatModel, cfg.OpenAI.BaseURL, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens)
	if err != nil {
		return err
	}

	topK := cfg.Rag.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	pipeline := usecase.NewRagPipeline(
		fs.NewLoader(cfg.Documents.Includes, cfg.Documents.Excludes, nil),
		chk,
		embedder,
		model,
		usecase.RagOptions{
			ChunkSize:    cfg.Rag.ChunkSize,
			ChunkOverlap: cfg.Rag.ChunkOverlap,
			TopK:         topK,
			PromptBudget: cfg.Rag.PromptBudget,
		},
		nil,
	)

	fmt.Printf("Indexing %s...\n", docsDir)

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	stats, err := pipeline.Build(docsDir, progress)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	fmt.Printf("Indexed %d documents (%d chunks).\n\n", stats.Documents, stats.Chunks)

	if askQuestion != "" {
		return answerOne(pipeline, askQuestion)
	}

	fmt.Println("Ask questions about your documents. Type 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "quit" || question == "exit" {
			break
		}
		if err := answerOne(pipeline, question); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func answerOne(pipeline *usecase.RagPipeline, question string) error {
	answer, err := pipeline.Ask(question)
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)

	if askShowSources {
		fmt.Println("\nSources:")
		for i, s := range answer.Sources {
			fmt.Printf("  [%d] %s (score %.3f)\n", i+1, s.Chunk.Source, s.Score)
		}
	}
	fmt.Println()
	return nil
}
