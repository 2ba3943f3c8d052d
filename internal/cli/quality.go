package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nerdjerry/ai-projects/internal/adapter/llm"
	"github.com/nerdjerry/ai-projects/internal/usecase"
)

var (
	qualityNoNarrative bool
	qualityOutput      string
)

var qualityCmd = &cobra.Command{
	Use:   "quality FILE",
	Short: "Profile a CSV file and summarize its data quality",
	Long: `Profile a CSV file: per-column missing values, distinct counts,
inferred types and IQR outlier counts, plus duplicate row detection.
By default the model adds a short written assessment of the findings.

Examples:
  ai-projects quality data/customers.csv
  ai-projects quality data/customers.csv --no-narrative
  ai-projects quality data/customers.csv -o report.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runQuality,
}

func init() {
	rootCmd.AddCommand(qualityCmd)
	qualityCmd.Flags().BoolVar(&qualityNoNarrative, "no-narrative", false, "skip the AI-written summary")
	qualityCmd.Flags().StringVarP(&qualityOutput, "output", "o", "", "also write the report to a file")
}

func runQuality(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	narrative := cfg.Quality.Narrative && !qualityNoNarrative

	// The model is only needed for the narrative, so profiling works
	// without an API key.
	var service *usecase.QualityService
	if narrative {
		model, err := llm.NewOpenAIClient(cfg.OpenAI.APIKeyEnv, cfg.OpenAI.ChatModel, cfg.OpenAI.BaseURL, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens)
		if err != nil {
			return err
		}
		service = usecase.NewQualityService(model, cfg.Quality.SampleRows)
	} else {
		service = usecase.NewQualityService(nil, cfg.Quality.SampleRows)
	}

	report, err := service.Analyze(path, narrative)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	rendered := usecase.RenderReport(report)
	fmt.Print(rendered)

	if qualityOutput != "" {
		if err := os.WriteFile(qualityOutput, []byte(rendered), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("\nReport written to %s\n", qualityOutput)
	}
	return nil
}
