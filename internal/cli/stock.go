package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nerdjerry/ai-projects/internal/adapter/llm"
	"github.com/nerdjerry/ai-projects/internal/adapter/stocks"
	"github.com/nerdjerry/ai-projects/internal/usecase"
)

var stockQuoteOnly bool

var stockCmd = &cobra.Command{
	Use:   "stock SYMBOL [SYMBOL...]",
	Short: "Fetch stock quotes and explain them in plain terms",
	Long: `Fetch a current quote for one or more symbols. One symbol gets a
plain-language explanation; two or more get a side-by-side comparison.
Explanations are educational and never investment advice.

Examples:
  ai-projects stock AAPL
  ai-projects stock AAPL MSFT GOOG
  ai-projects stock TSLA --quote-only`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStock,
}

func init() {
	rootCmd.AddCommand(stockCmd)
	stockCmd.Flags().BoolVar(&stockQuoteOnly, "quote-only", false, "print the raw quote without an explanation")
}

func runStock(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	client := stocks.NewYahooClient(cfg.Stocks.BaseURL)

	if stockQuoteOnly {
		for _, sym := range args {
			quote, err := client.Quote(sym)
			if err != nil {
				return fmt.Errorf("fetching quote for %s: %w", sym, err)
			}
			fmt.Println(usecase.FormatQuote(quote))
			fmt.Println()
		}
		return nil
	}

	model, err := llm.NewOpenAIClient(cfg.OpenAI.APIKeyEnv, cfg.OpenAI.ChatModel, cfg.OpenAI.BaseURL, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens)
	if err != nil {
		return err
	}
	service := usecase.NewStockService(client, model)

	if len(args) == 1 {
		quote, explanation, err := service.Explain(args[0])
		if err != nil {
			return err
		}
		fmt.Println(usecase.FormatQuote(quote))
		fmt.Println()
		fmt.Println(explanation)
		return nil
	}

	quotes, comparison, err := service.Compare(args)
	if err != nil {
		return err
	}
	var blocks []string
	for _, q := range quotes {
		blocks = append(blocks, usecase.FormatQuote(q))
	}
	fmt.Println(strings.Join(blocks, "\n\n"))
	fmt.Println()
	fmt.Println(comparison)
	return nil
}
