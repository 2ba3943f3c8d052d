package usecase

import (
	"fmt"
	"strings"

	"github.com/nerdjerry/ai-projects/internal/domain"
	"github.com/nerdjerry/ai-projects/internal/port"
)

// StockService fetches quotes and has the model explain them in plain terms.
type StockService struct {
	quotes port.QuoteProvider
	llm    port.LLM
}

func NewStockService(quotes port.QuoteProvider, llm port.LLM) *StockService {
	return &StockService{
		quotes: quotes,
		llm:    llm,
	}
}

// FormatQuote renders a quote as the plain-text block shown to the user and
// embedded in explanation prompts.
func FormatQuote(q domain.StockQuote) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", q.Name, q.Symbol)
	fmt.Fprintf(&sb, "  Price:          %.2f %s\n", q.Price, q.Currency)
	fmt.Fprintf(&sb, "  Change:         %+.2f (%+.2f%%)\n", q.Change, q.ChangePercent)
	fmt.Fprintf(&sb, "  Open:           %.2f\n", q.Open)
	fmt.Fprintf(&sb, "  Previous close: %.2f\n", q.PreviousClose)
	fmt.Fprintf(&sb, "  Day range:      %.2f - %.2f\n", q.DayLow, q.DayHigh)
	fmt.Fprintf(&sb, "  Volume:         %d", q.Volume)
	return sb.String()
}

// Explain fetches one symbol and returns the quote plus a beginner-friendly
// explanation of what the numbers mean.
func (s *StockService) Explain(symbol string) (domain.StockQuote, string, error) {
	quote, err := s.quotes.Quote(symbol)
	if err != nil {
		return domain.StockQuote{}, "", fmt.Errorf("fetching quote for %s: %w", symbol, err)
	}

	prompt := fmt.Sprintf(`Explain this stock data in simple terms for a beginner:

%s

Cover what the price movement means, whether the trading volume is notable,
and what the day range tells us. Keep it short and avoid jargon.
Do not give investment advice.`, FormatQuote(quote))

	explanation, err := s.llm.GenerateWithSystem(
		"You are a friendly financial educator. You explain stock data simply and never give investment advice.",
		prompt,
	)
	if err != nil {
		return quote, "", err
	}

	return quote, strings.TrimSpace(explanation), nil
}

// Compare fetches several symbols and asks the model for a side-by-side
// plain-language comparison.
func (s *StockService) Compare(symbols []string) ([]domain.StockQuote, string, error) {
	if len(symbols) < 2 {
		return nil, "", fmt.Errorf("%w: comparison needs at least two symbols", domain.ErrInvalidConfig)
	}

	quotes := make([]domain.StockQuote, 0, len(symbols))
	var blocks []string
	for _, sym := range symbols {
		q, err := s.quotes.Quote(sym)
		if err != nil {
			return nil, "", fmt.Errorf("fetching quote for %s: %w", sym, err)
		}
		quotes = append(quotes, q)
		blocks = append(blocks, FormatQuote(q))
	}

	prompt := fmt.Sprintf(`Compare these stocks in simple terms for a beginner:

%s

Point out which moved more today and anything notable in the numbers.
Keep it short. Do not give investment advice.`, strings.Join(blocks, "\n\n"))

	comparison, err := s.llm.GenerateWithSystem(
		"You are a friendly financial educator. You explain stock data simply and never give investment advice.",
		prompt,
	)
	if err != nil {
		return quotes, "", err
	}

	return quotes, strings.TrimSpace(comparison), nil
}
