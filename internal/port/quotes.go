package port

import "github.com/nerdjerry/ai-projects/internal/domain"

// QuoteProvider fetches a current quote for a ticker symbol.
type QuoteProvider interface {
	Quote(symbol string) (domain.StockQuote, error)
}
