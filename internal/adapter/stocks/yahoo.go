package stocks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nerdjerry/ai-projects/internal/domain"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches quotes from the Yahoo Finance chart endpoint. The
// endpoint is unauthenticated; fields missing from the response are left
// at their zero values.
type YahooClient struct {
	baseURL string
	client  *http.Client
}

func NewYahooClient(baseURL string) *YahooClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &YahooClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta chartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartMeta struct {
	Symbol               string  `json:"symbol"`
	ShortName            string  `json:"shortName"`
	LongName             string  `json:"longName"`
	Currency             string  `json:"currency"`
	RegularMarketPrice   float64 `json:"regularMarketPrice"`
	RegularMarketOpen    float64 `json:"regularMarketOpen"`
	ChartPreviousClose   float64 `json:"chartPreviousClose"`
	PreviousClose        float64 `json:"previousClose"`
	RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
	RegularMarketVolume  int64   `json:"regularMarketVolume"`
}

func (c *YahooClient) Quote(symbol string) (domain.StockQuote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return domain.StockQuote{}, fmt.Errorf("empty stock symbol")
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", c.baseURL, symbol)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return domain.StockQuote{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ai-projects/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.StockQuote{}, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.StockQuote{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.StockQuote{}, fmt.Errorf("quote API status %d for %s: %s", resp.StatusCode, symbol, string(body))
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.StockQuote{}, fmt.Errorf("failed to parse quote response: %w", err)
	}
	if parsed.Chart.Error != nil {
		return domain.StockQuote{}, fmt.Errorf("quote API error for %s: %s", symbol, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return domain.StockQuote{}, fmt.Errorf("no quote data for %s", symbol)
	}

	meta := parsed.Chart.Result[0].Meta

	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	previousClose := meta.PreviousClose
	if previousClose == 0 {
		previousClose = meta.ChartPreviousClose
	}

	quote := domain.StockQuote{
		Symbol:        symbol,
		Name:          name,
		Currency:      meta.Currency,
		Price:         meta.RegularMarketPrice,
		Open:          meta.RegularMarketOpen,
		PreviousClose: previousClose,
		DayHigh:       meta.RegularMarketDayHigh,
		DayLow:        meta.RegularMarketDayLow,
		Volume:        meta.RegularMarketVolume,
		FetchedAt:     time.Now(),
	}

	if quote.PreviousClose > 0 {
		quote.Change = quote.Price - quote.PreviousClose
		quote.ChangePercent = quote.Change / quote.PreviousClose * 100
	}

	return quote, nil
}
