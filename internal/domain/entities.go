package domain

import "time"

// Document is the raw text of a single source file, immutable once loaded.
type Document struct {
	ID     string
	Source string
	Text   string
}

// Chunk is a contiguous substring of a document used as a retrieval unit.
// Start and End are character (rune) offsets into the source document,
// [Start, End).
type Chunk struct {
	ID     string
	DocID  string
	Source string
	Start  int
	End    int
	Text   string
}

// ScoredChunk pairs a chunk with its similarity score for one query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Answer is a generated response plus the chunks it was grounded on.
type Answer struct {
	Text    string
	Sources []ScoredChunk
}

// SocialPost is a generated post awaiting or past human approval.
type SocialPost struct {
	Topic     string    `json:"topic"`
	Style     string    `json:"style"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewResult is the outcome of the automated content review pass.
type ReviewResult struct {
	Approved bool
	Issues   []string
}

// StockQuote holds the fields of one fetched quote.
type StockQuote struct {
	Symbol        string
	Name          string
	Currency      string
	Price         float64
	PreviousClose float64
	Open          float64
	DayHigh       float64
	DayLow        float64
	Volume        int64
	Change        float64
	ChangePercent float64
	FetchedAt     time.Time
}

// Message is a single turn of a persisted conversation.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ColumnProfile summarizes data quality for one CSV column. Outlier counts
// are only computed for integer and numeric columns.
type ColumnProfile struct {
	Name           string
	Missing        int
	MissingPercent float64
	Distinct       int
	InferredType   string
	Outliers       int
	OutlierPercent float64
}

// QualityReport aggregates the quality checks for one CSV file.
type QualityReport struct {
	Path             string
	Rows             int
	Columns          []ColumnProfile
	DuplicateRows    int
	DuplicatePercent float64
	Narrative        string
}
