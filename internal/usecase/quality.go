package usecase

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nerdjerry/ai-projects/internal/domain"
	"github.com/nerdjerry/ai-projects/internal/port"
)

// QualityService profiles CSV files and optionally asks the model for a
// written summary of the findings.
type QualityService struct {
	llm        port.LLM
	sampleRows int
}

func NewQualityService(llm port.LLM, sampleRows int) *QualityService {
	if sampleRows <= 0 {
		sampleRows = 5
	}
	return &QualityService{
		llm:        llm,
		sampleRows: sampleRows,
	}
}

// LoadCSV reads a CSV file into a header row and data rows. Ragged rows are
// tolerated; quoting is lenient.
func LoadCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: %s is empty", domain.ErrNoDocuments, path)
	}

	return records[0], records[1:], nil
}

// Profile runs the quality checks over parsed CSV data.
func Profile(path string, headers []string, rows [][]string) domain.QualityReport {
	report := domain.QualityReport{
		Path: path,
		Rows: len(rows),
	}

	for col, name := range headers {
		profile := domain.ColumnProfile{Name: name}
		distinct := make(map[string]struct{})
		allInt, allNum := true, true
		nonMissing := 0
		var values []float64

		for _, row := range rows {
			var cell string
			if col < len(row) {
				cell = strings.TrimSpace(row[col])
			}
			if cell == "" {
				profile.Missing++
				continue
			}
			nonMissing++
			distinct[cell] = struct{}{}

			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				allInt = false
			}
			if v, err := strconv.ParseFloat(cell, 64); err != nil {
				allNum = false
			} else {
				values = append(values, v)
			}
		}

		profile.Distinct = len(distinct)
		if len(rows) > 0 {
			profile.MissingPercent = float64(profile.Missing) / float64(len(rows)) * 100
		}

		switch {
		case nonMissing == 0:
			profile.InferredType = "empty"
		case allInt:
			profile.InferredType = "integer"
		case allNum:
			profile.InferredType = "numeric"
		default:
			profile.InferredType = "text"
		}

		if profile.InferredType == "integer" || profile.InferredType == "numeric" {
			profile.Outliers = countOutliers(values)
			if len(rows) > 0 {
				profile.OutlierPercent = float64(profile.Outliers) / float64(len(rows)) * 100
			}
		}

		report.Columns = append(report.Columns, profile)
	}

	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			report.DuplicateRows++
		} else {
			seen[key] = struct{}{}
		}
	}
	if len(rows) > 0 {
		report.DuplicatePercent = float64(report.DuplicateRows) / float64(len(rows)) * 100
	}

	return report
}

// countOutliers counts values outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR].
func countOutliers(values []float64) int {
	if len(values) < 4 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	count := 0
	for _, v := range values {
		if v < lower || v > upper {
			count++
		}
	}
	return count
}

// quantile interpolates linearly between the two nearest ranks.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// RenderReport formats a report for terminal output.
func RenderReport(r domain.QualityReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Data quality report: %s\n", r.Path)
	fmt.Fprintf(&sb, "Rows: %d\n", r.Rows)
	fmt.Fprintf(&sb, "Duplicate rows: %d (%.1f%%)\n\n", r.DuplicateRows, r.DuplicatePercent)

	fmt.Fprintf(&sb, "%-20s %-10s %8s %8s %10s %9s\n", "COLUMN", "TYPE", "MISSING", "MISS%", "DISTINCT", "OUTLIERS")
	for _, c := range r.Columns {
		outliers := "-"
		if c.InferredType == "integer" || c.InferredType == "numeric" {
			outliers = strconv.Itoa(c.Outliers)
		}
		fmt.Fprintf(&sb, "%-20s %-10s %8d %7.1f%% %10d %9s\n",
			c.Name, c.InferredType, c.Missing, c.MissingPercent, c.Distinct, outliers)
	}

	if r.Narrative != "" {
		sb.WriteString("\nSummary:\n")
		sb.WriteString(r.Narrative)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Analyze loads a CSV, profiles it, and (when narrative is enabled) asks the
// model for a short written assessment grounded in the metrics and a small
// row sample.
func (s *QualityService) Analyze(path string, narrative bool) (domain.QualityReport, error) {
	headers, rows, err := LoadCSV(path)
	if err != nil {
		return domain.QualityReport{}, err
	}

	report := Profile(path, headers, rows)
	if !narrative {
		return report, nil
	}

	text, err := s.llm.GenerateWithSystem(
		"You are a data quality analyst. You give clear, actionable assessments of tabular data.",
		s.narrativePrompt(report, headers, rows),
	)
	if err != nil {
		return report, err
	}
	report.Narrative = strings.TrimSpace(text)

	return report, nil
}

func (s *QualityService) narrativePrompt(r domain.QualityReport, headers []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString("Summarize the quality of this dataset and suggest concrete fixes.\n\n")
	fmt.Fprintf(&sb, "File: %s, %d rows, %d duplicate rows.\n\nColumns:\n", r.Path, r.Rows, r.DuplicateRows)
	for _, c := range r.Columns {
		fmt.Fprintf(&sb, "- %s (%s): %d missing (%.1f%%), %d distinct values",
			c.Name, c.InferredType, c.Missing, c.MissingPercent, c.Distinct)
		if c.InferredType == "integer" || c.InferredType == "numeric" {
			fmt.Fprintf(&sb, ", %d outliers (%.1f%%)", c.Outliers, c.OutlierPercent)
		}
		sb.WriteString("\n")
	}

	sample := s.sampleRows
	if sample > len(rows) {
		sample = len(rows)
	}
	if sample > 0 {
		sb.WriteString("\nSample rows:\n")
		sb.WriteString(strings.Join(headers, ", "))
		sb.WriteString("\n")
		for _, row := range rows[:sample] {
			sb.WriteString(strings.Join(row, ", "))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nKeep the summary under 200 words.")
	return sb.String()
}
