package usecase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleCSV = `id,name,age,score
1,alice,30,9.5
2,bob,,7.2
3,carol,41,8.8
3,carol,41,8.8
4,,29,not-a-number
`

func TestLoadCSV(t *testing.T) {
	headers, rows, err := LoadCSV(writeCSV(t, sampleCSV))
	if err != nil {
		t.Fatal(err)
	}

	if len(headers) != 4 || headers[0] != "id" {
		t.Errorf("unexpected headers %v", headers)
	}
	if len(rows) != 5 {
		t.Errorf("expected 5 data rows, got %d", len(rows))
	}
}

func TestLoadCSVEmptyFile(t *testing.T) {
	if _, _, err := LoadCSV(writeCSV(t, "")); err == nil {
		t.Error("expected error for empty CSV")
	}
}

func TestProfileColumns(t *testing.T) {
	headers, rows, err := LoadCSV(writeCSV(t, sampleCSV))
	if err != nil {
		t.Fatal(err)
	}

	report := Profile("data.csv", headers, rows)

	if report.Rows != 5 {
		t.Errorf("expected 5 rows, got %d", report.Rows)
	}
	if report.DuplicateRows != 1 {
		t.Errorf("expected 1 duplicate row, got %d", report.DuplicateRows)
	}

	byName := map[string]int{}
	for i, c := range report.Columns {
		byName[c.Name] = i
	}

	id := report.Columns[byName["id"]]
	if id.InferredType != "integer" {
		t.Errorf("expected id inferred as integer, got %s", id.InferredType)
	}
	if id.Distinct != 4 {
		t.Errorf("expected 4 distinct ids, got %d", id.Distinct)
	}

	name := report.Columns[byName["name"]]
	if name.Missing != 1 {
		t.Errorf("expected 1 missing name, got %d", name.Missing)
	}
	if name.InferredType != "text" {
		t.Errorf("expected name inferred as text, got %s", name.InferredType)
	}

	age := report.Columns[byName["age"]]
	if age.Missing != 1 {
		t.Errorf("expected 1 missing age, got %d", age.Missing)
	}
	if age.InferredType != "integer" {
		t.Errorf("expected age inferred as integer, got %s", age.InferredType)
	}

	score := report.Columns[byName["score"]]
	if score.InferredType != "text" {
		t.Errorf("expected mixed score column inferred as text, got %s", score.InferredType)
	}
}

func TestProfileNumericColumn(t *testing.T) {
	headers, rows, err := LoadCSV(writeCSV(t, "price\n1.5\n2.25\n3.0\n"))
	if err != nil {
		t.Fatal(err)
	}

	report := Profile("p.csv", headers, rows)
	if report.Columns[0].InferredType != "numeric" {
		t.Errorf("expected numeric, got %s", report.Columns[0].InferredType)
	}
	// Too few values for a meaningful IQR.
	if report.Columns[0].Outliers != 0 {
		t.Errorf("expected 0 outliers, got %d", report.Columns[0].Outliers)
	}
}

func TestProfileOutliers(t *testing.T) {
	headers, rows, err := LoadCSV(writeCSV(t, "v\n1\n2\n3\n4\n5\n6\n7\n8\n9\n100\n"))
	if err != nil {
		t.Fatal(err)
	}

	report := Profile("v.csv", headers, rows)

	// For 1..9 plus 100, the IQR fence is [-3.5, 14.5]; only 100 is outside.
	col := report.Columns[0]
	if col.Outliers != 1 {
		t.Errorf("expected 1 outlier, got %d", col.Outliers)
	}
	if col.OutlierPercent != 10 {
		t.Errorf("expected 10%% outliers, got %.1f", col.OutlierPercent)
	}
}

func TestProfileTextColumnSkipsOutliers(t *testing.T) {
	headers, rows, err := LoadCSV(writeCSV(t, "w\na\nb\nc\nd\n9999\n"))
	if err != nil {
		t.Fatal(err)
	}

	report := Profile("w.csv", headers, rows)
	if report.Columns[0].InferredType != "text" {
		t.Fatalf("expected text, got %s", report.Columns[0].InferredType)
	}
	if report.Columns[0].Outliers != 0 {
		t.Errorf("expected no outlier count for a text column, got %d", report.Columns[0].Outliers)
	}
}

func TestAnalyzeWithNarrative(t *testing.T) {
	llm := &fakeLLM{reply: "The dataset has minor completeness issues."}
	s := NewQualityService(llm, 3)

	report, err := s.Analyze(writeCSV(t, sampleCSV), true)
	if err != nil {
		t.Fatal(err)
	}

	if report.Narrative != "The dataset has minor completeness issues." {
		t.Errorf("unexpected narrative %q", report.Narrative)
	}

	prompt := llm.prompts[0]
	if !strings.Contains(prompt, "duplicate") {
		t.Error("narrative prompt missing duplicate metric")
	}
	if !strings.Contains(prompt, "alice") {
		t.Error("narrative prompt missing sample rows")
	}
	if !strings.Contains(prompt, "outliers") {
		t.Error("narrative prompt missing outlier metrics")
	}
}

func TestAnalyzeWithoutNarrative(t *testing.T) {
	llm := &fakeLLM{}
	s := NewQualityService(llm, 3)

	report, err := s.Analyze(writeCSV(t, sampleCSV), false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Narrative != "" {
		t.Error("expected no narrative")
	}
	if len(llm.prompts) != 0 {
		t.Error("expected no model call when narrative is disabled")
	}
}

func TestRenderReport(t *testing.T) {
	headers, rows, err := LoadCSV(writeCSV(t, sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	report := Profile("data.csv", headers, rows)
	report.Narrative = "Looks mostly fine."

	out := RenderReport(report)
	for _, want := range []string{"data.csv", "Duplicate rows: 1", "name", "integer", "OUTLIERS", "Looks mostly fine."} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered report missing %q:\n%s", want, out)
		}
	}
}
