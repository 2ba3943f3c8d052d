package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	pdflib "github.com/ledongthuc/pdf"

	"github.com/nerdjerry/ai-projects/internal/domain"
)

// Loader reads eligible files from a directory into Documents. Order is
// lexicographic by filename so index builds are reproducible across runs.
type Loader struct {
	includes []string
	excludes []string
	logger   *slog.Logger
}

func NewLoader(includes, excludes []string, logger *slog.Logger) *Loader {
	if len(includes) == 0 {
		includes = []string{"*.txt"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		includes: includes,
		excludes: excludes,
		logger:   logger,
	}
}

// Load returns one Document per eligible, readable file. Files that cannot
// be decoded as text are skipped with a warning; if nothing is eligible the
// call fails with ErrNoDocuments.
func (l *Loader) Load(dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var docs []domain.Document
	eligible := 0

	// os.ReadDir returns entries sorted by filename.
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !l.matches(name) {
			continue
		}
		eligible++

		path := filepath.Join(dir, name)
		text, err := l.readText(path)
		if err != nil {
			l.logger.Warn("skipping unreadable file",
				"file", name,
				"error", err)
			continue
		}

		docs = append(docs, domain.Document{
			ID:     generateDocID(name),
			Source: name,
			Text:   text,
		})
	}

	if eligible == 0 {
		return nil, fmt.Errorf("%w: no eligible files in %s", domain.ErrNoDocuments, dir)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: all %d eligible files in %s were unreadable", domain.ErrNoDocuments, eligible, dir)
	}

	return docs, nil
}

func (l *Loader) matches(name string) bool {
	for _, pattern := range l.excludes {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return false
		}
	}
	for _, pattern := range l.includes {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func (l *Loader) readText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractPDFText(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8", domain.ErrUnreadableFile)
	}
	return string(data), nil
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}

	if strings.TrimSpace(buf.String()) == "" {
		return "", fmt.Errorf("%w: no extractable text", domain.ErrUnreadableFile)
	}
	return buf.String(), nil
}

func generateDocID(source string) string {
	hash := sha256.Sum256([]byte(source))
	return hex.EncodeToString(hash[:8])
}
