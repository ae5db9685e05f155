// Package ingestion reads job postings from files, stdin and URLs and normalises their text.
package ingestion

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Format is the textual form of an ingested posting.
type Format string

const (
	// FormatText is plain text
	FormatText Format = "text"
	// FormatMarkdown keeps headings, lists and links as Markdown
	FormatMarkdown Format = "markdown"
)

// StdinSource names standard input in Metadata.
const StdinSource = "stdin"

// ErrEmptyInput is returned when a posting has no text after cleaning.
var ErrEmptyInput = errors.New("job posting is empty")

var (
	spaceRunRe  = regexp.MustCompile(`\s+`)
	blankRunsRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalises line endings and whitespace while keeping headings, bullets and indentation.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	// At most one blank line between paragraphs
	result := blankRunsRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Markdown headings lose their indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := strings.Repeat(" ", len(line)-len(trimmed))
	if isBulletLine(trimmed) {
		return indent + trimmed
	}
	return indent + spaceRunRe.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// IngestFromFile reads a text file and returns its cleaned text with metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ingestText(string(content), path)
}

// IngestFromReader reads a posting from r, typically standard input.
func IngestFromReader(r io.Reader, source string) (string, *Metadata, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return ingestText(string(content), source)
}

func ingestText(content, source string) (string, *Metadata, error) {
	cleaned := CleanText(content)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%s: %w", source, ErrEmptyInput)
	}
	return cleaned, NewMetadata(cleaned, source, FormatText), nil
}
