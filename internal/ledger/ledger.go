// Package ledger appends extracted job records to a CSV file.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonathan/job-ledger/internal/types"
)

// Header is the first row of every ledger file.
var Header = []string{
	"Position",
	"Company",
	"Company Summary",
	"Job Description Summary",
	"Technical Skills",
	"Soft Skills",
	"Education",
}

// Appender persists one record.
type Appender interface {
	Append(record types.JobRecord) error
}

// WriteError represents a failure to write the ledger file
type WriteError struct {
	Path    string
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ledger %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("ledger %s: %s", e.Path, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// CSVLedger is an append-only CSV file of job records.
type CSVLedger struct {
	path string
	mu   sync.Mutex
}

// NewCSVLedger returns a ledger backed by path. The file is created on first append.
func NewCSVLedger(path string) *CSVLedger {
	return &CSVLedger{path: path}
}

// Path returns the ledger file path.
func (l *CSVLedger) Path() string {
	return l.path
}

// Append writes record as one row, writing the header first when the file is missing or empty.
func (l *CSVLedger) Append(record types.JobRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &WriteError{Path: l.path, Message: "failed to create directory", Cause: err}
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &WriteError{Path: l.path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return &WriteError{Path: l.path, Message: "failed to stat file", Cause: err}
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return &WriteError{Path: l.path, Message: "failed to write header", Cause: err}
		}
	}
	if err := w.Write(Row(record)); err != nil {
		return &WriteError{Path: l.path, Message: "failed to write row", Cause: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &WriteError{Path: l.path, Message: "failed to flush", Cause: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: l.path, Message: "failed to close file", Cause: err}
	}
	return nil
}

// Row renders a record in header order. Skills are joined with ", ".
func Row(record types.JobRecord) []string {
	return []string{
		cell(record.Position),
		cell(record.Company),
		cell(record.CompanySummary),
		cell(record.JobDescriptionSummary),
		cell(strings.Join(record.TechnicalSkills, ", ")),
		cell(strings.Join(record.SoftSkills, ", ")),
		cell(record.Education),
	}
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func cell(value string) string {
	return strings.TrimSpace(lineBreaks.Replace(value))
}
