// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-ledger/internal/ingestion"
	"github.com/jonathan/job-ledger/internal/pipeline"
	"github.com/jonathan/job-ledger/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintIngestion outputs where the posting came from.
func (p *Printer) PrintIngestion(text string, metadata *ingestion.Metadata) {
	if metadata == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", metadata.Source))
	if metadata.Platform != "" {
		sb.WriteString(fmt.Sprintf("Platform: %s\n", metadata.Platform))
	}
	sb.WriteString(fmt.Sprintf("Format:   %s\n", metadata.Format))
	sb.WriteString(fmt.Sprintf("Length:   %d chars\n", len([]rune(text))))
	sb.WriteString(fmt.Sprintf("SHA256:   %s", truncate(metadata.Hash, 16)))

	p.printBox("INGESTED POSTING", sb.String())
}

// PrintOutcome outputs a human-readable summary of the extracted record.
func (p *Printer) PrintOutcome(outcome *pipeline.Outcome) {
	if outcome == nil {
		return
	}

	var sb strings.Builder
	writeRecord(&sb, outcome.Record)

	sb.WriteString("\n")
	if outcome.Exhausted {
		sb.WriteString(fmt.Sprintf("Attempts: %d (all failed, empty record stored)", outcome.Attempts))
	} else {
		sb.WriteString(fmt.Sprintf("Attempts: %d", outcome.Attempts))
	}

	p.printBox("EXTRACTED JOB RECORD", sb.String())

	if len(outcome.Errors) > 0 {
		p.PrintAttemptErrors(outcome.Errors)
	}
}

// PrintAttemptErrors lists why each failed attempt failed.
func (p *Printer) PrintAttemptErrors(errs []error) {
	if len(errs) == 0 {
		return
	}

	var sb strings.Builder
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("#%d %s", i+1, err))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("FAILED ATTEMPTS", sb.String())
}

func writeRecord(sb *strings.Builder, record types.JobRecord) {
	sb.WriteString(fmt.Sprintf("Position:  %s\n", orDash(record.Position)))
	sb.WriteString(fmt.Sprintf("Company:   %s\n", orDash(record.Company)))
	sb.WriteString(fmt.Sprintf("Education: %s\n", orDash(record.Education)))

	if record.CompanySummary != "" {
		sb.WriteString("\nAbout the company:\n")
		sb.WriteString("  " + record.CompanySummary + "\n")
	}
	if record.JobDescriptionSummary != "" {
		sb.WriteString("\nAbout the role:\n")
		sb.WriteString("  " + record.JobDescriptionSummary + "\n")
	}

	writeList(sb, "Technical skills", record.TechnicalSkills)
	writeList(sb, "Soft skills", record.SoftSkills)
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s (%d):\n", title, len(items)))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
