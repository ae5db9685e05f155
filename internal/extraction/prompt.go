package extraction

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-ledger/internal/llm"
	"github.com/jonathan/job-ledger/internal/prompts"
)

// BuildPrompt composes the extraction instruction for one job posting.
// The job text is embedded exactly as given.
func BuildPrompt(schema llm.ExtractionSchema, jobText string) string {
	template := prompts.MustGet("extraction.json", "extract-job-record")
	return prompts.Format(template, map[string]string{
		"FormatInstructions": llm.FormatInstructions(schema),
		"JobText":            jobText,
		"ExpectedKeys":       quoteKeys(schema.FieldNames()),
	})
}

func quoteKeys(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return strings.Join(quoted, ", ")
}
