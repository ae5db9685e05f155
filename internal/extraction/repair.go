package extraction

import (
	"encoding/json"
	"regexp"

	"github.com/jonathan/job-ledger/internal/llm"
	"github.com/kaptinlin/jsonrepair"
)

// trailingCommaRe matches one or more commas directly before a closing bracket.
// Whitespace in front of the bracket is captured and kept.
var trailingCommaRe = regexp.MustCompile(`,(?:\s*,)*(\s*[}\]])`)

// RepairTrailingCommas removes trailing commas in object and array literals.
// It is a purely textual pass and leaves every other defect in place.
func RepairTrailingCommas(text string) string {
	return trailingCommaRe.ReplaceAllString(text, "$1")
}

// Repairer prepares raw model output for parsing.
type Repairer struct {
	// Deep enables a full jsonrepair pass when the body is still not valid JSON
	// after trailing commas are removed.
	Deep bool
}

// Repair returns a best-effort repaired version of text.
func (r Repairer) Repair(text string) (string, error) {
	repaired := RepairTrailingCommas(text)
	if !r.Deep {
		return repaired, nil
	}

	body := llm.JSONPayload(repaired)
	if json.Valid([]byte(escapeControlChars(body))) {
		return repaired, nil
	}

	fixed, err := jsonrepair.JSONRepair(body)
	if err != nil {
		return "", &RepairError{Message: "output is not recoverable JSON", Cause: err}
	}
	return fixed, nil
}
