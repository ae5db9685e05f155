package extraction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/job-ledger/internal/llm"
	"github.com/jonathan/job-ledger/internal/schemas"
)

// ValueKind tags which variant a FieldValue holds.
type ValueKind int

const (
	// ValueText is a single string, e.g. "Python, Go, Rust"
	ValueText ValueKind = iota
	// ValueList is an already structured list of strings
	ValueList
)

func (k ValueKind) String() string {
	switch k {
	case ValueText:
		return "text"
	case ValueList:
		return "list"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// FieldValue is a field as the model emitted it: either free text or a list of strings.
type FieldValue struct {
	Kind ValueKind
	Text string
	List []string
}

// TextValue builds a text FieldValue.
func TextValue(text string) FieldValue {
	return FieldValue{Kind: ValueText, Text: text}
}

// ListValue builds a list FieldValue.
func ListValue(items ...string) FieldValue {
	return FieldValue{Kind: ValueList, List: items}
}

// UnmarshalJSON accepts a JSON string or an array of strings.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*v = ListValue(items...)
		return nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return err
	}
	*v = TextValue(text)
	return nil
}

// RawFields maps schema field names to the values the model produced.
// Absent and null fields have no entry.
type RawFields map[string]FieldValue

var recordSchema = schemas.MustLoad(schemas.JobRecordSchema)

// Parse reads repaired model output into RawFields.
// The object may sit inside a fenced block anywhere in the reply, and string values may
// span lines. Only the seven schema fields are kept; missing fields are left for the
// normalizer to default.
func Parse(text string) (RawFields, error) {
	body := llm.JSONPayload(text)
	if body == "" {
		return nil, &ParseError{Message: "empty response"}
	}
	if body[0] != '{' {
		return nil, &ParseError{Message: "response does not contain a JSON object"}
	}
	body = escapeControlChars(body)

	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &object); err != nil {
		return nil, &ParseError{Message: "malformed JSON", Cause: err}
	}

	if err := recordSchema.Validate([]byte(body)); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &ParseError{
				Message: "JSON does not match the job record schema",
				Fields:  validationErr.Fields(),
				Cause:   err,
			}
		}
		return nil, &ParseError{Message: "schema validation failed", Cause: err}
	}

	raw := make(RawFields, len(jobRecordFields))
	for _, field := range jobRecordFields {
		value, ok := object[field.Name]
		if !ok || isNull(value) {
			continue
		}
		var fv FieldValue
		if err := json.Unmarshal(value, &fv); err != nil {
			return nil, &ParseError{Message: "unexpected value shape", Fields: []string{field.Name}, Cause: err}
		}
		raw[field.Name] = fv
	}

	return raw, nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

// escapeControlChars escapes raw line breaks and tabs inside string literals.
// Text outside strings and existing escape sequences are copied unchanged.
func escapeControlChars(body string) string {
	if !strings.ContainsAny(body, "\r\n\t") {
		return body
	}

	var sb strings.Builder
	sb.Grow(len(body) + 16)
	inString, escaped := false, false
	for i := 0; i < len(body); i++ {
		c := body[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			sb.WriteByte(c)
			continue
		}

		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = false
		case c == '\n':
			sb.WriteString(`\n`)
			continue
		case c == '\r':
			sb.WriteString(`\r`)
			continue
		case c == '\t':
			sb.WriteString(`\t`)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
