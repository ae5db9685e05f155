package extraction

import (
	"fmt"
	"strings"
)

// ModelError represents a failed call to the model
type ModelError struct {
	Message string
	Cause   error
}

func (e *ModelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model call failed: %s", e.Message)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}

// RepairError represents model output that could not be repaired
type RepairError struct {
	Message string
	Cause   error
}

func (e *RepairError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("repair error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("repair error: %s", e.Message)
}

func (e *RepairError) Unwrap() error {
	return e.Cause
}

// ParseError represents model output that does not have the expected shape
type ParseError struct {
	Message string
	Fields  []string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s (fields: %s)", msg, strings.Join(e.Fields, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", msg)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
