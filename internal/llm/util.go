package llm

import (
	"regexp"
	"strings"
)

// fencedBlockRe matches the first fenced code block, with or without a language tag.
var fencedBlockRe = regexp.MustCompile("(?s)```[A-Za-z]*[ \t]*\r?\n?(.*?)```")

// leadingFenceRe matches an opening fence with no closing fence after it.
var leadingFenceRe = regexp.MustCompile("^```[A-Za-z]*[ \t]*\r?\n?")

// JSONPayload returns the part of a model reply that should hold the JSON object.
//
// A reply that already starts with '{' is returned trimmed. Otherwise the body of the
// first fenced block is used, wherever it appears, so "Here is the JSON:\n```json {...}```"
// yields the object. A reply that opens a fence and never closes it loses the fence line.
// Anything else is returned trimmed and left for the parser to reject.
func JSONPayload(reply string) string {
	text := strings.TrimSpace(reply)
	if strings.HasPrefix(text, "{") {
		return text
	}

	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	if loc := leadingFenceRe.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[loc[1]:])
	}
	return text
}
