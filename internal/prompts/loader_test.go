package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("extraction.json", "extract-job-record")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Extract the following from this job description.")
	assert.Contains(t, prompt, "{{.FormatInstructions}}")
	assert.Contains(t, prompt, "{{.JobText}}")
	assert.Contains(t, prompt, "{{.ExpectedKeys}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("extraction.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet("extraction.json", "extract-job-record")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	result := Format(template, data)
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"

	result := Format(template, map[string]string{})
	assert.Equal(t, template, result) // Placeholder remains
}

func TestFormat_ValuesAreNotReexpanded(t *testing.T) {
	template := "A={{.A}} B={{.B}}"
	data := map[string]string{
		"A": "literal {{.B}}",
		"B": "b",
	}

	result := Format(template, data)
	assert.Equal(t, "A=literal {{.B}} B=b", result)
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("extraction.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"extract-job-record"}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get("extraction.json", "extract-job-record")
	require.NoError(t, err)

	prompt2, err := Get("extraction.json", "extract-job-record")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
