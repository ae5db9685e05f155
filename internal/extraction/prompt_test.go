package extraction

import (
	"strings"
	"testing"

	"github.com/jonathan/job-ledger/internal/llm"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	jobText := "Senior Go Developer at Acme.\nWe need {{.JobText}} fans with Kubernetes experience."
	prompt := BuildPrompt(JobRecordSchema(), jobText)

	assert.Contains(t, prompt, jobText)
	assert.Equal(t, 1, strings.Count(prompt, jobText))
	assert.Contains(t, prompt, llm.FormatInstructions(JobRecordSchema()))
	assert.NotContains(t, prompt, "{{.FormatInstructions}}")
	assert.NotContains(t, prompt, "{{.ExpectedKeys}}")

	for _, name := range JobRecordSchema().FieldNames() {
		assert.Contains(t, prompt, `"`+name+`"`)
	}
	assert.Contains(t, prompt, `"position", "company", "company_summary"`)
}

func TestBuildPrompt_EmptyJobText(t *testing.T) {
	prompt := BuildPrompt(JobRecordSchema(), "")
	assert.Contains(t, prompt, "Job Description Text:\n\n")
}

func TestJobRecordSchema(t *testing.T) {
	schema := JobRecordSchema()
	assert.Equal(t, []string{
		FieldPosition, FieldCompany, FieldCompanySummary, FieldJobDescriptionSummary,
		FieldTechnicalSkills, FieldSoftSkills, FieldEducation,
	}, schema.FieldNames())

	schema.Fields[0].Name = "changed"
	assert.Equal(t, FieldPosition, JobRecordSchema().Fields[0].Name)
}
