// Package extraction turns free-text job postings into JobRecords by prompting a model,
// repairing and parsing its output, normalizing the fields and retrying on failure.
package extraction

import "github.com/jonathan/job-ledger/internal/llm"

// Field names of the job record schema.
const (
	FieldPosition              = "position"
	FieldCompany               = "company"
	FieldCompanySummary        = "company_summary"
	FieldJobDescriptionSummary = "job_description_summary"
	FieldTechnicalSkills       = "technical_skills"
	FieldSoftSkills            = "soft_skills"
	FieldEducation             = "education"
)

const (
	textType = `"string"`
	listType = `["string"]`
)

var jobRecordFields = []llm.SchemaField{
	{Name: FieldPosition, Type: textType, Description: "Position / Job Title"},
	{Name: FieldCompany, Type: textType, Description: "Company name"},
	{Name: FieldCompanySummary, Type: textType, Description: "Short summary of the company"},
	{Name: FieldJobDescriptionSummary, Type: textType, Description: "Summary of the position only"},
	{Name: FieldTechnicalSkills, Type: listType, Description: "List of technical skills"},
	{Name: FieldSoftSkills, Type: listType, Description: "List of soft skills"},
	{Name: FieldEducation, Type: textType, Description: "Education requirements"},
}

// JobRecordSchema returns the fixed seven-field schema every extraction targets.
func JobRecordSchema() llm.ExtractionSchema {
	fields := make([]llm.SchemaField, len(jobRecordFields))
	copy(fields, jobRecordFields)
	return llm.ExtractionSchema{
		Name:   "JobRecord",
		Fields: fields,
	}
}
