package extraction

import (
	"strings"

	"github.com/jonathan/job-ledger/internal/types"
)

// Normalize merges raw fields over the default record and coerces skills into lists.
// It accepts any RawFields, including nil, and always returns a complete record.
func Normalize(raw RawFields) types.JobRecord {
	record := types.EmptyJobRecord()

	record.Position = textOf(raw, FieldPosition)
	record.Company = textOf(raw, FieldCompany)
	record.CompanySummary = textOf(raw, FieldCompanySummary)
	record.JobDescriptionSummary = textOf(raw, FieldJobDescriptionSummary)
	record.Education = textOf(raw, FieldEducation)

	if value, ok := raw[FieldTechnicalSkills]; ok {
		record.TechnicalSkills = SkillList(value)
	}
	if value, ok := raw[FieldSoftSkills]; ok {
		record.SoftSkills = SkillList(value)
	}

	return record
}

// SkillList coerces a field value into an ordered list of trimmed, non-empty skills.
// Text is split on commas; lists keep their order. Duplicates are kept.
func SkillList(value FieldValue) []string {
	var parts []string
	switch value.Kind {
	case ValueList:
		parts = value.List
	default:
		parts = strings.Split(value.Text, ",")
	}

	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if skill := strings.TrimSpace(part); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

func textOf(raw RawFields, name string) string {
	value, ok := raw[name]
	if !ok {
		return ""
	}
	if value.Kind == ValueList {
		return strings.Join(SkillList(value), ", ")
	}
	return value.Text
}
