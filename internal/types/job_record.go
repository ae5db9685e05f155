// Package types provides type definitions for structured data used throughout the job-ledger system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobRecord is the normalized extraction result for one job posting.
// Every field is always present; the two skill lists are never nil.
type JobRecord struct {
	Position              string   `json:"position"`
	Company               string   `json:"company"`
	CompanySummary        string   `json:"company_summary"`
	JobDescriptionSummary string   `json:"job_description_summary"`
	TechnicalSkills       []string `json:"technical_skills"`
	SoftSkills            []string `json:"soft_skills"`
	Education             string   `json:"education"`
}

// EmptyJobRecord returns the default record: empty strings and empty skill lists.
// A fresh value is returned on every call.
func EmptyJobRecord() JobRecord {
	return JobRecord{
		TechnicalSkills: []string{},
		SoftSkills:      []string{},
	}
}

// IsEmpty reports whether no field carries any content.
func (r JobRecord) IsEmpty() bool {
	return r.Position == "" &&
		r.Company == "" &&
		r.CompanySummary == "" &&
		r.JobDescriptionSummary == "" &&
		len(r.TechnicalSkills) == 0 &&
		len(r.SoftSkills) == 0 &&
		r.Education == ""
}
