package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://greenhouse.io/jobs/456", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://lever.co/jobs/123", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"https://acme.workday.com/jobs", PlatformWorkday},
		{"https://JOBS.LEVER.CO/acme/1", PlatformLever},
		{"https://notgreenhouse.io.example.com/job", PlatformUnknown},
		{"https://clever.com/jobs", PlatformUnknown},
		{"https://example.com/careers", PlatformUnknown},
		{"://bad url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Equal(t, ".job__description.body", PlatformContentSelectors(PlatformGreenhouse)[0])
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-description")
	assert.Contains(t, PlatformContentSelectors(PlatformWorkday), "[data-automation-id='jobDescription']")
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformContentSelectors_ReturnsCopy(t *testing.T) {
	selectors := PlatformContentSelectors(PlatformLever)
	selectors[0] = "changed"
	assert.Equal(t, ".posting-page", PlatformContentSelectors(PlatformLever)[0])
}

func TestPlatformNoiseSelectors(t *testing.T) {
	common := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, common, "form")
	assert.Contains(t, common, ".eeo-statement")

	greenhouse := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Len(t, greenhouse, len(common)+5)
	assert.Contains(t, greenhouse, "#usa_self_id_section")

	assert.Contains(t, PlatformNoiseSelectors(PlatformWorkday), "[data-automation-id='applyButton']")
	assert.NotContains(t, common, ".posting-apply")
}
