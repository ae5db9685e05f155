package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

type platformProfile struct {
	platform Platform
	domains  []string
	content  []string
	noise    []string
}

var profiles = []platformProfile{
	{
		platform: PlatformGreenhouse,
		domains:  []string{"greenhouse.io"},
		content: []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		},
		noise: []string{
			".application--wrapper",
			".voluntary-self-id",
			".voluntary-self-id-wrapper",
			"#usa_self_id_section",
			".post-apply",
		},
	},
	{
		platform: PlatformLever,
		domains:  []string{"lever.co"},
		content: []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		},
		noise: []string{
			".apply-section",
			".lever-application-form",
			".posting-apply",
		},
	},
	{
		platform: PlatformWorkday,
		domains:  []string{"workday.com", "myworkdayjobs.com"},
		content: []string{
			"[data-automation-id='jobDescription']",
			".gwt-HTML",
			".job-description",
		},
		noise: []string{
			"[data-automation-id='applyButton']",
			".application-section",
		},
	},
}

// commonNoise applies to every platform: application forms, EEO text, share widgets, consent banners.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	"[data-testid='application-form']",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	"[data-testid='eeo']",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".social-links",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board platform from a URL's host.
func DetectPlatform(urlStr string) Platform {
	if p, ok := lookup(urlStr); ok {
		return p.platform
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a platform.
func PlatformContentSelectors(platform Platform) []string {
	for _, p := range profiles {
		if p.platform == platform {
			return append([]string(nil), p.content...)
		}
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns noise exclusion selectors for a platform.
func PlatformNoiseSelectors(platform Platform) []string {
	noise := append([]string(nil), commonNoise...)
	for _, p := range profiles {
		if p.platform == platform {
			return append(noise, p.noise...)
		}
	}
	return noise
}

func lookup(urlStr string) (platformProfile, bool) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return platformProfile{}, false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, p := range profiles {
		for _, domain := range p.domains {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return p, true
			}
		}
	}
	return platformProfile{}, false
}
