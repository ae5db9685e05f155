package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/job-ledger/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the page cannot be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when the page cannot be reduced to text
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions controls URL ingestion.
type URLOptions struct {
	Format Format
	Fetch  *fetch.Options
	Logger *zerolog.Logger
}

// IngestFromURL fetches a posting and reduces it to cleaned text or Markdown.
// Platform detection picks content and noise selectors for known job boards.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	format := opts.Format
	if format == "" {
		format = FormatText
	}

	platform := fetch.DetectPlatform(urlStr)
	log.Debug().Str("url", urlStr).Str("platform", string(platform)).Msg("fetching job posting")

	page, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.Debug().Int("bytes", len(page.HTML)).Str("final_url", page.FinalURL).Msg("fetched HTML")

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	var content string
	switch format {
	case FormatMarkdown:
		content, err = fetch.ExtractMainMarkdown(page.HTML, contentSelectors, noiseSelectors...)
	default:
		content, err = fetch.ExtractMainText(page.HTML, contentSelectors, noiseSelectors...)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	cleaned := CleanText(content)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%s: %w", urlStr, ErrEmptyInput)
	}
	log.Debug().Int("chars", len(cleaned)).Str("format", string(format)).Msg("extracted posting text")

	metadata := NewMetadata(cleaned, urlStr, format)
	metadata.URL = page.FinalURL
	metadata.Platform = string(platform)
	return cleaned, metadata, nil
}
