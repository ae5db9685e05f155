package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-ledger/internal/ingestion"
	"github.com/jonathan/job-ledger/internal/logger"
	"github.com/jonathan/job-ledger/internal/observability"
	"github.com/jonathan/job-ledger/internal/pipeline"
)

type extractOptions struct {
	root *rootOptions
	modelFlags

	inputPath string
	url       string
	markdown  bool
	verbose   bool
	jsonOut   bool
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{root: root}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a job posting and append it to the CSV ledger",
		Long: "Reads a job posting from a file, stdin or a URL, extracts its fields with the configured model " +
			"and appends one row to the CSV ledger. After the last failed attempt an empty row is stored.",
		Args: cobra.NoArgs,
		RunE: opts.run,
	}

	cmd.Flags().StringVarP(&opts.inputPath, "in", "i", "", "Path to a job posting text file (- for stdin)")
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "URL of a job posting page")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Convert fetched pages to markdown instead of plain text")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print the ingested text and extracted record")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the outcome as JSON")
	opts.modelFlags.register(cmd)
	cmd.MarkFlagsMutuallyExclusive("in", "url")
	cmd.MarkFlagsOneRequired("in", "url")

	return cmd
}

func (o *extractOptions) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := o.root.settings
	if err := applyModelFlags(cmd, &cfg, &o.modelFlags); err != nil {
		return err
	}
	log := logger.Logger

	text, metadata, err := o.ingest(cmd)
	if err != nil {
		return err
	}
	log.Debug().Str("source", metadata.Source).Str("hash", metadata.Hash).Int("chars", len(text)).Msg("job posting ingested")

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if o.verbose {
		printer.PrintIngestion(text, metadata)
	}

	var onProgress pipeline.ProgressCallback
	if o.verbose {
		onProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", event.Step, event.Message)
		}
	}

	p, client, err := buildPipeline(ctx, cfg, log, onProgress)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	outcome, err := p.Process(ctx, text)
	if err != nil {
		return err
	}

	switch {
	case o.jsonOut:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	case o.verbose:
		printer.PrintOutcome(outcome)
	}
	fmt.Fprintln(cmd.OutOrStdout(), outcome.Status)
	return nil
}

func (o *extractOptions) ingest(cmd *cobra.Command) (string, *ingestion.Metadata, error) {
	if o.url != "" {
		format := ingestion.FormatText
		if o.markdown {
			format = ingestion.FormatMarkdown
		}
		log := logger.Logger
		text, metadata, err := ingestion.IngestFromURL(cmd.Context(), o.url, ingestion.URLOptions{
			Format: format,
			Logger: &log,
		})
		if err != nil {
			return "", nil, fmt.Errorf("failed to ingest %s: %w", o.url, err)
		}
		return text, metadata, nil
	}

	var (
		text     string
		metadata *ingestion.Metadata
		err      error
	)
	if o.inputPath == "-" {
		text, metadata, err = ingestion.IngestFromReader(cmd.InOrStdin(), ingestion.StdinSource)
	} else {
		text, metadata, err = ingestion.IngestFromFile(o.inputPath)
	}
	if errors.Is(err, ingestion.ErrEmptyInput) {
		return "", nil, fmt.Errorf("no job posting text in %s", sourceName(o.inputPath))
	}
	if err != nil {
		return "", nil, err
	}
	return text, metadata, nil
}

func sourceName(path string) string {
	if path == "-" {
		return ingestion.StdinSource
	}
	return path
}
