// Package main provides the job_ledger CLI: extract job postings into a CSV ledger
// from the command line or through a local form.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-ledger/internal/config"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	// settings is resolved in PersistentPreRunE
	settings config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "job_ledger",
		Short: "Job posting extractor and CSV ledger",
		Long: "job_ledger extracts position, company, summaries, skills and education from job postings " +
			"with a language model and appends them to a CSV file.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON or YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format (pretty, json)")

	cmd.AddCommand(newExtractCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
