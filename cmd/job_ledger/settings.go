package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-ledger/internal/config"
	"github.com/jonathan/job-ledger/internal/logger"
)

// Environment variables read on top of the config file.
const (
	envAPIKey     = "GEMINI_API_KEY"
	envOllamaHost = "OLLAMA_HOST"
	envCSVPath    = "JOB_LEDGER_CSV"
)

// load resolves settings (defaults < file < environment < flags) and initialises logging.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := resolveSettings(o.configPath, os.Getenv)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	o.settings = cfg
	return nil
}

// resolveSettings merges the config file and environment over the defaults.
func resolveSettings(configPath string, getenv func(string) string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	if v := getenv(envAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := getenv(envOllamaHost); v != "" {
		cfg.OllamaURL = normalizeHost(v)
	}
	if v := getenv(envCSVPath); v != "" {
		cfg.CSVPath = v
	}

	return cfg.MergeWithDefaults(config.DefaultConfig()), nil
}

// normalizeHost accepts OLLAMA_HOST in its usual host:port form.
func normalizeHost(host string) string {
	if strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}

// applyModelFlags copies model flags that were set on the command line into cfg.
func applyModelFlags(cmd *cobra.Command, cfg *config.Config, m *modelFlags) error {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider = m.provider
		// A provider switch on the command line drops a model chosen for the other provider
		if !flags.Changed("model") {
			cfg.Model = ""
		}
	}
	if flags.Changed("model") {
		cfg.Model = m.model
	}
	if flags.Changed("api-key") {
		cfg.APIKey = m.apiKey
	}
	if flags.Changed("max-attempts") {
		cfg.MaxAttempts = m.maxAttempts
	}
	if flags.Changed("deep-repair") {
		cfg.DeepRepair = m.deepRepair
	}
	if flags.Changed("csv") {
		cfg.CSVPath = m.csvPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// modelFlags are shared by the commands that run the pipeline.
type modelFlags struct {
	provider    string
	model       string
	apiKey      string
	maxAttempts int
	deepRepair  bool
	csvPath     string
}

func (m *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&m.provider, "provider", "", "LLM provider (ollama, gemini)")
	cmd.Flags().StringVar(&m.model, "model", "", "Model name (defaults per provider)")
	cmd.Flags().StringVar(&m.apiKey, "api-key", "", "Gemini API key (overrides "+envAPIKey+")")
	cmd.Flags().IntVar(&m.maxAttempts, "max-attempts", 0, "Model attempts before storing an empty record")
	cmd.Flags().BoolVar(&m.deepRepair, "deep-repair", false, "Repair malformed JSON beyond trailing commas")
	cmd.Flags().StringVar(&m.csvPath, "csv", "", "CSV ledger path")
}
