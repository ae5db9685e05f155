// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/job-ledger/internal/llm"
	"gopkg.in/yaml.v3"
)

// DefaultCSVPath is the ledger file used when none is configured.
const DefaultCSVPath = "applications.csv"

// DefaultPort is the port the form server listens on.
const DefaultPort = 8080

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or are provided via CLI flags.
type Config struct {
	// Model
	Provider    string  `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=ollama gemini"`
	Model       string  `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key,omitempty"` // Gemini API key
	OllamaURL   string  `json:"ollama_url,omitempty" yaml:"ollama_url,omitempty" validate:"omitempty,url"`
	// Sampling values are pointers so an explicit 0 (greedy decoding) is kept
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	TopK        *int     `json:"top_k,omitempty" yaml:"top_k,omitempty" validate:"omitempty,gte=0"`
	TopP        *float64 `json:"top_p,omitempty" yaml:"top_p,omitempty" validate:"omitempty,gte=0,lte=1"`

	// Extraction
	MaxAttempts  int  `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" validate:"gte=0,lte=20"`
	RetryDelayMS int  `json:"retry_delay_ms,omitempty" yaml:"retry_delay_ms,omitempty" validate:"gte=-1"` // -1 disables the pause
	DeepRepair   bool `json:"deep_repair,omitempty" yaml:"deep_repair,omitempty"`

	// Ledger and server
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
	Port    int    `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=json pretty"`
}

// DefaultConfig returns the configuration used when nothing else is given.
// Model is left empty so the provider default applies.
func DefaultConfig() Config {
	defaults := llm.DefaultConfig()
	return Config{
		Provider:    string(defaults.Provider),
		OllamaURL:   llm.DefaultOllamaURL,
		Temperature: &defaults.Temperature,
		TopK:        &defaults.TopK,
		TopP:        &defaults.TopP,
		MaxAttempts: 3,
		CSVPath:     DefaultCSVPath,
		Port:        DefaultPort,
		LogLevel:    "info",
		LogFormat:   "pretty",
	}
}

// LoadConfig loads configuration from a file.
// Files ending in .yaml or .yml are read as YAML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that the configuration has valid values.
// Required values are not checked here since CLI flags may still supply them.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config error: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("'%s' failed '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("'%s' failed '%s'", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.OllamaURL == "" {
		result.OllamaURL = defaults.OllamaURL
	}
	if result.CSVPath == "" {
		result.CSVPath = defaults.CSVPath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Sampling fields: use default if unset
	if result.Temperature == nil {
		result.Temperature = defaults.Temperature
	}
	if result.TopK == nil {
		result.TopK = defaults.TopK
	}
	if result.TopP == nil {
		result.TopP = defaults.TopP
	}

	// Numeric fields: use default if zero
	if result.MaxAttempts == 0 {
		result.MaxAttempts = defaults.MaxAttempts
	}
	if result.RetryDelayMS == 0 {
		result.RetryDelayMS = defaults.RetryDelayMS
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// LLMConfig builds the model configuration, starting from the provider defaults.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfigFor(llm.Provider(c.Provider))
	if c.Model != "" {
		cfg = cfg.WithModel(c.Model)
	}
	if c.OllamaURL != "" && cfg.Provider == llm.ProviderOllama {
		cfg.BaseURL = c.OllamaURL
	}
	if c.Temperature != nil {
		cfg.Temperature = *c.Temperature
	}
	if c.TopK != nil {
		cfg.TopK = *c.TopK
	}
	if c.TopP != nil {
		cfg.TopP = *c.TopP
	}
	return cfg
}

// RetryDelay converts RetryDelayMS into a duration.
// Zero keeps the extractor default; a negative value disables the pause.
func (c *Config) RetryDelay() time.Duration {
	if c.RetryDelayMS < 0 {
		return -1
	}
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}
