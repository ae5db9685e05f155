package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/job-ledger/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"provider": "gemini",
		"model": "gemini-2.5-flash",
		"max_attempts": 5,
		"csv_path": "out/jobs.csv",
		"deep_repair": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, "out/jobs.csv", cfg.CSVPath)
	assert.True(t, cfg.DeepRepair)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, `
provider: ollama
ollama_url: http://gpu-box:11434
temperature: 0.2
top_k: 20
retry_delay_ms: 250
port: 9090
log_format: json
`)

			cfg, err := LoadConfig(path)
			require.NoError(t, err)

			assert.Equal(t, "ollama", cfg.Provider)
			assert.Equal(t, "http://gpu-box:11434", cfg.OllamaURL)
			require.NotNil(t, cfg.Temperature)
			assert.Equal(t, 0.2, *cfg.Temperature)
			require.NotNil(t, cfg.TopK)
			assert.Equal(t, 20, *cfg.TopK)
			assert.Nil(t, cfg.TopP)
			assert.Equal(t, 250, cfg.RetryDelayMS)
			assert.Equal(t, 9090, cfg.Port)
			assert.Equal(t, "json", cfg.LogFormat)
		})
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.yaml", "provider: [unclosed"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "zero value", cfg: Config{}},
		{name: "defaults", cfg: DefaultConfig()},
		{name: "disabled retry pause", cfg: Config{RetryDelayMS: -1}},
		{name: "unknown provider", cfg: Config{Provider: "openai"}, wantErr: "'provider' failed 'oneof"},
		{name: "negative attempts", cfg: Config{MaxAttempts: -1}, wantErr: "'max_attempts' failed 'gte=0'"},
		{name: "top_p above one", cfg: Config{TopP: ptr(1.5)}, wantErr: "'top_p' failed 'lte=1'"},
		{name: "zero sampling", cfg: Config{Temperature: ptr(0.0), TopK: ptr(0), TopP: ptr(0.0)}},
		{name: "negative temperature", cfg: Config{Temperature: ptr(-0.5)}, wantErr: "'temperature' failed 'gte=0'"},
		{name: "bad url", cfg: Config{OllamaURL: "not a url"}, wantErr: "'ollama_url' failed 'url'"},
		{name: "bad port", cfg: Config{Port: 70000}, wantErr: "'port'"},
		{name: "bad log format", cfg: Config{LogFormat: "xml"}, wantErr: "'log_format'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		Provider:    "gemini",
		CSVPath:     "custom.csv",
		MaxAttempts: 5,
	}

	merged := partial.MergeWithDefaults(DefaultConfig())

	// Custom values should be preserved
	assert.Equal(t, "gemini", merged.Provider)
	assert.Equal(t, "custom.csv", merged.CSVPath)
	assert.Equal(t, 5, merged.MaxAttempts)

	// Default values should fill in empty fields
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, 0.1, *merged.Temperature)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Empty(t, merged.Model)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{CSVPath: "jobs.csv"}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, cfg, merged)
}

func TestLLMConfig(t *testing.T) {
	t.Run("ollama defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		got := cfg.LLMConfig()
		assert.Equal(t, llm.DefaultOllamaConfig(), got)
	})

	t.Run("gemini with model override", func(t *testing.T) {
		cfg := Config{Provider: "gemini", Model: "gemini-2.5-pro", OllamaURL: "http://ignored:1", TopK: ptr(5)}
		got := cfg.LLMConfig()
		assert.Equal(t, llm.ProviderGemini, got.Provider)
		assert.Equal(t, "gemini-2.5-pro", got.Model)
		assert.Empty(t, got.BaseURL)
		assert.Equal(t, 5, got.TopK)
		assert.Equal(t, 0.1, got.TopP)
	})

	t.Run("custom ollama url", func(t *testing.T) {
		cfg := Config{OllamaURL: "http://gpu-box:11434"}
		assert.Equal(t, "http://gpu-box:11434", cfg.LLMConfig().BaseURL)
	})
}

func TestSamplingZeroIsKept(t *testing.T) {
	path := writeFile(t, "config.yaml", "temperature: 0\ntop_p: 0\n")
	loaded, err := LoadConfig(path)
	require.NoError(t, err)

	merged := loaded.MergeWithDefaults(DefaultConfig())
	require.NotNil(t, merged.Temperature)
	assert.Zero(t, *merged.Temperature)
	assert.Zero(t, *merged.TopP)
	assert.Equal(t, 10, *merged.TopK)

	got := merged.LLMConfig()
	assert.Zero(t, got.Temperature)
	assert.Zero(t, got.TopP)
	assert.Equal(t, 10, got.TopK)
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), (&Config{}).RetryDelay())
	assert.Equal(t, 250*time.Millisecond, (&Config{RetryDelayMS: 250}).RetryDelay())
	assert.Negative(t, int64((&Config{RetryDelayMS: -5}).RetryDelay()))
}

func ptr[T any](v T) *T {
	return &v
}
