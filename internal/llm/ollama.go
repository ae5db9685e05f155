package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaClient implements Client for a local Ollama server via langchaingo
type OllamaClient struct {
	model  llms.Model
	config *Config
}

// NewOllamaClient creates a new Ollama client. No connection is made until the first call.
func NewOllamaClient(config *Config) (*OllamaClient, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("no model configured for provider %s", config.Provider)
	}

	serverURL := config.BaseURL
	if serverURL == "" {
		serverURL = DefaultOllamaURL
	}

	model, err := ollama.New(
		ollama.WithModel(config.Model),
		ollama.WithServerURL(serverURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaClient{
		model:  model,
		config: config,
	}, nil
}

// GenerateContent generates text content with the configured sampling parameters
func (c *OllamaClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	opts := []llms.CallOption{llms.WithTemperature(c.config.Temperature)}
	if c.config.TopK > 0 {
		opts = append(opts, llms.WithTopK(c.config.TopK))
	}
	if c.config.TopP > 0 {
		opts = append(opts, llms.WithTopP(c.config.TopP))
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return text, nil
}

// ModelName returns the configured Ollama model
func (c *OllamaClient) ModelName() string {
	return c.config.Model
}

// Close is a no-op; the Ollama client holds no long-lived resources.
func (c *OllamaClient) Close() error {
	return nil
}
