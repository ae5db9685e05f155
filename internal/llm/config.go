// Package llm provides model configuration and client abstractions for the extraction pipeline.
// Both a hosted provider (Gemini) and a local provider (Ollama) sit behind the same Client interface.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOllama is a local Ollama server
	ProviderOllama Provider = "ollama"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultOllamaURL is where a local Ollama server listens by default.
const DefaultOllamaURL = "http://localhost:11434"

// Config holds the model configuration for the application.
// Sampling is kept deliberately narrow: extraction wants stable output, not variety.
type Config struct {
	Provider    Provider
	Model       string
	BaseURL     string // Ollama server URL; ignored by Gemini
	Temperature float64
	TopK        int
	TopP        float64
}

// DefaultConfig returns the default configuration (local Ollama)
func DefaultConfig() *Config {
	return DefaultOllamaConfig()
}

// DefaultOllamaConfig returns the default Ollama configuration
func DefaultOllamaConfig() *Config {
	return &Config{
		Provider:    ProviderOllama,
		Model:       "llama3.2:1b",
		BaseURL:     DefaultOllamaURL,
		Temperature: 0.1,
		TopK:        10,
		TopP:        0.1,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-flash-lite",
		Temperature: 0.1,
		TopK:        10,
		TopP:        0.1,
	}
}

// DefaultConfigFor returns the defaults for a provider, falling back to Ollama.
func DefaultConfigFor(provider Provider) *Config {
	if provider == ProviderGemini {
		return DefaultGeminiConfig()
	}
	return DefaultOllamaConfig()
}

// WithModel returns a new Config with a different model name
func (c *Config) WithModel(model string) *Config {
	newConfig := *c
	newConfig.Model = model
	return &newConfig
}
