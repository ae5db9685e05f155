package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultOllamaConfig(), "")
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	_, ok := client.(*OllamaClient)
	assert.True(t, ok)
	assert.Equal(t, "llama3.2:1b", client.ModelName())
}

func TestNewClient_GeminiRequiresAPIKey(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultGeminiConfig(), "")
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	client, err := NewClient(context.Background(), &Config{Provider: "bard", Model: "x"}, "key")
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestNewOllamaClient_RequiresModel(t *testing.T) {
	client, err := NewOllamaClient(&Config{Provider: ProviderOllama})
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestExtractTextFromResponse(t *testing.T) {
	tests := []struct {
		name      string
		resp      *genai.GenerateContentResponse
		expected  string
		wantError bool
	}{
		{
			name:      "nil response",
			resp:      nil,
			wantError: true,
		},
		{
			name:      "no candidates",
			resp:      &genai.GenerateContentResponse{},
			wantError: true,
		},
		{
			name: "no content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{}},
			},
			wantError: true,
		},
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"position": `), genai.Text(`"Engineer"}`)}},
				}},
			},
			expected: `{"position": "Engineer"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := extractTextFromResponse(tt.resp)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}
