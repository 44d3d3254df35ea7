package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAIProvider_IsValid tests all valid and invalid AI providers
func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{
			name:     "ollama is valid",
			provider: AIProviderOllama,
			expected: true,
		},
		{
			name:     "openai is valid",
			provider: AIProviderOpenAI,
			expected: true,
		},
		{
			name:     "anthropic is valid",
			provider: AIProviderAnthropic,
			expected: true,
		},
		{
			name:     "empty string is invalid",
			provider: AIProvider(""),
			expected: false,
		},
		{
			name:     "unknown provider is invalid",
			provider: AIProvider("unknown"),
			expected: false,
		},
		{
			name:     "invalid provider is invalid",
			provider: AIProvider("invalid_provider"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.provider.IsValid()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestAIProvider_RequiresAPIKey tests API key requirements
func TestAIProvider_RequiresAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{
			name:     "ollama does not require API key",
			provider: AIProviderOllama,
			expected: false,
		},
		{
			name:     "openai requires API key",
			provider: AIProviderOpenAI,
			expected: true,
		},
		{
			name:     "anthropic requires API key",
			provider: AIProviderAnthropic,
			expected: true,
		},
		{
			name:     "unknown does not require API key",
			provider: AIProvider("unknown"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.provider.RequiresAPIKey()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestAIProvider_IsLocal tests local provider identification
func TestAIProvider_IsLocal(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{
			name:     "ollama is local",
			provider: AIProviderOllama,
			expected: true,
		},
		{
			name:     "openai is not local",
			provider: AIProviderOpenAI,
			expected: false,
		},
		{
			name:     "anthropic is not local",
			provider: AIProviderAnthropic,
			expected: false,
		},
		{
			name:     "unknown is not local",
			provider: AIProvider("unknown"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.provider.IsLocal()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestAIProvider_String tests string representation
func TestAIProvider_String(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected string
	}{
		{
			name:     "ollama string",
			provider: AIProviderOllama,
			expected: "ollama",
		},
		{
			name:     "openai string",
			provider: AIProviderOpenAI,
			expected: "openai",
		},
		{
			name:     "anthropic string",
			provider: AIProviderAnthropic,
			expected: "anthropic",
		},
		{
			name:     "unknown returns as-is",
			provider: AIProvider("unknown"),
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.provider.String()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestAIProvider_Description tests human-readable descriptions
func TestAIProvider_Description(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected string
	}{
		{
			name:     "ollama description",
			provider: AIProviderOllama,
			expected: "Ollama (local)",
		},
		{
			name:     "openai description",
			provider: AIProviderOpenAI,
			expected: "OpenAI (cloud)",
		},
		{
			name:     "anthropic description",
			provider: AIProviderAnthropic,
			expected: "Anthropic (cloud)",
		},
		{
			name:     "unknown returns Unknown",
			provider: AIProvider("unknown"),
			expected: unknownDescription,
		},
		{
			name:     "empty string returns Unknown",
			provider: AIProvider(""),
			expected: unknownDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.provider.Description()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestLLMSettings_IsConfigured tests LLM configuration validation
func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		expected bool
	}{
		{
			name: "valid ollama configuration",
			settings: LLMSettings{
				Provider: AIProviderOllama,
				Model:    "llama3.2",
				BaseURL:  "http://localhost:11434",
			},
			expected: true,
		},
		{
			name: "valid openai configuration with API key",
			settings: LLMSettings{
				Provider: AIProviderOpenAI,
				Model:    "gpt-4o-mini",
				APIKey:   "sk-test123",
			},
			expected: true,
		},
		{
			name: "valid anthropic configuration with API key",
			settings: LLMSettings{
				Provider: AIProviderAnthropic,
				Model:    "claude-3-5-sonnet-latest",
				APIKey:   "sk-ant-test123",
			},
			expected: true,
		},
		{
			name: "invalid provider",
			settings: LLMSettings{
				Provider: AIProvider("invalid"),
				Model:    "some-model",
			},
			expected: false,
		},
		{
			name: "openai without API key",
			settings: LLMSettings{
				Provider: AIProviderOpenAI,
				Model:    "gpt-4o-mini",
				APIKey:   "",
			},
			expected: false,
		},
		{
			name: "anthropic without API key",
			settings: LLMSettings{
				Provider: AIProviderAnthropic,
				Model:    "claude-3-5-sonnet-latest",
				APIKey:   "",
			},
			expected: false,
		},
		{
			name: "empty provider",
			settings: LLMSettings{
				Provider: AIProvider(""),
				Model:    "some-model",
			},
			expected: false,
		},
		{
			name: "ollama with empty API key is valid",
			settings: LLMSettings{
				Provider: AIProviderOllama,
				Model:    "llama3.2",
				APIKey:   "",
			},
			expected: true,
		},
		{
			name:     "empty settings",
			settings: LLMSettings{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.settings.IsConfigured()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestAllLLMProviders tests complete list of LLM providers
func TestAllLLMProviders(t *testing.T) {
	providers := AllLLMProviders()

	require.Len(t, providers, 3)
	assert.Contains(t, providers, AIProviderOllama)
	assert.Contains(t, providers, AIProviderOpenAI)
	assert.Contains(t, providers, AIProviderAnthropic)

	// Verify all providers are valid
	for _, provider := range providers {
		assert.True(t, provider.IsValid(), "Provider %s should be valid", provider)
	}
}

// TestLLMSettings_Fields tests LLMSettings structure
func TestLLMSettings_Fields(t *testing.T) {
	settings := LLMSettings{
		Provider: AIProviderAnthropic,
		Model:    "claude-3-5-sonnet-latest",
		BaseURL:  "https://api.anthropic.com",
		APIKey:   "sk-ant-test123",
	}

	assert.Equal(t, AIProviderAnthropic, settings.Provider)
	assert.Equal(t, "claude-3-5-sonnet-latest", settings.Model)
	assert.Equal(t, "https://api.anthropic.com", settings.BaseURL)
	assert.Equal(t, "sk-ant-test123", settings.APIKey)
}

// TestUnknownDescription_Constant tests the private constant
func TestUnknownDescription_Constant(t *testing.T) {
	// Test that all Description methods return this constant for invalid values
	assert.Equal(t, unknownDescription, AIProvider("invalid").Description())
}

// TestDefaultLLMModels tests default model mapping
func TestDefaultLLMModels(t *testing.T) {
	models := DefaultLLMModels()

	require.Len(t, models, 3)
	assert.Equal(t, "llama3.2", models[AIProviderOllama])
	assert.Equal(t, "gpt-4o-mini", models[AIProviderOpenAI])
	assert.Equal(t, "claude-3-5-haiku-latest", models[AIProviderAnthropic])
}

// TestDefaultAppSettings tests that AI is off and pipeline defaults are set
func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.False(t, settings.LLM.IsConfigured())
	assert.Equal(t, 5, settings.Pipeline.MaxConcurrency)
	assert.InDelta(t, 0.85, settings.Pipeline.SimilarityThreshold, 1e-9)
	assert.Equal(t, 12, settings.Pipeline.MonthsAhead)
	assert.True(t, settings.Pipeline.KeepFirst)
	assert.Empty(t, settings.RedisAddr)
}
