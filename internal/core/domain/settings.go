package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for classification.
type AIProvider string

// Available AI providers.
const (
	// AIProviderNone disables AI-assisted classification.
	AIProviderNone AIProvider = ""

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// Pipeline defaults.
const (
	DefaultMaxConcurrency      = 5
	DefaultSimilarityThreshold = 0.85
	DefaultMonthsAhead         = 12
)

// PipelineSettings tunes the ingestion pipeline.
type PipelineSettings struct {
	// MaxConcurrency bounds how many sources are fetched at once.
	MaxConcurrency int

	// SimilarityThreshold is the fuzzy duplicate cut-off in [0,1].
	SimilarityThreshold float64

	// MonthsAhead is the width of the stored date window.
	MonthsAhead int

	// KeepFirst keeps the first member of a duplicate cluster instead of the last.
	KeepFirst bool
}

// DefaultPipelineSettings returns the documented defaults.
func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{
		MaxConcurrency:      DefaultMaxConcurrency,
		SimilarityThreshold: DefaultSimilarityThreshold,
		MonthsAhead:         DefaultMonthsAhead,
		KeepFirst:           true,
	}
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	// LLM configures AI-assisted classification.
	LLM LLMSettings

	// Pipeline tunes collection and deduplication.
	Pipeline PipelineSettings

	// RedisAddr enables the classification cache when non-empty.
	RedisAddr string

	// EventbriteAPIKey enables the ticketing API source when non-empty.
	EventbriteAPIKey string

	// CatalogPath overrides the embedded organisation catalogue when non-empty.
	CatalogPath string
}

// DefaultAppSettings returns settings with sensible defaults.
// AI classification is left unconfigured; rules are used until a provider is set.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM:      LLMSettings{},
		Pipeline: DefaultPipelineSettings(),
	}
}

// AllLLMProviders returns providers that support classification.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
	}
}
