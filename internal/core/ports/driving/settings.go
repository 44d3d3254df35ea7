package driving

import "github.com/custodia-labs/siria/internal/core/domain"

// SettingsService manages user-configurable settings.
type SettingsService interface {
	// Get returns current settings: stored values over defaults, with
	// environment variables taking precedence over both.
	Get() (*domain.AppSettings, error)

	// Save persists settings to the config store.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the AI classification provider.
	// An empty model selects the provider default.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that stored settings are usable.
	Validate() error

	// ValidateLLMConfig pings the configured AI provider.
	ValidateLLMConfig() error

	// GetSchedulerConfig returns the scheduler configuration.
	GetSchedulerConfig() domain.SchedulerConfig
}
