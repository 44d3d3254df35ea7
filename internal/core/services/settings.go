package services

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAIProvider          = "ai.provider"
	keyAIModel             = "ai.model"
	keyAIBaseURL           = "ai.base_url"
	keyAIAPIKey            = "ai.api_key"
	keyMaxConcurrency      = "pipeline.max_concurrency"
	keySimilarityThreshold = "pipeline.similarity_threshold"
	keyMonthsAhead         = "pipeline.months_ahead"
	keyKeepFirst           = "pipeline.keep_first"
	keyRedisAddr           = "cache.redis_addr"
	keyEventbriteAPIKey    = "sources.eventbrite_api_key"
	keyCatalogPath         = "sources.catalog"
	keySchedulerEnabled    = "scheduler.enabled"
)

// Environment variables that override stored settings.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvOpenAIAPIKey     = "OPENAI_API_KEY"
	EnvAnthropicAPIKey  = "ANTHROPIC_API_KEY"
	EnvEventbriteAPIKey = "EVENTBRITE_API_KEY"
	EnvRedisAddr        = "SIRIA_REDIS_ADDR"
	EnvCatalogPath      = "SIRIA_CATALOG"
)

const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// SettingsOption configures a SettingsService.
type SettingsOption func(*SettingsService)

// WithEnvLookup replaces os.Getenv, mainly for tests.
func WithEnvLookup(getenv func(string) string) SettingsOption {
	return func(s *SettingsService) { s.getenv = getenv }
}

// NewSettingsService creates a new settings service.
func NewSettingsService(
	configStore driven.ConfigStore,
	aiValidator driven.AIConfigValidator,
	opts ...SettingsOption,
) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()
	s.applyEnv(settings)
	return settings, nil
}

// stored reads the config store over defaults, without environment overrides.
func (s *SettingsService) stored() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyAIProvider, defaults.LLM.Provider),
			Model:    s.getString(keyAIModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyAIBaseURL),
			APIKey:   s.configStore.GetString(keyAIAPIKey),
		},
		Pipeline: domain.PipelineSettings{
			MaxConcurrency:      s.getInt(keyMaxConcurrency, defaults.Pipeline.MaxConcurrency),
			SimilarityThreshold: s.getFloat(keySimilarityThreshold, defaults.Pipeline.SimilarityThreshold),
			MonthsAhead:         s.getInt(keyMonthsAhead, defaults.Pipeline.MonthsAhead),
			KeepFirst:           s.getBool(keyKeepFirst, defaults.Pipeline.KeepFirst),
		},
		RedisAddr:        s.configStore.GetString(keyRedisAddr),
		EventbriteAPIKey: s.configStore.GetString(keyEventbriteAPIKey),
		CatalogPath:      s.configStore.GetString(keyCatalogPath),
	}
}

// applyEnv overlays environment variables. A provider API key in the
// environment also selects that provider when none is stored.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	openAIKey := s.getenv(EnvOpenAIAPIKey)
	anthropicKey := s.getenv(EnvAnthropicAPIKey)

	if settings.LLM.Provider == domain.AIProviderNone {
		switch {
		case openAIKey != "":
			settings.LLM.Provider = domain.AIProviderOpenAI
		case anthropicKey != "":
			settings.LLM.Provider = domain.AIProviderAnthropic
		}
		if settings.LLM.Provider != domain.AIProviderNone && settings.LLM.Model == "" {
			settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
		}
	}

	switch settings.LLM.Provider {
	case domain.AIProviderOpenAI:
		if openAIKey != "" {
			settings.LLM.APIKey = openAIKey
		}
	case domain.AIProviderAnthropic:
		if anthropicKey != "" {
			settings.LLM.APIKey = anthropicKey
		}
	}

	if v := s.getenv(EnvEventbriteAPIKey); v != "" {
		settings.EventbriteAPIKey = v
	}
	if v := s.getenv(EnvRedisAddr); v != "" {
		settings.RedisAddr = v
	}
	if v := s.getenv(EnvCatalogPath); v != "" {
		settings.CatalogPath = v
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyAIProvider, settings.LLM.Provider.String()},
		{keyAIModel, settings.LLM.Model},
		{keyAIBaseURL, settings.LLM.BaseURL},
		{keyAIAPIKey, settings.LLM.APIKey},
		{keyMaxConcurrency, settings.Pipeline.MaxConcurrency},
		{keySimilarityThreshold, settings.Pipeline.SimilarityThreshold},
		{keyMonthsAhead, settings.Pipeline.MonthsAhead},
		{keyKeepFirst, settings.Pipeline.KeepFirst},
		{keyRedisAddr, settings.RedisAddr},
		{keyEventbriteAPIKey, settings.EventbriteAPIKey},
		{keyCatalogPath, settings.CatalogPath},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetLLMProvider configures the AI classification provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid AI provider: %s", domain.ErrInvalidInput, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings := s.stored()
	settings.LLM.Provider = provider

	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.LLM.Provider != domain.AIProviderNone && !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: AI provider %q is not fully configured", domain.ErrInvalidInput, settings.LLM.Provider)
	}
	p := settings.Pipeline
	if p.MaxConcurrency < 1 {
		return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, keyMaxConcurrency)
	}
	if p.SimilarityThreshold <= 0 || p.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: %s must be in (0, 1]", domain.ErrInvalidInput, keySimilarityThreshold)
	}
	if p.MonthsAhead < 1 {
		return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, keyMonthsAhead)
	}
	return nil
}

// ValidateLLMConfig validates the current AI configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// GetSchedulerConfig returns the scheduler configuration.
// Returns default configuration if nothing is configured.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	cfg := domain.DefaultSchedulerConfig()

	if _, exists := s.configStore.Get(keySchedulerEnabled); exists {
		cfg.Enabled = s.configStore.GetBool(keySchedulerEnabled)
	}

	// TOML keys use underscores.
	taskKeys := map[string]string{
		domain.TaskIDWeeklyUpdate: "weekly_update",
	}

	for taskID, configKey := range taskKeys {
		prefix := "scheduler." + configKey + "."
		taskCfg := cfg.TaskConfigs[taskID]

		if _, exists := s.configStore.Get(prefix + "enabled"); exists {
			taskCfg.Enabled = s.configStore.GetBool(prefix + "enabled")
		}
		// Duration string like "168h".
		if interval := s.configStore.GetString(prefix + "interval"); interval != "" {
			if d, err := time.ParseDuration(interval); err == nil && d > 0 {
				taskCfg.Interval = d
			}
		}

		cfg.TaskConfigs[taskID] = taskCfg
	}

	return cfg
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
