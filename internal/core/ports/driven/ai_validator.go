package driven

import "github.com/custodia-labs/siria/internal/core/domain"

// AIConfigValidator checks that an AI provider configuration can reach its service.
type AIConfigValidator interface {
	// ValidateLLM creates a client for settings and pings it.
	// Returns nil when settings are not configured.
	ValidateLLM(settings *domain.LLMSettings) error
}
