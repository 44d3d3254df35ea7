package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/custodia-labs/siria/internal/adapters/driven/config/file"
	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
)

// Ensure LLMClassifier implements the interface.
var _ driven.AIClassifier = (*LLMClassifier)(nil)

// Generation parameters for a one-number answer.
const (
	classifyTemperature = 0.3
	classifyMaxTokens   = 10
)

// LLMClassifier asks a language model for the number of a taxonomy category.
type LLMClassifier struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewLLMClassifier creates a classifier over llm.
// prompts may be nil, in which case the embedded prompts are used.
func NewLLMClassifier(llm driven.LLMService, prompts driven.PromptStore) *LLMClassifier {
	return &LLMClassifier{llm: llm, prompts: prompts}
}

// Classify returns the taxonomy category the model picks for the event.
func (c *LLMClassifier) Classify(ctx context.Context, name, description, organization string) (string, error) {
	if c.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	userPrompt, err := c.loadPrompt(driven.PromptClassify)
	if err != nil {
		return "", err
	}
	systemPrompt, err := c.loadPrompt(driven.PromptClassifySystem)
	if err != nil {
		return "", err
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(userPrompt, name, description, organization)},
	}

	answer, err := c.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   classifyMaxTokens,
		Temperature: classifyTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("classify %q: %w", name, err)
	}

	return ParseCategoryAnswer(answer)
}

// ParseCategoryAnswer maps a model answer such as "3" or " 3." to its category.
// The answer must be a single digit between 1 and 6, optionally followed by
// punctuation. Anything else, including "10" or "1-6", is ErrInvalidLabel.
func ParseCategoryAnswer(answer string) (string, error) {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty answer", domain.ErrInvalidLabel)
	}

	r := []rune(strings.TrimRightFunc(trimmed, unicode.IsPunct))
	if len(r) != 1 || !unicode.IsDigit(r[0]) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidLabel, trimmed)
	}

	category, ok := domain.CategoryByIndex(int(r[0] - '0'))
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidLabel, trimmed)
	}
	return category, nil
}

func (c *LLMClassifier) loadPrompt(name string) (string, error) {
	if c.prompts != nil {
		p, err := c.prompts.Load(name)
		if err == nil && p != "" {
			return p, nil
		}
	}
	p, ok := file.DefaultPrompt(name)
	if !ok {
		return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
	}
	return p, nil
}
