package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
)

// mockLLM records the last chat request and returns a canned answer.
type mockLLM struct {
	answer   string
	err      error
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

func (m *mockLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return m.answer, m.err
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.messages = messages
	m.opts = opts
	return m.answer, m.err
}

func (m *mockLLM) ModelName() string            { return "mock" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", errors.New("missing")
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

func TestLLMClassifier_Classify(t *testing.T) {
	llm := &mockLLM{answer: "4"}
	c := NewLLMClassifier(llm, nil)

	got, err := c.Classify(context.Background(), "Acogida de refugiados", "Jornada de acogida", "CEAR")

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryMigrantSupport, got)
	require.Len(t, llm.messages, 2)
	assert.Equal(t, "system", llm.messages[0].Role)
	assert.Equal(t, "user", llm.messages[1].Role)
	assert.Contains(t, llm.messages[1].Content, "Título: Acogida de refugiados")
	assert.Contains(t, llm.messages[1].Content, "Entidad: CEAR")
	assert.Equal(t, classifyMaxTokens, llm.opts.MaxTokens)
	assert.InDelta(t, classifyTemperature, llm.opts.Temperature, 1e-9)
}

func TestLLMClassifier_UsesPromptStore(t *testing.T) {
	llm := &mockLLM{answer: "6"}
	prompts := &mockPromptStore{prompts: map[string]string{
		driven.PromptClassify:       "T=%s D=%s O=%s",
		driven.PromptClassifySystem: "sys",
	}}
	c := NewLLMClassifier(llm, prompts)

	got, err := c.Classify(context.Background(), "n", "d", "o")

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryTechnology, got)
	assert.Equal(t, "sys", llm.messages[0].Content)
	assert.Equal(t, "T=n D=d O=o", llm.messages[1].Content)
}

func TestLLMClassifier_PromptStoreFallsBackToDefaults(t *testing.T) {
	llm := &mockLLM{answer: "1"}
	c := NewLLMClassifier(llm, &mockPromptStore{})

	_, err := c.Classify(context.Background(), "n", "d", "o")

	require.NoError(t, err)
	assert.Contains(t, llm.messages[1].Content, "Responde SOLO con el número")
}

func TestLLMClassifier_Errors(t *testing.T) {
	t.Run("no llm", func(t *testing.T) {
		_, err := NewLLMClassifier(nil, nil).Classify(context.Background(), "n", "d", "o")
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})

	t.Run("llm error is wrapped", func(t *testing.T) {
		llm := &mockLLM{err: domain.ErrRateLimited}
		_, err := NewLLMClassifier(llm, nil).Classify(context.Background(), "n", "d", "o")
		assert.ErrorIs(t, err, domain.ErrRateLimited)
	})

	t.Run("out of range answer", func(t *testing.T) {
		llm := &mockLLM{answer: "9"}
		_, err := NewLLMClassifier(llm, nil).Classify(context.Background(), "n", "d", "o")
		assert.ErrorIs(t, err, domain.ErrInvalidLabel)
	})

	t.Run("multi digit answer", func(t *testing.T) {
		llm := &mockLLM{answer: "12"}
		_, err := NewLLMClassifier(llm, nil).Classify(context.Background(), "n", "d", "o")
		assert.ErrorIs(t, err, domain.ErrInvalidLabel)
	})
}

func TestParseCategoryAnswer(t *testing.T) {
	tests := []struct {
		answer  string
		want    string
		wantErr bool
	}{
		{answer: "1", want: domain.CategoryLabourInclusion},
		{answer: " 2 ", want: domain.CategoryVocationalTraining},
		{answer: "3.", want: domain.CategoryRights},
		{answer: "5\n", want: domain.CategoryCooperation},
		{answer: "6)", want: domain.CategoryTechnology},
		{answer: "6 - Uso de IA", wantErr: true},
		{answer: "10", wantErr: true},
		{answer: "12", wantErr: true},
		{answer: "1-6", wantErr: true},
		{answer: "4.5", wantErr: true},
		{answer: "", wantErr: true},
		{answer: "   ", wantErr: true},
		{answer: "0", wantErr: true},
		{answer: "7", wantErr: true},
		{answer: "Categoría 2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			got, err := ParseCategoryAnswer(tt.answer)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidLabel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
