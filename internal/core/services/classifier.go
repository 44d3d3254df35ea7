package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/core/ports/driving"
	"github.com/custodia-labs/siria/internal/logger"
)

// Ensure Classifier implements the interface.
var _ driving.Classifier = (*Classifier)(nil)

// keywordRule lists the substrings that vote for a category.
type keywordRule struct {
	category string
	keywords []string
}

// keywordRules is ordered as the taxonomy; ties resolve to the earlier entry.
var keywordRules = []keywordRule{
	{domain.CategoryLabourInclusion, []string{
		"empleo", "laboral", "trabajo", "inserción", "inclusión", "empleabilidad", "discapacidad",
	}},
	{domain.CategoryVocationalTraining, []string{
		"formación", "curso", "taller", "capacitación", "formativo", "aprendizaje", "educación",
	}},
	{domain.CategoryRights, []string{
		"niñ", "infancia", "joven", "juventud", "mujer", "género", "igualdad", "derechos",
	}},
	{domain.CategoryMigrantSupport, []string{
		"migrant", "refugiad", "acogida", "integración", "asilo", "inmigra",
	}},
	{domain.CategoryCooperation, []string{
		"cooperación", "desarrollo", "internacional", "humanitaria", "solidaridad",
	}},
	{domain.CategoryTechnology, []string{
		"ia", "inteligencia artificial", "digital", "tecnología", "innovación", "software",
	}},
}

// organizationRules apply only when no keyword matched.
var organizationRules = []keywordRule{
	{domain.CategoryLabourInclusion, []string{"once", "discapacidad"}},
	{domain.CategoryRights, []string{"children", "infancia"}},
	{domain.CategoryMigrantSupport, []string{"migrante", "acnur", "cear"}},
}

// Classifier assigns taxonomy categories to events. An optional AI
// classifier is consulted first; rules are the fallback and always yield
// a taxonomy value.
type Classifier struct {
	ai driven.AIClassifier
}

// NewClassifier creates a classifier. ai may be nil for rules only.
func NewClassifier(ai driven.AIClassifier) *Classifier {
	return &Classifier{ai: ai}
}

// Classify returns the category for e without modifying it.
func (c *Classifier) Classify(ctx context.Context, e *domain.Event) string {
	if domain.IsTaxonomyCategory(e.Category) {
		return e.Category
	}

	if c.ai != nil {
		label, err := c.ai.Classify(ctx, e.Name, e.Description, e.Organization)
		switch {
		case err != nil:
			logger.Debug("AI classification failed for %q: %v", e.Name, err)
		case domain.IsTaxonomyCategory(label):
			return label
		default:
			logger.Debug("AI returned non-taxonomy label %q for %q", label, e.Name)
		}
	}

	return c.ClassifyWithRules(e)
}

// ClassifyWithRules scores each category by keyword hits over name,
// description and organisation. Zero hits fall back to organisation hints
// and finally to the cooperation category.
func (c *Classifier) ClassifyWithRules(e *domain.Event) string {
	text := strings.ToLower(e.Name + " " + e.Description + " " + e.Organization)

	best, bestScore := "", 0
	for _, rule := range keywordRules {
		score := 0
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = rule.category, score
		}
	}
	if bestScore > 0 {
		return best
	}

	org := strings.ToLower(e.Organization)
	for _, rule := range organizationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(org, kw) {
				return rule.category
			}
		}
	}
	return domain.CategoryCooperation
}

// ClassifyBatch sets Category on every event in place and returns the slice.
// An unexpected failure classifying one event marks it uncategorized.
func (c *Classifier) ClassifyBatch(ctx context.Context, events []domain.Event) []domain.Event {
	logger.Info("Classifying %d events", len(events))
	for i := range events {
		events[i].Category = c.classifySafe(ctx, &events[i])
	}
	logger.Info("Classification completed")
	return events
}

func (c *Classifier) classifySafe(ctx context.Context, e *domain.Event) (category string) {
	defer func() {
		if p := recover(); p != nil {
			logger.WithFields(logger.Fields{"event": e.Name}).Errorf("classification panicked: %v", p)
			category = domain.CategoryUncategorized
		}
	}()
	return c.Classify(ctx, e)
}
