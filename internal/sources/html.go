package sources

import (
	"strings"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// ResolveLink returns href as an absolute URL. Absolute hrefs are kept;
// relative ones are prefixed with base. An empty href stays empty.
func ResolveLink(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return base + href
}

// DetectModality classifies a venue text. Text mentioning "online" or
// "virtual" is an online event with no location; anything else is
// in person at that location. Empty text gives an unknown modality.
func DetectModality(locationText string) (domain.Modality, string) {
	text := strings.TrimSpace(locationText)
	if text == "" {
		return domain.ModalityUnknown, ""
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "online") || strings.Contains(lower, "virtual") {
		return domain.ModalityOnline, ""
	}
	return domain.ModalityInPerson, text
}

// HintRule maps any of its keywords to a category.
type HintRule struct {
	Keywords []string
	Category string
}

// FirstMatch returns the category of the first rule with a keyword contained
// in text (case-insensitive), or fallback. Adapters use it to pre-label
// events from their title before the pipeline classifier runs.
func FirstMatch(text string, rules []HintRule, fallback string) string {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return fallback
}
