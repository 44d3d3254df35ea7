package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driving"
	"github.com/custodia-labs/siria/internal/logger"
)

// Ensure Deduplicator implements the interface.
var _ driving.Deduplicator = (*Deduplicator)(nil)

// Similarity weights. They sum to 1.
const (
	weightName = 0.4
	weightDate = 0.2
	weightLink = 0.3
	weightOrg  = 0.1
)

// mergedDescriptionSep joins distinct descriptions of merged duplicates.
const mergedDescriptionSep = " | "

// Deduplicator removes repeated events in two passes: exact identity, then
// weighted fuzzy similarity.
type Deduplicator struct {
	threshold float64
	now       func() time.Time
}

// NewDeduplicator creates a deduplicator. A non-positive threshold selects
// domain.DefaultSimilarityThreshold.
func NewDeduplicator(threshold float64) *Deduplicator {
	if threshold <= 0 {
		threshold = domain.DefaultSimilarityThreshold
	}
	return &Deduplicator{threshold: threshold, now: time.Now}
}

// Threshold returns the similarity cut-off in use.
func (d *Deduplicator) Threshold() float64 {
	return d.threshold
}

// Deduplicate returns events with exact and near duplicates removed. Input
// order is preserved. Within a fuzzy cluster the first member is kept when
// keepFirst is true, otherwise the last.
func (d *Deduplicator) Deduplicate(events []domain.Event, keepFirst bool) []domain.Event {
	logger.Info("Deduplicating %d events", len(events))

	unique := make([]domain.Event, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for _, e := range events {
		e.EnsureID()
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		unique = append(unique, e)
	}
	logger.Info("After ID-based deduplication: %d events", len(unique))

	groups := d.FindDuplicates(unique)
	if len(groups) == 0 {
		logger.Info("Removed %d duplicate events", len(events)-len(unique))
		return unique
	}
	logger.Info("Found %d groups of similar events", len(groups))

	drop := make(map[int]struct{})
	for _, g := range groups {
		losers := g[1:]
		if !keepFirst {
			losers = g[:len(g)-1]
		}
		for _, i := range losers {
			drop[i] = struct{}{}
		}
	}

	out := make([]domain.Event, 0, len(unique)-len(drop))
	for i, e := range unique {
		if _, ok := drop[i]; !ok {
			out = append(out, e)
		}
	}
	logger.Info("After similarity-based deduplication: %d events", len(out))
	logger.Info("Removed %d duplicate events", len(events)-len(out))
	return out
}

// FindDuplicates clusters events by a greedy forward sweep. Each unassigned
// event anchors a cluster and absorbs every later unassigned event whose
// similarity to the anchor reaches the threshold. Absorbed events never
// anchor, so clusters are not transitively closed: with A~B and B~C but
// not A~C, C stays outside A's cluster. Only clusters of two or more are
// returned, as ascending index lists.
func (d *Deduplicator) FindDuplicates(events []domain.Event) [][]int {
	var groups [][]int
	assigned := make([]bool, len(events))

	for i := range events {
		if assigned[i] {
			continue
		}
		group := []int{i}
		for j := i + 1; j < len(events); j++ {
			if assigned[j] {
				continue
			}
			if d.Similarity(&events[i], &events[j]) >= d.threshold {
				group = append(group, j)
				assigned[j] = true
			}
		}
		if len(group) > 1 {
			assigned[i] = true
			groups = append(groups, group)
		}
	}
	return groups
}

// Similarity scores two events in [0,1]: name ratio 0.4, equal date 0.2,
// equal non-empty link 0.3, equal organisation 0.1.
func (d *Deduplicator) Similarity(a, b *domain.Event) float64 {
	score := weightName * nameRatio(a.Name, b.Name)
	if a.Date == b.Date {
		score += weightDate
	}
	if a.Link != "" && a.Link == b.Link {
		score += weightLink
	}
	if a.Organization == b.Organization {
		score += weightOrg
	}
	return score
}

// nameRatio is 1 minus the normalised edit distance of the lowercased names.
func nameRatio(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// MergeDuplicateInfo folds a cluster into one event based on the first:
// distinct non-empty descriptions joined in first-seen order, the longest
// link, and merge metadata. It returns false for an empty cluster.
func (d *Deduplicator) MergeDuplicateInfo(events []domain.Event) (domain.Event, bool) {
	if len(events) == 0 {
		return domain.Event{}, false
	}

	merged := events[0]

	var descriptions []string
	seen := make(map[string]struct{})
	for _, e := range events {
		if e.Description == "" {
			continue
		}
		if _, ok := seen[e.Description]; ok {
			continue
		}
		seen[e.Description] = struct{}{}
		descriptions = append(descriptions, e.Description)
	}
	if len(descriptions) > 0 {
		merged.Description = strings.Join(descriptions, mergedDescriptionSep)
	}

	longest := ""
	for _, e := range events {
		if utf8.RuneCountInString(e.Link) > utf8.RuneCountInString(longest) {
			longest = e.Link
		}
	}
	if longest != "" {
		merged.Link = longest
	}

	merged.MergedFrom = len(events)
	merged.MergedAt = d.now()
	return merged, true
}
