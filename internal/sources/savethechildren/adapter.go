// Package savethechildren implements the bespoke source adapter for
// Save the Children España.
package savethechildren

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/logger"
	"github.com/custodia-labs/siria/internal/sources"
)

const (
	// Organization is the registry name of this source.
	Organization = "Save the Children España"

	// BaseURL resolves relative links.
	BaseURL = "https://www.savethechildren.es"

	// EventsURL is the events listing.
	EventsURL = BaseURL + "/actualidad/eventos"
)

var (
	itemClass = regexp.MustCompile(`event|evento|card`)
	dateClass = regexp.MustCompile(`date|fecha|time`)
)

// Verify interface compliance.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Adapter scrapes the Save the Children events listing.
// Every event is labelled as children's rights and held in person.
type Adapter struct {
	fetcher   driven.Fetcher
	eventsURL string
	baseURL   string
	now       func() time.Time
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithURLs points the adapter at another page. Useful for testing.
func WithURLs(baseURL, eventsURL string) Option {
	return func(a *Adapter) {
		a.baseURL = baseURL
		a.eventsURL = eventsURL
	}
}

// New creates the adapter around its own fetcher.
func New(fetcher driven.Fetcher, opts ...Option) *Adapter {
	a := &Adapter{
		fetcher:   fetcher,
		eventsURL: EventsURL,
		baseURL:   BaseURL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Organization returns the registry name.
func (a *Adapter) Organization() string {
	return Organization
}

// FetchAndNormalize fetches the listing and returns its valid events.
func (a *Adapter) FetchAndNormalize(ctx context.Context) ([]domain.Event, error) {
	body, err := a.fetcher.Fetch(ctx, a.eventsURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Organization, err)
	}
	doc, err := sources.ParseDocument(body)
	if err != nil {
		logger.Warn("%s: %v", Organization, err)
		return []domain.Event{}, nil
	}

	items := sources.FilterByClass(doc.Find("article, div"), itemClass)
	raws := sources.ExtractItems(Organization, items, a.parseItem)
	events := sources.Collect(raws, sources.Defaults{
		Organization: Organization,
		Country:      domain.DefaultCountry,
		Category:     domain.CategoryRights,
	}, a.now())

	logger.Info("Found %d events from %s", len(events), Organization)
	return dropNested(events), nil
}

func (a *Adapter) parseItem(item *goquery.Selection) (sources.RawEvent, error) {
	raw := sources.RawEvent{
		Organization: Organization,
		Country:      domain.DefaultCountry,
		Category:     domain.CategoryRights,
		Modality:     domain.ModalityInPerson,
	}

	raw.Name = strings.TrimSpace(item.Find("h2, h3, h4, a").First().Text())

	dateEl := sources.FindByClass(item, "time, span, div", dateClass)
	dateText, ok := dateEl.Attr("datetime")
	if !ok || strings.TrimSpace(dateText) == "" {
		dateText = dateEl.Text()
	}
	raw.Date = sources.ParseDate(dateText)
	raw.Time = sources.ParseTime(dateText)

	raw.Link = sources.ResolveLink(a.baseURL, sources.Href(item, "a"))
	return raw, nil
}

// dropNested removes repeats produced when a matching div sits inside a
// matching card: both yield the same link and date, hence the same id.
func dropNested(events []domain.Event) []domain.Event {
	seen := make(map[string]struct{}, len(events))
	out := events[:0]
	for _, e := range events {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}
