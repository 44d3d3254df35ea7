// Package once implements the bespoke source adapter for the
// Fundación ONCE agenda.
package once

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/logger"
	"github.com/custodia-labs/siria/internal/sources"
)

const (
	// Organization is the registry name of this source.
	Organization = "Fundación ONCE"

	// BaseURL resolves relative links.
	BaseURL = "https://www.fundaciononce.es"

	// EventsURL is the agenda page.
	EventsURL = BaseURL + "/es/agenda"
)

var (
	itemClass     = regexp.MustCompile(`event|evento|agenda`)
	titleClass    = regexp.MustCompile(`title|titulo|name`)
	dateClass     = regexp.MustCompile(`date|fecha`)
	locationClass = regexp.MustCompile(`location|lugar|place`)
)

// categoryHints pre-label ONCE events from their title. Disability and
// accessibility topics are ONCE's core, hence labour inclusion as fallback.
var categoryHints = []sources.HintRule{
	{Keywords: []string{"empleo", "laboral", "trabajo", "inserción"}, Category: domain.CategoryLabourInclusion},
	{Keywords: []string{"formación", "curso", "taller", "capacitación"}, Category: domain.CategoryVocationalTraining},
	{Keywords: []string{"discapacidad", "accesibilidad", "inclusión"}, Category: domain.CategoryLabourInclusion},
	{Keywords: []string{"cooperación", "desarrollo", "internacional"}, Category: domain.CategoryCooperation},
}

// Verify interface compliance.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Adapter scrapes the Fundación ONCE agenda.
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

// FetchAndNormalize fetches the agenda and returns its valid events.
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

	items := sources.FilterByClass(doc.Find("article"), itemClass)
	raws := sources.ExtractItems(Organization, items, a.parseItem)
	events := sources.Collect(raws, sources.Defaults{
		Organization: Organization,
		Country:      domain.DefaultCountry,
	}, a.now())

	logger.Info("Found %d events from %s", len(events), Organization)
	return events, nil
}

func (a *Adapter) parseItem(item *goquery.Selection) (sources.RawEvent, error) {
	raw := sources.RawEvent{
		Organization: Organization,
		Country:      domain.DefaultCountry,
	}

	raw.Name = sources.FindByClass(item, "h2, h3, h4", titleClass).Text()
	raw.Date = sources.ParseDate(sources.FindByClass(item, "time, span, div", dateClass).Text())
	raw.Link = sources.ResolveLink(a.baseURL, sources.Href(item, "a"))

	if loc := sources.FindByClass(item, "span, div", locationClass); loc.Length() > 0 {
		raw.Modality, raw.Location = sources.DetectModality(loc.Text())
	}

	raw.Category = sources.FirstMatch(raw.Name, categoryHints, domain.CategoryLabourInclusion)
	return raw, nil
}
