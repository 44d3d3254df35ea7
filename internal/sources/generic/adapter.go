// Package generic implements the config-driven source adapter. Every
// aspect of extraction comes from a domain.SourceConfig, so adding an
// organisation is a catalogue entry rather than code.
package generic

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/logger"
	"github.com/custodia-labs/siria/internal/sources"
)

// Default extraction locations.
const (
	DefaultContainer = "article"
	DefaultTitle     = "h2, h3"
	DefaultDate      = "time, .date"
	DefaultLink      = "a"
	DefaultLocation  = ".location, .lugar"
)

// Verify interface compliance.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Adapter scrapes one listing page described by a SourceConfig.
type Adapter struct {
	cfg     domain.SourceConfig
	loc     domain.ExtractionLocations
	fetcher driven.Fetcher
	now     func() time.Time
}

// New creates an adapter, applying config and selector defaults.
func New(cfg domain.SourceConfig, fetcher driven.Fetcher) *Adapter {
	cfg = cfg.WithDefaults()
	return &Adapter{
		cfg:     cfg,
		loc:     withLocationDefaults(cfg.ExtractionLocations),
		fetcher: fetcher,
		now:     time.Now,
	}
}

func withLocationDefaults(l domain.ExtractionLocations) domain.ExtractionLocations {
	if l.Container == "" {
		l.Container = DefaultContainer
	}
	if l.Title == "" {
		l.Title = DefaultTitle
	}
	if l.Date == "" {
		l.Date = DefaultDate
	}
	if l.Link == "" {
		l.Link = DefaultLink
	}
	if l.Location == "" {
		l.Location = DefaultLocation
	}
	return l
}

// Organization returns the configured organisation name.
func (a *Adapter) Organization() string {
	return a.cfg.OrganizationName
}

// Config returns the effective configuration, defaults applied.
func (a *Adapter) Config() domain.SourceConfig {
	c := a.cfg
	c.ExtractionLocations = a.loc
	return c
}

// FetchAndNormalize fetches the listing page and returns its valid events.
func (a *Adapter) FetchAndNormalize(ctx context.Context) ([]domain.Event, error) {
	body, err := a.fetcher.Fetch(ctx, a.cfg.EventsURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.cfg.OrganizationName, err)
	}
	doc, err := sources.ParseDocument(body)
	if err != nil {
		logger.Warn("%s: %v", a.cfg.OrganizationName, err)
		return []domain.Event{}, nil
	}

	raws := sources.ExtractItems(a.cfg.OrganizationName, doc.Find(a.loc.Container), a.parseItem)
	events := sources.Collect(raws, sources.Defaults{
		Organization: a.cfg.OrganizationName,
		Country:      a.cfg.Country,
		Category:     a.cfg.DefaultCategory,
	}, a.now())

	logger.Info("Found %d events from %s", len(events), a.cfg.OrganizationName)
	return events, nil
}

func (a *Adapter) parseItem(item *goquery.Selection) (sources.RawEvent, error) {
	raw := sources.RawEvent{
		Name: sources.Text(item, a.loc.Title),
		Link: sources.ResolveLink(a.cfg.BaseURL, sources.Href(item, a.loc.Link)),
	}

	dateText := sources.DateText(item, a.loc.Date)
	raw.Date = sources.ParseDate(dateText)
	raw.Time = sources.ParseTime(dateText)

	if loc := sources.Text(item, a.loc.Location); loc != "" {
		raw.Modality, raw.Location = sources.DetectModality(loc)
	}
	return raw, nil
}
