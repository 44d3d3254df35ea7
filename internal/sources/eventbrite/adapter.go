// Package eventbrite implements the ticketing API source adapter. It runs
// keyword searches per country against the Eventbrite API and follows the
// continuation token across result pages.
package eventbrite

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/logger"
	"github.com/custodia-labs/siria/internal/sources"
	"github.com/custodia-labs/siria/internal/sources/fetch"
)

const (
	// Organization is the registry name of this source and the fallback
	// organiser for events that do not name one.
	Organization = "Eventbrite"

	// DefaultBaseURL is the API root.
	DefaultBaseURL = "https://www.eventbriteapi.com/v3"

	// DefaultMaxPages caps pagination per search.
	DefaultMaxPages = 5

	// searchKeywordLimit keeps the number of searches per run modest.
	searchKeywordLimit = 5

	// apiRate is the proactive request rate (requests/sec).
	apiRate = 1.0
)

// Keywords are the topical search terms. Only the first five are searched.
var Keywords = []string{
	"tercer sector",
	"inclusión laboral",
	"formación profesional",
	"cooperación internacional",
	"migrantes",
	"refugiados",
	"ong",
	"fundación",
	"asociación",
	"voluntariado",
	"derechos humanos",
	"infancia",
	"juventud",
	"mujeres",
}

// Locale pairs a search location code with the country stamped on results.
type Locale struct {
	Code    string
	Country string
}

// DefaultLocales are Spain and Colombia.
var DefaultLocales = []Locale{
	{Code: "ES", Country: "España"},
	{Code: "CO", Country: "Colombia"},
}

var categoryHints = []sources.HintRule{
	{Keywords: []string{"empleo", "laboral", "trabajo", "inserción"}, Category: domain.CategoryLabourInclusion},
	{Keywords: []string{"formación", "curso", "capacitación"}, Category: domain.CategoryVocationalTraining},
	{Keywords: []string{"migrant", "refugiad", "acogida"}, Category: domain.CategoryMigrantSupport},
	{Keywords: []string{"cooperación", "desarrollo", "internacional"}, Category: domain.CategoryCooperation},
	{Keywords: []string{"niñ", "infancia", "joven", "mujer"}, Category: domain.CategoryRights},
	{Keywords: []string{"inteligencia artificial", "digital", "tecnología"}, Category: domain.CategoryTechnology},
}

// Verify interface compliance.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Adapter searches Eventbrite. Without an API key it is inert and returns
// no events.
type Adapter struct {
	fetcher  driven.Fetcher
	baseURL  string
	locales  []Locale
	keywords []string
	maxPages int
	now      func() time.Time
}

// Option configures an Adapter.
type Option func(*adapterConfig)

type adapterConfig struct {
	baseURL   string
	locales   []Locale
	maxPages  int
	fetchOpts []fetch.Option
}

// WithBaseURL points the adapter at another API root. Useful for testing.
func WithBaseURL(u string) Option {
	return func(c *adapterConfig) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithLocales replaces the searched locales.
func WithLocales(locales ...Locale) Option {
	return func(c *adapterConfig) { c.locales = locales }
}

// WithMaxPages caps pagination per search.
func WithMaxPages(n int) Option {
	return func(c *adapterConfig) { c.maxPages = n }
}

// WithFetchOptions passes options to the underlying fetch client.
func WithFetchOptions(opts ...fetch.Option) Option {
	return func(c *adapterConfig) { c.fetchOpts = append(c.fetchOpts, opts...) }
}

// New creates the adapter. An empty apiKey yields an inert adapter.
func New(apiKey string, opts ...Option) *Adapter {
	cfg := adapterConfig{
		baseURL:  DefaultBaseURL,
		locales:  DefaultLocales,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Adapter{
		baseURL:  cfg.baseURL,
		locales:  cfg.locales,
		keywords: Keywords[:searchKeywordLimit],
		maxPages: cfg.maxPages,
		now:      time.Now,
	}
	if apiKey == "" {
		return a
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
	hc := oauth2.NewClient(context.Background(), ts)
	fetchOpts := append([]fetch.Option{
		fetch.WithHTTPClient(hc),
		fetch.WithRateLimit(apiRate),
	}, cfg.fetchOpts...)
	a.fetcher = fetch.NewClient(fetchOpts...)
	return a
}

// Organization returns the registry name.
func (a *Adapter) Organization() string {
	return Organization
}

// Enabled reports whether an API key was supplied.
func (a *Adapter) Enabled() bool {
	return a.fetcher != nil
}

// FetchAndNormalize runs every locale and keyword search.
// A failing search is logged and its earlier pages kept. Only when every
// search fails is an error returned.
func (a *Adapter) FetchAndNormalize(ctx context.Context) ([]domain.Event, error) {
	if !a.Enabled() {
		logger.Warn("No Eventbrite API key provided, skipping Eventbrite")
		return []domain.Event{}, nil
	}

	var (
		events   = []domain.Event{}
		errs     []error
		searches int
	)
	for _, loc := range a.locales {
		for _, kw := range a.keywords {
			searches++
			found, err := a.search(ctx, kw, loc)
			// Pages fetched before a failure are kept.
			events = append(events, found...)
			if err != nil {
				logger.Warn("Eventbrite search %q in %s failed: %v", kw, loc.Code, err)
				errs = append(errs, err)
			}
		}
	}

	if searches > 0 && len(errs) == searches {
		return nil, fmt.Errorf("%s: all searches failed: %w", Organization, errors.Join(errs...))
	}

	logger.Info("Found %d events from %s", len(events), Organization)
	return events, nil
}

func (a *Adapter) search(ctx context.Context, keyword string, loc Locale) ([]domain.Event, error) {
	var (
		events       []domain.Event
		continuation string
	)
	for page := 0; page < a.maxPages; page++ {
		var resp searchResponse
		if err := a.fetcher.FetchJSON(ctx, a.searchURL(keyword, loc.Code, continuation), &resp); err != nil {
			return events, err
		}

		raws := make([]sources.RawEvent, 0, len(resp.Events))
		for i := range resp.Events {
			raws = append(raws, toRaw(&resp.Events[i], loc))
		}
		events = append(events, sources.Collect(raws, sources.Defaults{
			Organization: Organization,
			Country:      loc.Country,
		}, a.now())...)

		if !resp.Pagination.HasMoreItems || resp.Pagination.Continuation == "" {
			break
		}
		continuation = resp.Pagination.Continuation
	}
	return events, nil
}

func (a *Adapter) searchURL(keyword, locationCode, continuation string) string {
	q := url.Values{}
	q.Set("q", keyword)
	q.Set("location.address", locationCode)
	q.Set("expand", "venue")
	q.Set("sort_by", "date")
	if continuation != "" {
		q.Set("continuation", continuation)
	}
	return a.baseURL + "/events/search/?" + q.Encode()
}

func toRaw(ev *apiEvent, loc Locale) sources.RawEvent {
	raw := sources.RawEvent{
		Name:        ev.Name.Text,
		Description: ev.Description.Text,
		Link:        ev.URL,
		Country:     loc.Country,
	}

	if date, clock, ok := strings.Cut(ev.Start.Local, "T"); ok {
		raw.Date = sources.ParseDate(date)
		if len(clock) >= 5 {
			raw.Time = clock[:5]
		}
	} else {
		raw.Date = sources.ParseDate(ev.Start.Local)
	}

	if ev.OnlineEvent {
		raw.Modality = domain.ModalityOnline
	} else {
		raw.Modality = domain.ModalityInPerson
		if ev.Venue != nil {
			raw.Location = joinNonEmpty(", ", ev.Venue.Address.City, ev.Venue.Address.Region)
		}
	}

	if ev.Organizer != nil && ev.Organizer.Name != "" {
		raw.Organization = ev.Organizer.Name
	}

	raw.Category = sources.FirstMatch(raw.Name+" "+raw.Description, categoryHints, domain.DefaultCategory)
	return raw
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
