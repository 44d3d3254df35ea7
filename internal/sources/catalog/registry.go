package catalog

import (
	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/logger"
	"github.com/custodia-labs/siria/internal/sources/eventbrite"
	"github.com/custodia-labs/siria/internal/sources/fetch"
	"github.com/custodia-labs/siria/internal/sources/generic"
	"github.com/custodia-labs/siria/internal/sources/once"
	"github.com/custodia-labs/siria/internal/sources/savethechildren"
)

// BuildOptions carries what adapters need beyond their catalogue entry.
type BuildOptions struct {
	// EventbriteAPIKey enables the ticketing API adapter.
	EventbriteAPIKey string

	// FetchOptions are applied to every adapter's fetch client.
	FetchOptions []fetch.Option
}

// BuildAdapters creates one adapter per enabled entry, in catalogue order.
// Each adapter gets its own fetch client.
func BuildAdapters(c *Catalog, opts BuildOptions) []driven.SourceAdapter {
	cfgs := c.Enabled()
	adapters := make([]driven.SourceAdapter, 0, len(cfgs))
	for _, cfg := range cfgs {
		adapters = append(adapters, build(cfg, opts))
	}
	logger.Debug("Built %d source adapters", len(adapters))
	return adapters
}

func build(cfg domain.SourceConfig, opts BuildOptions) driven.SourceAdapter {
	switch cfg.Kind {
	case domain.SourceKindONCE:
		return once.New(fetch.NewClient(opts.FetchOptions...), once.WithURLs(cfg.BaseURL, cfg.EventsURL))
	case domain.SourceKindSaveTheChildren:
		return savethechildren.New(fetch.NewClient(opts.FetchOptions...), savethechildren.WithURLs(cfg.BaseURL, cfg.EventsURL))
	case domain.SourceKindEventbrite:
		return eventbrite.New(opts.EventbriteAPIKey,
			eventbrite.WithBaseURL(cfg.BaseURL),
			eventbrite.WithFetchOptions(opts.FetchOptions...))
	default:
		return generic.New(cfg, fetch.NewClient(opts.FetchOptions...))
	}
}
