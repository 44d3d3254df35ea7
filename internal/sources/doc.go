// Package sources holds the pieces shared by every source adapter:
// the raw record shape, normalisation into domain.Event, date and time
// parsing, link resolution and modality detection.
//
// Adapters live in sub-packages:
//
//   - once: Fundación ONCE agenda (bespoke extraction)
//   - savethechildren: Save the Children España (bespoke extraction)
//   - generic: any listing page described by a domain.SourceConfig
//   - eventbrite: keyword search over the Eventbrite API
//   - catalog: the organisation catalogue and registry builder
//   - fetch: the retrying HTTP client used by all of them
package sources
