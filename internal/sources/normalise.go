package sources

import (
	"strings"
	"time"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// RawEvent holds the fields an adapter extracted for one candidate item,
// before normalisation. Empty fields are filled with defaults.
type RawEvent struct {
	Name         string
	Organization string
	Date         string
	Time         string
	Modality     domain.Modality
	Location     string
	Link         string
	Country      string
	Category     string
	Description  string
}

// Defaults are the adapter-level values used when a raw field is empty.
type Defaults struct {
	Organization string
	Country      string
	Category     string
}

// Normalise maps a raw record into the canonical event shape and assigns its id.
// It never fails: unset fields become empty strings or adapter defaults.
func Normalise(raw RawEvent, def Defaults, now time.Time) domain.Event {
	e := domain.Event{
		Name:         clean(raw.Name),
		Organization: firstNonEmpty(clean(raw.Organization), def.Organization),
		Date:         raw.Date,
		Time:         raw.Time,
		Modality:     raw.Modality,
		Location:     clean(raw.Location),
		Link:         strings.TrimSpace(raw.Link),
		Country:      firstNonEmpty(raw.Country, def.Country, domain.DefaultCountry),
		Category:     firstNonEmpty(raw.Category, def.Category),
		Description:  clean(raw.Description),
		ScrapedAt:    now,
	}
	if e.Modality == domain.ModalityOnline {
		e.Location = ""
	}
	e.ID = e.ComputeID()
	return e
}

// Collect normalises raws and keeps only valid events.
func Collect(raws []RawEvent, def Defaults, now time.Time) []domain.Event {
	events := make([]domain.Event, 0, len(raws))
	for _, raw := range raws {
		e := Normalise(raw, def, now)
		if e.IsValid() {
			events = append(events, e)
		}
	}
	return events
}

// clean collapses runs of whitespace, as HTML text nodes often carry line breaks.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
