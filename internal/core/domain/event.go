package domain

import (
	"crypto/md5" //nolint:gosec // identity fingerprint, not a security boundary
	"encoding/hex"
	"time"
)

// Modality describes how attendees take part in an event.
type Modality string

// Recognised modalities. An empty modality means unknown.
const (
	// ModalityInPerson is a physical, on-site event.
	ModalityInPerson Modality = "Presencial"

	// ModalityOnline is a remote event. Online events carry no location.
	ModalityOnline Modality = "Online"

	// ModalityUnknown is used when the source gives no hint.
	ModalityUnknown Modality = ""
)

// DefaultCountry is used when neither the raw record nor the source declares one.
const DefaultCountry = "España"

// Event is a normalised third-sector event announcement.
// It is the only entity that flows through the ingestion pipeline.
type Event struct {
	// ID is the identity hash. See GenerateID.
	ID string `json:"id"`

	// Name is the event title. Required.
	Name string `json:"name"`

	// Organization is the announcing entity. Required.
	Organization string `json:"organization"`

	// Date is the event date as YYYY-MM-DD, or empty if unparseable.
	Date string `json:"date"`

	// Time is the start time as HH:MM, or empty if unknown.
	Time string `json:"time"`

	// Modality is Presencial, Online, or empty.
	Modality Modality `json:"modality"`

	// Location is free text. Empty when the modality is Online.
	Location string `json:"location"`

	// Link is the absolute registration or detail URL. Required.
	Link string `json:"link"`

	// Country defaults to the source's configured country.
	Country string `json:"country"`

	// Category is a taxonomy value or CategoryUncategorized.
	Category string `json:"category"`

	// Description may be empty.
	Description string `json:"description"`

	// ScrapedAt is when the record was normalised. Informational only.
	ScrapedAt time.Time `json:"scraped_at"`

	// MergedFrom is the number of records folded into this one.
	// Zero unless produced by a merge.
	MergedFrom int `json:"merged_from,omitempty"`

	// MergedAt is when the merge happened. Zero unless produced by a merge.
	MergedAt time.Time `json:"merged_at,omitzero"`
}

// GenerateID returns the deterministic identity hash for an event.
// The hash covers link and date when a link is present, otherwise
// name, organisation and date. Equal inputs always give equal ids.
func GenerateID(name, organization, date, link string) string {
	var key string
	if link != "" {
		key = link + date
	} else {
		key = name + organization + date
	}
	sum := md5.Sum([]byte(key)) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}

// ComputeID returns the identity hash derived from the event's own fields.
func (e *Event) ComputeID() string {
	return GenerateID(e.Name, e.Organization, e.Date, e.Link)
}

// EnsureID assigns the identity hash if the event has none.
func (e *Event) EnsureID() {
	if e.ID == "" {
		e.ID = e.ComputeID()
	}
}

// IsValid reports whether all required fields are present.
// Invalid events are dropped by source adapters and never enter the pipeline.
func (e *Event) IsValid() bool {
	return e.Name != "" && e.Organization != "" && e.Date != "" && e.Link != ""
}

// ParsedDate returns the event date as a time.Time in UTC.
// The second return value is false when the date is empty or malformed.
func (e *Event) ParsedDate() (time.Time, bool) {
	if e.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
