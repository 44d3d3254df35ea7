package domain

// SourceKind identifies which adapter variant serves a source.
type SourceKind string

// Available source kinds.
const (
	// SourceKindGeneric is a config-driven HTML source.
	SourceKindGeneric SourceKind = "generic"

	// SourceKindONCE is the bespoke Fundación ONCE agenda adapter.
	SourceKindONCE SourceKind = "once"

	// SourceKindSaveTheChildren is the bespoke Save the Children adapter.
	SourceKindSaveTheChildren SourceKind = "savethechildren"

	// SourceKindEventbrite is the ticketing API search adapter.
	SourceKindEventbrite SourceKind = "eventbrite"
)

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceKindGeneric, SourceKindONCE, SourceKindSaveTheChildren, SourceKindEventbrite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// ExtractionLocations names where each field lives on a listing page.
// Values are CSS selectors. Empty values take the adapter defaults.
type ExtractionLocations struct {
	// Container selects one element per candidate event.
	Container string `toml:"container" yaml:"container" json:"container,omitempty"`

	// Title selects the event name inside a container.
	Title string `toml:"title" yaml:"title" json:"title,omitempty"`

	// Date selects the date element. A datetime attribute wins over text.
	Date string `toml:"date" yaml:"date" json:"date,omitempty"`

	// Link selects the anchor carrying the detail URL.
	Link string `toml:"link" yaml:"link" json:"link,omitempty"`

	// Location selects the venue text.
	Location string `toml:"location" yaml:"location" json:"location,omitempty"`
}

// SourceConfig is the declarative configuration of one organisation's source.
type SourceConfig struct {
	// Kind selects the adapter variant. Defaults to generic.
	Kind SourceKind `toml:"kind" yaml:"kind" json:"kind,omitempty"`

	// OrganizationName is the announcing organisation. Also the registry key.
	OrganizationName string `toml:"organization_name" yaml:"organization_name" json:"organization_name" validate:"required"`

	// BaseURL resolves relative links.
	BaseURL string `toml:"base_url" yaml:"base_url" json:"base_url" validate:"required,url"`

	// EventsURL is the listing page. Defaults to BaseURL.
	EventsURL string `toml:"events_url" yaml:"events_url" json:"events_url,omitempty" validate:"omitempty,url"`

	// Country is stamped on every event. Defaults to DefaultCountry.
	Country string `toml:"country" yaml:"country" json:"country,omitempty"`

	// DefaultCategory is stamped before classification. Defaults to DefaultCategory.
	DefaultCategory string `toml:"default_category" yaml:"default_category" json:"default_category,omitempty"`

	// ExtractionLocations holds the field selectors.
	ExtractionLocations ExtractionLocations `toml:"extraction_locations" yaml:"extraction_locations" json:"extraction_locations"`

	// Disabled removes the source from the registry without deleting it.
	Disabled bool `toml:"disabled" yaml:"disabled" json:"disabled,omitempty"`
}

// WithDefaults returns a copy with documented defaults applied.
func (c SourceConfig) WithDefaults() SourceConfig {
	if c.Kind == "" {
		c.Kind = SourceKindGeneric
	}
	if c.EventsURL == "" {
		c.EventsURL = c.BaseURL
	}
	if c.Country == "" {
		c.Country = DefaultCountry
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = DefaultCategory
	}
	return c
}
