package sources

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/siria/internal/core/domain"
)

var testNow = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

func TestNormalise_FillsDefaults(t *testing.T) {
	e := Normalise(RawEvent{
		Name: "  Jornada\n  de empleo ",
		Date: "2025-02-01",
		Link: "https://example.org/e/1",
	}, Defaults{Organization: "Fundación ONCE", Category: domain.CategoryLabourInclusion}, testNow)

	assert.Equal(t, "Jornada de empleo", e.Name)
	assert.Equal(t, "Fundación ONCE", e.Organization)
	assert.Equal(t, "España", e.Country)
	assert.Equal(t, domain.CategoryLabourInclusion, e.Category)
	assert.Equal(t, "", e.Time)
	assert.Equal(t, domain.ModalityUnknown, e.Modality)
	assert.Equal(t, testNow, e.ScrapedAt)
	assert.Equal(t, domain.GenerateID("", "", "2025-02-01", "https://example.org/e/1"), e.ID)
}

func TestNormalise_RawValuesWin(t *testing.T) {
	e := Normalise(RawEvent{
		Name:         "Foro",
		Organization: "Organizer Ltd",
		Country:      "Colombia",
		Category:     domain.CategoryCooperation,
	}, Defaults{Organization: "Eventbrite", Country: "España", Category: domain.DefaultCategory}, testNow)

	assert.Equal(t, "Organizer Ltd", e.Organization)
	assert.Equal(t, "Colombia", e.Country)
	assert.Equal(t, domain.CategoryCooperation, e.Category)
}

func TestNormalise_OnlineClearsLocation(t *testing.T) {
	e := Normalise(RawEvent{Modality: domain.ModalityOnline, Location: "Zoom"}, Defaults{}, testNow)

	assert.Empty(t, e.Location)
}

func TestCollect_DropsInvalid(t *testing.T) {
	def := Defaults{Organization: "CEAR"}
	raws := []RawEvent{
		{Name: "ok", Date: "2025-02-01", Link: "https://cear.es/a"},
		{Name: "no link", Date: "2025-02-01"},
		{Name: "no date", Link: "https://cear.es/b"},
		{Date: "2025-02-01", Link: "https://cear.es/c"},
	}

	events := Collect(raws, def, testNow)

	require.Len(t, events, 1)
	assert.Equal(t, "ok", events[0].Name)
	for _, e := range events {
		assert.NotEmpty(t, e.Link)
	}
}
