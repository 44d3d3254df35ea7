package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateID_Deterministic tests that equal derivation inputs give equal ids
func TestGenerateID_Deterministic(t *testing.T) {
	a := GenerateID("Jornada", "Org A", "2025-03-01", "https://example.org/e/1")
	b := GenerateID("Otra jornada", "Org B", "2025-03-01", "https://example.org/e/1")

	assert.Equal(t, a, b, "link and date drive the hash when a link is present")
	assert.Len(t, a, 32)
}

// TestGenerateID_NoLink tests the name/organisation/date fallback
func TestGenerateID_NoLink(t *testing.T) {
	a := GenerateID("Jornada", "Org A", "2025-03-01", "")
	b := GenerateID("Jornada", "Org A", "2025-03-01", "")
	c := GenerateID("Jornada", "Org B", "2025-03-01", "")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

// TestGenerateID_DateMatters tests that a different date changes the id
func TestGenerateID_DateMatters(t *testing.T) {
	a := GenerateID("x", "y", "2025-03-01", "https://example.org")
	b := GenerateID("x", "y", "2025-03-02", "https://example.org")

	assert.NotEqual(t, a, b)
}

// TestGenerateID_KnownValue pins the hash of link+date
func TestGenerateID_KnownValue(t *testing.T) {
	// md5("a") = 0cc175b9c0f1b6a831c399e269772661
	assert.Equal(t, "0cc175b9c0f1b6a831c399e269772661", GenerateID("", "", "", "a"))
}

// TestEvent_EnsureID tests that existing ids are kept
func TestEvent_EnsureID(t *testing.T) {
	e := Event{Name: "n", Organization: "o", Date: "2025-01-01", Link: "https://l"}
	e.EnsureID()
	assert.Equal(t, e.ComputeID(), e.ID)

	kept := Event{ID: "fixed", Link: "https://l"}
	kept.EnsureID()
	assert.Equal(t, "fixed", kept.ID)
}

// TestEvent_IsValid tests required field validation
func TestEvent_IsValid(t *testing.T) {
	valid := Event{Name: "n", Organization: "o", Date: "2025-01-01", Link: "https://l"}

	tests := []struct {
		name   string
		mutate func(e *Event)
		want   bool
	}{
		{"all required present", func(e *Event) {}, true},
		{"missing name", func(e *Event) { e.Name = "" }, false},
		{"missing organization", func(e *Event) { e.Organization = "" }, false},
		{"missing date", func(e *Event) { e.Date = "" }, false},
		{"missing link", func(e *Event) { e.Link = "" }, false},
		{"optional fields empty", func(e *Event) { e.Time, e.Location, e.Description = "", "", "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			assert.Equal(t, tt.want, e.IsValid())
		})
	}
}

// TestEvent_ParsedDate tests date parsing
func TestEvent_ParsedDate(t *testing.T) {
	e := Event{Date: "2025-06-15"}
	d, ok := e.ParsedDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), d)

	_, ok = (&Event{}).ParsedDate()
	assert.False(t, ok)

	_, ok = (&Event{Date: "15/06/2025"}).ParsedDate()
	assert.False(t, ok)
}
