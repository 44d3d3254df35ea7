package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/sources/eventbrite"
	"github.com/custodia-labs/siria/internal/sources/generic"
	"github.com/custodia-labs/siria/internal/sources/once"
	"github.com/custodia-labs/siria/internal/sources/savethechildren"
)

func TestBuildAdapters_Default(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	adapters := BuildAdapters(c, BuildOptions{})
	require.Len(t, adapters, 15)

	assert.IsType(t, &once.Adapter{}, adapters[0])
	assert.IsType(t, &savethechildren.Adapter{}, adapters[1])
	assert.IsType(t, &eventbrite.Adapter{}, adapters[2])
	assert.IsType(t, &generic.Adapter{}, adapters[3])

	eb, ok := adapters[2].(*eventbrite.Adapter)
	require.True(t, ok)
	assert.False(t, eb.Enabled(), "no key given")

	names := make(map[string]bool, len(adapters))
	for _, a := range adapters {
		names[a.Organization()] = true
	}
	assert.True(t, names["Fundación ONCE"])
	assert.True(t, names["ACNUR Colombia"])
	assert.True(t, names["Eventbrite"])
}

func TestBuildAdapters_SkipsDisabled(t *testing.T) {
	c := &Catalog{}
	c.Sources = append(c.Sources,
		mustFind(t, "CEAR"),
		mustFind(t, "Entreculturas"),
	)
	c.Sources[1].Disabled = true

	adapters := BuildAdapters(c, BuildOptions{EventbriteAPIKey: "k"})

	require.Len(t, adapters, 1)
	assert.Equal(t, "CEAR", adapters[0].Organization())
}

func mustFind(t *testing.T, name string) domain.SourceConfig {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	cfg, ok := c.Find(name)
	require.True(t, ok)
	return cfg
}
