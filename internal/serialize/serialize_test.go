package serialize_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/internal/fixture"
	"github.com/ecdar/reveal/internal/serialize"
	"github.com/ecdar/reveal/zone/refimpl"
)

func TestFromRaw_PreservesGuardsAndUpdates(t *testing.T) {
	t.Parallel()

	doc := serialize.FromRaw(fixture.Machine())

	assert.Equal(t, "Machine", doc.Name)
	require.Len(t, doc.Locations, 2)
	require.Len(t, doc.Edges, 2)

	var release component.RawEdge
	for _, e := range fixture.Machine().Edges {
		if e.ID == "m2" {
			release = e
		}
	}
	require.NotNil(t, release.Guard)

	var releaseDoc *serialize.EdgeDoc
	for i := range doc.Edges {
		if doc.Edges[i].ID == "m2" {
			releaseDoc = &doc.Edges[i]
		}
	}
	require.NotNil(t, releaseDoc)
	assert.Equal(t, "z>=2", releaseDoc.Guard)
	assert.Equal(t, "output", releaseDoc.Kind)
}

func TestFromCompiled_RendersLocationsAndEdges(t *testing.T) {
	t.Parallel()

	cc, err := component.Compile(fixture.Component3(), refimpl.Kernel{})
	require.NoError(t, err)

	doc := serialize.FromCompiled(cc)
	assert.Equal(t, "Component3", doc.Name)
	assert.NotEmpty(t, doc.Locations)

	var sawAdvance bool
	for _, e := range doc.Edges {
		if e.ID == "E5" {
			sawAdvance = true
			assert.Equal(t, "advance", e.Action)
		}
	}
	assert.True(t, sawAdvance)
}

func TestWrite_ProducesParsableYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, serialize.Write(&buf, serialize.FromRaw(fixture.Researcher())))
	assert.Contains(t, buf.String(), "name: Researcher")
}
