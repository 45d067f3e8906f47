package fixture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/internal/fixture"
	"github.com/ecdar/reveal/zone/refimpl"
)

func TestFixtures_AllCompileCleanly(t *testing.T) {
	t.Parallel()

	raws := []*component.Raw{
		fixture.Administration(), fixture.Researcher(), fixture.Machine(), fixture.Spec(),
		fixture.HalfAdm1(), fixture.HalfAdm2(), fixture.Adm2(), fixture.NonDeterministicMachine(),
		fixture.Component1(), fixture.Component2(), fixture.Component3(),
	}
	for _, raw := range raws {
		cc, err := component.Compile(raw, refimpl.Kernel{})
		require.NoError(t, err, "fixture %s failed to compile", raw.Name)
		assert.NotEmpty(t, cc.Name())
	}
}

func TestReachabilityFixture_HasTheNamedLocationsAndEdge(t *testing.T) {
	t.Parallel()

	cc, err := component.Compile(fixture.Component3(), refimpl.Kernel{})
	require.NoError(t, err)

	edges := cc.NextTransitions("L6", "advance")
	var sawE5 bool
	for _, e := range edges {
		if e.ID == "E5" {
			sawE5 = true
		}
	}
	assert.True(t, sawE5, "expected Component3's L6->L7 edge to be named E5")
}
