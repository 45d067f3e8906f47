package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/zone/refimpl"
)

// lamp is a minimal two-location component: off --on--> on --off--> off,
// used throughout the package tests as a small, hand-checkable fixture.
func lamp() *component.Raw {
	return &component.Raw{
		Name:   "Lamp",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "off", Initial: true},
			{ID: "on", Invariant: component.Leaf(component.LE("x", 10))},
		},
		Edges: []component.RawEdge{
			{ID: "e1", Src: "off", Dst: "on", Action: "on", Kind: component.Output,
				Updates: []component.RawUpdate{{Clock: "x", Value: 0}}},
			{ID: "e2", Src: "on", Dst: "off", Action: "off", Kind: component.Output,
				Guard: component.Leaf(component.GE("x", 2))},
		},
	}
}

func TestCompile_InitialLocationAndActions(t *testing.T) {
	t.Parallel()

	cc, err := component.Compile(lamp(), refimpl.Kernel{})
	require.NoError(t, err)

	assert.Equal(t, location.ID("off"), cc.InitialLocation().ID)
	assert.Contains(t, cc.OutputActions(), "on")
	assert.Contains(t, cc.OutputActions(), "off")
}

func TestCompile_NoInitialLocation_Errors(t *testing.T) {
	t.Parallel()

	raw := lamp()
	raw.Locations[0].Initial = false
	_, err := component.Compile(raw, refimpl.Kernel{})
	assert.ErrorIs(t, err, component.ErrNoInitialLocation)
}

func TestCompile_InputEnablingSynthesizesSelfLoop(t *testing.T) {
	t.Parallel()

	raw := &component.Raw{
		Name:   "Receiver",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "idle", Initial: true},
		},
		Edges: []component.RawEdge{
			{ID: "e1", Src: "idle", Dst: "idle", Action: "recv", Kind: component.Input,
				Guard: component.Leaf(component.LE("x", 5))},
		},
	}
	cc, err := component.Compile(raw, refimpl.Kernel{})
	require.NoError(t, err)

	edges := cc.NextTransitions("idle", "recv")
	// one real edge plus one synthesized self-loop covering x>5
	require.Len(t, edges, 2)
	sawSynth := false
	for _, e := range edges {
		if e.ID == "" {
			sawSynth = true
			assert.False(t, e.Guard.IsEmpty())
		}
	}
	assert.True(t, sawSynth, "expected a synthesized input-enabling self-loop for the uncovered zone")
}

func TestCompile_UniversalLocationSelfLoopsEveryAction(t *testing.T) {
	t.Parallel()

	cc, err := component.Compile(lamp(), refimpl.Kernel{})
	require.NoError(t, err)

	u := cc.Universal()
	assert.True(t, u.IsUniversal())

	loops := cc.NextTransitions(u.ID, "on")
	require.Len(t, loops, 1)
	assert.Equal(t, u.ID, loops[0].Target)
	assert.False(t, loops[0].Guard.IsEmpty())
}
