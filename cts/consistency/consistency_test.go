package consistency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/cts/consistency"
	"github.com/ecdar/reveal/zone/refimpl"
)

func init() { cts.SetKernel(refimpl.Kernel{}) }

func TestCheckLeast_NoClocksNoEdges_IsConsistent(t *testing.T) {
	raw := &component.Raw{
		Name:      "Idle",
		Locations: []component.RawLocation{{ID: "q0", Initial: true}},
	}
	cc, err := component.Compile(raw, refimpl.Kernel{})
	require.NoError(t, err)
	leaf := &cts.Leaf{Component: cc, LeafIndex: 0}

	res := consistency.CheckLeast(leaf, "Idle")
	assert.True(t, res.Ok)
}

// A location capped to x<=0 can never delay, and with no outgoing
// action at all it has no consistent output either: spec.md §4.6 rules
// this an inconsistent location under both CheckLeast and CheckFully.
func TestCheckLeast_ZeroDelayDeadEnd_IsInconsistent(t *testing.T) {
	raw := &component.Raw{
		Name:   "Stuck",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "q0", Initial: true, Invariant: component.Leaf(component.LE("x", 0))},
		},
	}
	cc, err := component.Compile(raw, refimpl.Kernel{})
	require.NoError(t, err)
	leaf := &cts.Leaf{Component: cc, LeafIndex: 0}

	res := consistency.CheckLeast(leaf, "Stuck")
	require.False(t, res.Ok)
	require.NotNil(t, res.Failure)
	assert.Equal(t, "Stuck", res.Failure.System)
}

func TestCheckFully_OutputLeadsToConsistentState_Succeeds(t *testing.T) {
	raw := &component.Raw{
		Name:      "Responsive",
		Locations: []component.RawLocation{{ID: "q0", Initial: true}, {ID: "q1"}},
		Edges: []component.RawEdge{
			{ID: "e1", Src: "q0", Dst: "q1", Action: "ping", Kind: component.Output},
		},
	}
	cc, err := component.Compile(raw, refimpl.Kernel{})
	require.NoError(t, err)
	leaf := &cts.Leaf{Component: cc, LeafIndex: 0}

	res := consistency.CheckFully(leaf, "Responsive")
	assert.True(t, res.Ok)
}
