package cts_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/zone/refimpl"
)

func leafNode(t *testing.T, name string, inputs, outputs []string, index int) *cts.Leaf {
	t.Helper()
	raw := &component.Raw{Name: name, Locations: []component.RawLocation{{ID: "q0", Initial: true}}}
	for _, a := range inputs {
		raw.Edges = append(raw.Edges, component.RawEdge{ID: a, Src: "q0", Dst: "q0", Action: a, Kind: component.Input})
	}
	for _, a := range outputs {
		raw.Edges = append(raw.Edges, component.RawEdge{ID: a, Src: "q0", Dst: "q0", Action: a, Kind: component.Output})
	}
	cc, err := component.Compile(raw, refimpl.Kernel{})
	require.NoError(t, err)

	return &cts.Leaf{Component: cc, LeafIndex: index}
}

func sorted(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)

	return out
}

// Composition commutativity of action sets (spec.md §8.1): for
// Conjunction and Composition, actions(A op B) = actions(B op A).
func TestComposition_ActionSets_AreCommutative(t *testing.T) {
	cts.SetKernel(refimpl.Kernel{})
	a := leafNode(t, "A", []string{"in1"}, []string{"out1"}, 0)
	b := leafNode(t, "B", []string{"in2"}, []string{"out2"}, 1)

	ab, err := cts.NewComposition(a, b)
	require.NoError(t, err)
	ba, err := cts.NewComposition(b, a)
	require.NoError(t, err)

	assert.Equal(t, sorted(ab.InputActions()), sorted(ba.InputActions()))
	assert.Equal(t, sorted(ab.OutputActions()), sorted(ba.OutputActions()))
}

func TestConjunction_ActionSets_AreCommutative(t *testing.T) {
	cts.SetKernel(refimpl.Kernel{})
	a := leafNode(t, "A", []string{"shared"}, []string{"out1"}, 0)
	b := leafNode(t, "B", []string{"shared"}, nil, 1)

	ab, err := cts.NewConjunction(a, b)
	require.NoError(t, err)
	ba, err := cts.NewConjunction(b, a)
	require.NoError(t, err)

	assert.Equal(t, sorted(ab.InputActions()), sorted(ba.InputActions()))
	assert.Equal(t, sorted(ab.OutputActions()), sorted(ba.OutputActions()))
}

func TestComposition_RejectsOverlappingOutputs(t *testing.T) {
	cts.SetKernel(refimpl.Kernel{})
	a := leafNode(t, "A", nil, []string{"out"}, 0)
	b := leafNode(t, "B", nil, []string{"out"}, 1)

	_, err := cts.NewComposition(a, b)
	assert.ErrorIs(t, err, cts.ErrOutputsOverlap)
}

func TestConjunction_RejectsNonDisjointOppositePolarity(t *testing.T) {
	cts.SetKernel(refimpl.Kernel{})
	a := leafNode(t, "A", []string{"x"}, nil, 0)
	b := leafNode(t, "B", nil, []string{"x"}, 1)

	_, err := cts.NewConjunction(a, b)
	assert.ErrorIs(t, err, cts.ErrActionsNotDisjoint)
}
