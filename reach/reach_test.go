package reach_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/reach"
	"github.com/ecdar/reveal/zone/refimpl"
)

func init() { cts.SetKernel(refimpl.Kernel{}) }

// counter is a single-clock component: q0 --tick(x>=3)--> q1, so q1 is
// reachable only once the clock has had the chance to delay past 3.
func counter() *cts.Leaf {
	raw := &component.Raw{
		Name:   "Counter",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "q0", Initial: true},
			{ID: "q1"},
		},
		Edges: []component.RawEdge{
			{ID: "tick", Src: "q0", Dst: "q1", Action: "tick", Kind: component.Input,
				Guard: component.Leaf(component.GE("x", 3))},
		},
	}
	cc, err := component.Compile(raw, refimpl.Kernel{})
	if err != nil {
		panic(err)
	}

	return &cts.Leaf{Component: cc, LeafIndex: 0}
}

func TestFind_ReachesTargetOnlyAfterDelay(t *testing.T) {
	c := counter()
	init := c.InitialLocation()
	z := cts.Init(c, init)
	end := reach.EndState{Loc: location.Leaf(0, location.Location{ID: "q1"})}

	out := reach.Find(c, init, z, end)
	require.True(t, out.Ok(), "expected q1 reachable by delay then tick, got %s", out.Error())
	assert.Equal(t, []string{"tick"}, out.TraceIDs)
}

func TestFind_UnreachableWhenLocationDoesNotExist(t *testing.T) {
	c := counter()
	init := c.InitialLocation()
	z := cts.Init(c, init)
	end := reach.EndState{Loc: location.Leaf(0, location.Location{ID: "nowhere"})}

	out := reach.Find(c, init, z, end)
	assert.False(t, out.Ok())
}

// Reachability path validity (spec.md §8.1): if Find returns a path,
// replaying it by hand from the initial state lands in a zone that
// intersects the end pattern.
func TestFind_ReportedPath_ReplaysToASatisfyingState(t *testing.T) {
	c := counter()
	init := c.InitialLocation()
	z := cts.Init(c, init)
	end := reach.EndState{Loc: location.Leaf(0, location.Location{ID: "q1"})}

	out := reach.Find(c, init, z, end)
	require.True(t, out.Ok())
	require.Equal(t, []string{"tick"}, out.TraceIDs)

	// Replay: delay from q0's initial zone, then take "tick".
	delayed := z.Up().Intersection(c.Invariant(init))
	bounds := c.LocalMaxBounds(init)
	trs, err := c.NextTransitions(init, "tick")
	require.NoError(t, err)
	// The tick edge plus the input-enabling self-loop over x<3.
	require.Len(t, trs, 2)

	next, ok := trs[0].Apply(delayed, c.Invariant(trs[0].Target), bounds)
	require.True(t, ok)
	assert.False(t, next.IsEmpty(), "replayed end state must be non-empty")
	assert.True(t, trs[0].Target.ComparePartial(end.Loc))
}
