package service_test

// Remaining universal invariants of spec.md §8.1 not already exercised
// by a single package's own tests: passed-list subsumption monotonicity,
// checked against a cyclic component where the walkers (determinism,
// consistency, reachability) must recognize a revisited, subsumed state
// and stop, rather than unrolling the cycle forever.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/cts/determinism"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/precheck"
	"github.com/ecdar/reveal/reach"
	"github.com/ecdar/reveal/zone/refimpl"
)

// looper is q0 --go(x:=0)--> q1 --back(x:=0)--> q0: a genuine cycle
// back to the initial location under an identical zone each time
// around, so a walker that does not prune subsumed passed-list entries
// would never terminate.
func looper() *component.Raw {
	return &component.Raw{
		Name:   "Looper",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "q0", Initial: true},
			{ID: "q1"},
		},
		Edges: []component.RawEdge{
			{ID: "go", Src: "q0", Dst: "q1", Action: "go", Kind: component.Input,
				Updates: []component.RawUpdate{{Clock: "x", Value: 0}}},
			{ID: "back", Src: "q1", Dst: "q0", Action: "back", Kind: component.Input,
				Updates: []component.RawUpdate{{Clock: "x", Value: 0}}},
		},
	}
}

// Monotonicity of passed-list subsumption (spec.md §8.1): adding a pair
// that is subsumed by a stored pair never changes the answer — here,
// demonstrated by each walker actually terminating on a cyclic system
// and reporting the answer the cycle's single iteration already
// determines, rather than diverging by re-exploring the revisited
// state.
func TestSubsumption_DeterminismTerminatesOnACycle(t *testing.T) {
	t.Parallel()
	cts.SetKernel(refimpl.Kernel{})

	l := leafOf(t, looper(), 0)
	res := determinism.Check(l, "Looper")
	assert.True(t, res.Ok)
}

func TestSubsumption_PrecheckTerminatesOnACycle(t *testing.T) {
	t.Parallel()
	cts.SetKernel(refimpl.Kernel{})

	l := leafOf(t, looper(), 0)
	res := precheck.Run(l, "Looper")
	assert.True(t, res.Ok)
}

func TestSubsumption_ReachTerminatesOnACycleAndFindsTheTarget(t *testing.T) {
	t.Parallel()
	cts.SetKernel(refimpl.Kernel{})

	l := leafOf(t, looper(), 0)
	init := l.InitialLocation()
	z := cts.Init(l, init)
	end := reach.EndState{Loc: location.Leaf(0, location.Location{ID: "q1"})}

	out := reach.Find(l, init, z, end)
	require.True(t, out.Ok())
	assert.Equal(t, []string{"go"}, out.TraceIDs)
}
