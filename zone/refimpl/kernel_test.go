package refimpl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecdar/reveal/zone"
	"github.com/ecdar/reveal/zone/refimpl"
)

const dim = 3 // reference clock + x + y

func TestKernel_New_IsUniverseAndNonEmpty(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	u := k.New(dim)
	assert.False(t, u.IsEmpty())
}

func TestKernel_Empty_IsEmpty(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	e := k.Empty(dim)
	assert.True(t, e.IsEmpty())
}

func TestKernel_Init_ConstrainsAllClocksToZero(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	z := k.Init(dim)
	require.False(t, z.IsEmpty())

	// x <= 1 must still intersect the init zone (0 <= 1).
	notEmpty := z.Constrain(1, 0, zone.Bound{Const: 1})
	assert.False(t, notEmpty.IsEmpty())

	// x >= 1 (i.e. 0 - x <= -1) must NOT intersect the init zone.
	mustBeEmpty := z.Constrain(0, 1, zone.Bound{Const: -1})
	assert.True(t, mustBeEmpty.IsEmpty())
}

func TestFederation_ConstrainThenSubsetEq(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	universe := k.New(dim)

	// x <= 5
	tight := universe.Constrain(1, 0, zone.Bound{Const: 5})
	assert.True(t, tight.SubsetEq(universe), "a tighter zone must be a subset of the universe")
	assert.False(t, universe.SubsetEq(tight), "the universe must not be a subset of a strictly tighter zone")
}

func TestFederation_UpThenDown_RoundTripsThroughInit(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	init := k.Init(dim)

	delayed := init.Up()
	assert.False(t, delayed.IsEmpty())
	assert.True(t, delayed.CanDelayIndefinitely())

	back := delayed.Down()
	assert.True(t, back.Equals(delayed), "down(up(init)) must equal up(init): backward delay keeps the clock differences fixed by init")
}

func TestFederation_IntersectionAndUnion(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	universe := k.New(dim)

	xLe5 := universe.Constrain(1, 0, zone.Bound{Const: 5})
	xGe2 := universe.Constrain(0, 1, zone.Bound{Const: -2})

	band := xLe5.Intersection(xGe2)
	assert.False(t, band.IsEmpty())
	assert.True(t, band.SubsetEq(xLe5))
	assert.True(t, band.SubsetEq(xGe2))

	union := xLe5.Union(xGe2)
	assert.True(t, xLe5.SubsetEq(union))
	assert.True(t, xGe2.SubsetEq(union))
}

func TestFederation_SubtractionRemovesTheSubtrahend(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	universe := k.New(dim)

	xLe5 := universe.Constrain(1, 0, zone.Bound{Const: 5})
	xLe2 := universe.Constrain(1, 0, zone.Bound{Const: 2})

	diff := xLe5.Subtraction(xLe2)
	assert.False(t, diff.IsEmpty())
	assert.False(t, diff.HasIntersection(xLe2), "x in (2,5] must not intersect x<=2")
}

func TestFederation_FreeThenUpdate(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	universe := k.New(dim)

	bounded := universe.Constrain(1, 0, zone.Bound{Const: 3})
	freed := bounded.Free(1)
	assert.True(t, bounded.SubsetEq(freed), "freeing a clock must only weaken constraints")

	reset := freed.Update(1, 0)
	assert.True(t, reset.SubsetEq(universe))
}

func TestFederation_ExtrapolateMaxBounds_DropsBeyondMax(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	universe := k.New(dim)
	large := universe.Constrain(1, 0, zone.Bound{Const: 1000})

	bounds := zone.NewBounds(dim)
	bounds.SetUpper(1, 10)

	extrapolated := large.ExtrapolateMaxBounds(bounds)
	assert.True(t, large.SubsetEq(extrapolated), "extrapolation must only weaken the zone")
}

func TestFederation_MinimalConstraints_NonEmptyForBoundedZone(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	universe := k.New(dim)
	bounded := universe.Constrain(1, 0, zone.Bound{Const: 3})

	mc := bounded.MinimalConstraints()
	require.Len(t, mc, 1)
	assert.NotEmpty(t, mc[0])
}

func TestFederation_Predt_AvoidsGoodRegion(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	universe := k.New(dim)

	full := universe.Up()
	good := full.Constrain(1, 0, zone.Bound{Const: 2})

	predt := full.Predt(good)
	assert.False(t, predt.IsEmpty(), "points just below the good region's boundary can still reach it by delay")
}

// Canonicality (spec.md §8.1): every federation the kernel returns is
// either explicitly empty or non-empty, and repeated projection to its
// minimal constraint set is stable (the same canonical form every
// time), regardless of how many equivalent operations built it.
func TestFederation_Canonicality_IsStableAcrossEquivalentConstructions(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	direct := k.New(dim).Constrain(1, 0, zone.Bound{Const: 3})
	// An equivalent zone built by a different operation order (an extra
	// intersection with the universe changes nothing).
	indirect := k.New(dim).Intersection(k.New(dim)).Constrain(1, 0, zone.Bound{Const: 3})

	assert.Equal(t, direct.IsEmpty(), indirect.IsEmpty())
	assert.True(t, direct.SubsetEq(indirect))
	assert.True(t, indirect.SubsetEq(direct))
	assert.Equal(t, direct.MinimalConstraints(), direct.MinimalConstraints(),
		"projecting twice must yield the same canonical form")
}

func TestFederation_Canonicality_EmptyIsExplicit(t *testing.T) {
	t.Parallel()

	k := refimpl.Kernel{}
	contradiction := k.New(dim).Constrain(1, 0, zone.Bound{Const: 0}).Constrain(0, 1, zone.Bound{Const: -5})
	assert.True(t, contradiction.IsEmpty())
	assert.Empty(t, contradiction.MinimalConstraints())
}
