package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecdar/reveal/location"
)

func leaf(idx int, id location.ID) *location.Tree {
	return location.Leaf(idx, location.Location{ID: id})
}

// Partial location match reflexivity (spec.md §8.1): loc matches loc,
// and loc matches a tree with all leaves replaced by AnyLocation.
func TestTree_ComparePartial_ReflexiveOnItself(t *testing.T) {
	l := location.Compose(leaf(0, "q0"), leaf(1, "r0"), location.OpComposition)
	assert.True(t, l.ComparePartial(l))
}

func TestTree_ComparePartial_MatchesAllLeavesReplacedByAny(t *testing.T) {
	l := location.Compose(leaf(0, "q0"), leaf(1, "r0"), location.OpComposition)
	wildcard := location.Compose(location.Any(), location.Any(), location.OpComposition)
	assert.True(t, l.ComparePartial(wildcard))
	assert.True(t, wildcard.ComparePartial(l))
}

func TestTree_ComparePartial_DiffersOnLeafIdentity(t *testing.T) {
	a := leaf(0, "q0")
	b := leaf(0, "q1")
	assert.False(t, a.ComparePartial(b))
}

func TestTree_ComparePartial_PartialAnyOnOneSideOnly(t *testing.T) {
	l := location.Compose(leaf(0, "q0"), leaf(1, "r0"), location.OpComposition)
	halfWild := location.Compose(leaf(0, "q0"), location.Any(), location.OpComposition)
	assert.True(t, l.ComparePartial(halfWild))

	mismatched := location.Compose(leaf(0, "qX"), location.Any(), location.OpComposition)
	assert.False(t, l.ComparePartial(mismatched))
}

func TestTree_Equals_IsStricterThanComparePartial(t *testing.T) {
	l := location.Compose(leaf(0, "q0"), leaf(1, "r0"), location.OpComposition)
	wildcard := location.Compose(location.Any(), location.Any(), location.OpComposition)
	assert.False(t, l.Equals(wildcard))

	clone := location.Compose(leaf(0, "q0"), leaf(1, "r0"), location.OpComposition)
	assert.True(t, l.Equals(clone))
}

func TestTree_String_IsStableAcrossEqualShapes(t *testing.T) {
	a := location.Compose(leaf(0, "q0"), leaf(1, "r0"), location.OpComposition)
	b := location.Compose(leaf(0, "q0"), leaf(1, "r0"), location.OpComposition)
	assert.Equal(t, a.String(), b.String())
}

func TestTree_Compose_CollapsesUniversalUnderComposition(t *testing.T) {
	u := location.Compose(location.Universal(), location.Universal(), location.OpComposition)
	assert.True(t, u.IsUniversal())
}

func TestTree_Compose_CollapsesInconsistentUnderConjunction(t *testing.T) {
	i := location.Compose(location.Inconsistent(), location.Inconsistent(), location.OpConjunction)
	assert.True(t, i.IsInconsistent())
}

func TestTree_Compose_DoesNotCollapseQuotient(t *testing.T) {
	q := location.Compose(location.Universal(), location.Universal(), location.OpQuotient)
	assert.False(t, q.IsUniversal())
	assert.False(t, q.IsLeaf())
}
