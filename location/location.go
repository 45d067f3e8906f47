// Package location models a compiled component's Location and the
// LocationTree shape a Composed Transition System node exposes: a
// structural tree mirroring the CTS's own op tree, with leaves pointing
// back at a single component's location.
//
// LocationTree is deep-copyable and carries no mutable state once
// constructed; invariants are computed on demand from the owning
// component rather than cached on the tree itself, keeping the tree a
// plain, comparable value.
package location

import (
	"fmt"

	"github.com/ecdar/reveal/zone"
)

// Urgency is a location's urgency class.
type Urgency int

const (
	Normal Urgency = iota
	Urgent
)

// Kind classifies a location, including the two synthesized "special"
// locations every compiled component carries for the quotient
// construction.
type Kind int

const (
	KindInitial Kind = iota
	KindNormal
	KindUniversal
	KindInconsistent
)

// ID identifies a location within a single component: component-local,
// not globally unique. Two leaves in different components may share an
// ID without meaning the same location.
type ID string

// Location is one node of a compiled component's automaton.
type Location struct {
	ID      ID
	Kind    Kind
	Urgency Urgency
	// Invariant is nil for "true" (unconstrained); when non-nil it is
	// intersected into every zone occupying this location.
	Invariant zone.Federation
}

func (l Location) IsUniversal() bool    { return l.Kind == KindUniversal }
func (l Location) IsInconsistent() bool { return l.Kind == KindInconsistent }
func (l Location) IsInitial() bool      { return l.Kind == KindInitial }

// Op is the branch operator a LocationTree's internal node was built
// under — it mirrors the CTS node that produced it.
type Op int

const (
	OpConjunction Op = iota
	OpComposition
	OpQuotient
)

// special tags the two synthesized leaves a LocationTree may be, used
// in place of a component reference since they are not owned by any
// one component once composed.
type special int

const (
	notSpecial special = iota
	specialUniversal
	specialInconsistent
	specialAny // the AnyLocation wildcard, reachability queries only
)

// Tree is a LocationTree: either a Leaf (component reference + location
// id), a Branch (two children under an Op), or one of the Special
// leaves (Universal, Inconsistent, or the AnyLocation wildcard used only
// in reachability end-state patterns, never in a live state).
type Tree struct {
	// ComponentIndex identifies, for a Leaf, which leaf slot of the
	// owning CTS this came from (stable per CTS, assigned at build
	// time); -1 for Branch/Special nodes.
	ComponentIndex int
	LocationID     ID
	LocationKind   Kind

	Op          Op
	Left, Right *Tree

	special special
}

// Leaf constructs a leaf node referencing componentIndex's location loc.
func Leaf(componentIndex int, loc Location) *Tree {
	return &Tree{ComponentIndex: componentIndex, LocationID: loc.ID, LocationKind: loc.Kind}
}

// Universal returns the synthesized top leaf.
func Universal() *Tree { return &Tree{ComponentIndex: -1, special: specialUniversal} }

// Inconsistent returns the synthesized bottom leaf.
func Inconsistent() *Tree { return &Tree{ComponentIndex: -1, special: specialInconsistent} }

// Any returns the AnyLocation wildcard usable only inside an end-state
// pattern passed to reachability, never as a live CTS location.
func Any() *Tree { return &Tree{ComponentIndex: -1, special: specialAny} }

func (t *Tree) IsLeaf() bool         { return t.Left == nil && t.Right == nil }
func (t *Tree) IsUniversal() bool    { return t.special == specialUniversal }
func (t *Tree) IsInconsistent() bool { return t.special == specialInconsistent }
func (t *Tree) IsAny() bool          { return t.special == specialAny }
func (t *Tree) IsSpecial() bool      { return t.special != notSpecial }

// Compose builds a branch over left and right under op, collapsing the
// two absorbing-element cases the CTS operators define: two Universal
// leaves under Composition collapse back to Universal, and two
// Inconsistent leaves under Conjunction collapse back to Inconsistent.
// Quotient never collapses.
func Compose(left, right *Tree, op Op) *Tree {
	if op == OpComposition && left.IsUniversal() && right.IsUniversal() {
		return Universal()
	}
	if op == OpConjunction && left.IsInconsistent() && right.IsInconsistent() {
		return Inconsistent()
	}

	return &Tree{ComponentIndex: -1, Op: op, Left: left, Right: right}
}

// Equals reports exact structural equality: same shape, same leaf
// identity (component index + location id), same special tags.
func (t *Tree) Equals(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.special != o.special {
		return false
	}
	if t.IsLeaf() != o.IsLeaf() {
		return false
	}
	if t.IsLeaf() {
		return t.ComponentIndex == o.ComponentIndex && t.LocationID == o.LocationID
	}
	if t.Op != o.Op {
		return false
	}

	return t.Left.Equals(o.Left) && t.Right.Equals(o.Right)
}

// String renders a stable structural key for t, used by the
// verification algorithms' passed lists to group states by exact
// location shape.
func (t *Tree) String() string {
	if t == nil {
		return "nil"
	}
	switch t.special {
	case specialUniversal:
		return "U"
	case specialInconsistent:
		return "I"
	case specialAny:
		return "_"
	}
	if t.IsLeaf() {
		return fmt.Sprintf("%d:%s", t.ComponentIndex, t.LocationID)
	}

	return fmt.Sprintf("(%s %d %s)", t.Left.String(), t.Op, t.Right.String())
}

// ComparePartial reports structural equality modulo AnyLocation
// wildcards on either side: a leaf tagged Any matches any leaf (or
// special leaf) at the same tree position.
func (t *Tree) ComparePartial(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.IsAny() || o.IsAny() {
		return true
	}
	if t.special != o.special {
		return false
	}
	if t.IsLeaf() != o.IsLeaf() {
		return false
	}
	if t.IsLeaf() {
		return t.ComponentIndex == o.ComponentIndex && t.LocationID == o.LocationID
	}
	if t.Op != o.Op {
		return false
	}

	return t.Left.ComparePartial(o.Left) && t.Right.ComparePartial(o.Right)
}
