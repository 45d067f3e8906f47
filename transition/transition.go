// Package transition defines Transition and its recursive identifier,
// the unit every CTS operator's next_transitions returns and every
// algorithm (determinism, consistency, refinement, reachability,
// quotient) consumes.
package transition

import (
	"fmt"
	"strings"

	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/zone"
)

// Update resets a single clock to a constant, applied in source order
// alongside its sibling updates on a transition.
type Update struct {
	Clock int
	Value int64
}

// ID is a recursive identifier mirroring the CTS tree that produced the
// transition it names: a leaf is either a concrete compiled-component
// edge id or None for a synthesized transition (quotient rules, input-
// enabling self-loops); a branch pairs the two sides' ids under the
// same shape as the location tree. Refinement failures and reachability
// paths report chains of these.
type ID struct {
	// Simple holds the concrete edge identifier for a leaf transition;
	// empty for a synthesized (None) leaf or for a Branch node.
	Simple string
	// IsLeaf is false for a branch combining two sub-transition ids.
	IsLeaf      bool
	Left, Right *ID
}

// Leaf returns a concrete-edge transition id; pass "" for a synthesized
// (None) transition.
func Leaf(edgeID string) *ID { return &ID{Simple: edgeID, IsLeaf: true} }

// Branch combines two sub-ids under a shared CTS node.
func Branch(left, right *ID) *ID { return &ID{IsLeaf: false, Left: left, Right: right} }

// String renders an id for diagnostics and path reporting.
func (id *ID) String() string {
	if id == nil {
		return "-"
	}
	if id.IsLeaf {
		if id.Simple == "" {
			return "*"
		}

		return id.Simple
	}

	return fmt.Sprintf("(%s, %s)", id.Left.String(), id.Right.String())
}

// PathString renders a sequence of transition ids the way reachability
// results report them.
func PathString(path []*ID) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = id.String()
	}

	return strings.Join(parts, " -> ")
}

// Transition is one outgoing edge of a CTS node at a specific location,
// for a specific action.
type Transition struct {
	ID      *ID
	Action  string
	Guard   zone.Federation
	Updates []Update
	Target  *location.Tree
}

// Apply runs the forward transition semantics of spec §4.4 against zone
// z currently occupying loc: intersect the guard, apply updates in
// order as resets, move to the target location, intersect the target's
// invariant, then extrapolate by maxBounds. Returns ok=false if the
// resulting zone is empty at any step, meaning the transition is not
// taken from z.
func (t *Transition) Apply(z zone.Federation, targetInvariant zone.Federation, maxBounds zone.Bounds) (zone.Federation, bool) {
	cur := z.Intersection(t.Guard)
	if cur.IsEmpty() {
		return nil, false
	}
	for _, u := range t.Updates {
		cur = cur.Update(u.Clock, u.Value)
	}
	if targetInvariant != nil {
		cur = cur.Intersection(targetInvariant)
	}
	if cur.IsEmpty() {
		return nil, false
	}
	cur = cur.ExtrapolateMaxBounds(maxBounds)

	return cur, !cur.IsEmpty()
}

// ApplyUpdatesAsFree runs the "guard-as-free" dual semantics used
// backwards by pruning and refinement: apply each update as a free
// projection (erasing constraints on the reset clock, rather than
// pinning it to a constant) instead of a forward reset, then intersect
// with the guard. Used when back-propagating a federation through this
// transition rather than advancing one through it.
func (t *Transition) ApplyUpdatesAsFree(z zone.Federation) zone.Federation {
	cur := z
	for _, u := range t.Updates {
		cur = cur.Free(u.Clock)
	}

	return cur.Intersection(t.Guard)
}
