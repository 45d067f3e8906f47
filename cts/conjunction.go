package cts

import (
	"fmt"

	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/result"
	"github.com/ecdar/reveal/transition"
	"github.com/ecdar/reveal/zone"
)

// Conjunction is the CTS node for `L && R`: both sides must agree on
// every shared action and advance together.
type Conjunction struct {
	Left, Right       Node
	dim               int
	rightOffset       int
	inputs, outputs   []string
}

var _ Node = (*Conjunction)(nil)

// NewConjunction builds L && R, failing with ErrActionsNotDisjoint if
// an input on one side names an output on the other (spec.md §4.3.1).
func NewConjunction(left, right Node) (*Conjunction, error) {
	if overlap := actionsOverlap(left.InputActions(), right.OutputActions()); len(overlap) > 0 {
		return nil, wrapErr("NewConjunction", fmt.Errorf("%w: %v", ErrActionsNotDisjoint, overlap))
	}
	if overlap := actionsOverlap(left.OutputActions(), right.InputActions()); len(overlap) > 0 {
		return nil, wrapErr("NewConjunction", fmt.Errorf("%w: %v", ErrActionsNotDisjoint, overlap))
	}

	jointDim := left.Dim() + right.Dim() - 1
	return &Conjunction{
		Left: left, Right: right, dim: jointDim, rightOffset: left.Dim() - 1,
		inputs:  actionUnion(left.InputActions(), right.InputActions()),
		outputs: actionUnion(left.OutputActions(), right.OutputActions()),
	}, nil
}

// ConjunctionRecipeError reports the action-disjointness precondition as a
// result.RecipeFailure, for callers that need the structured form
// rather than a plain Go error (e.g. a query layer mapping to
// protobuf).
func ConjunctionRecipeError(systemName string, left, right Node) *result.RecipeFailure {
	overlap := actionsOverlap(left.InputActions(), right.OutputActions())
	if len(overlap) == 0 {
		overlap = actionsOverlap(left.OutputActions(), right.InputActions())
	}

	return &result.RecipeFailure{NotDisjoint: &result.ActionPairFailure{
		Composition: systemName,
		A:           result.ActionSet{System: "L", Actions: left.InputActions()},
		B:           result.ActionSet{System: "R", Actions: overlap},
	}}
}

func (c *Conjunction) Dim() int               { return c.dim }
func (c *Conjunction) InputActions() []string  { return c.inputs }
func (c *Conjunction) OutputActions() []string { return c.outputs }

func (c *Conjunction) InitialLocation() *location.Tree {
	l, r := c.Left.InitialLocation(), c.Right.InitialLocation()
	if l == nil || r == nil {
		return nil
	}

	return location.Compose(l, r, location.OpConjunction)
}

func (c *Conjunction) AllLocations() []*location.Tree {
	var out []*location.Tree
	for _, l := range c.Left.AllLocations() {
		for _, r := range c.Right.AllLocations() {
			out = append(out, location.Compose(l, r, location.OpConjunction))
		}
	}

	return out
}

func (c *Conjunction) Invariant(loc *location.Tree) zone.Federation {
	if loc.IsUniversal() || loc.IsInconsistent() {
		return kernelOrPanic().New(c.dim)
	}
	lInv := embed(c.Left.Invariant(loc.Left), c.Left.Dim(), c.dim, 0, kernelOrPanic())
	rInv := embed(c.Right.Invariant(loc.Right), c.Right.Dim(), c.dim, c.rightOffset, kernelOrPanic())

	return lInv.Intersection(rInv)
}

func (c *Conjunction) LocalMaxBounds(loc *location.Tree) zone.Bounds {
	b := zone.NewBounds(c.dim)
	b.Add(embedBounds(c.Left.LocalMaxBounds(loc.Left), c.dim, 0))
	b.Add(embedBounds(c.Right.LocalMaxBounds(loc.Right), c.dim, c.rightOffset))

	return b
}

func (c *Conjunction) NextTransitions(loc *location.Tree, action string) ([]*transition.Transition, error) {
	inLeft := hasAction(c.Left.InputActions(), action) || hasAction(c.Left.OutputActions(), action)
	inRight := hasAction(c.Right.InputActions(), action) || hasAction(c.Right.OutputActions(), action)
	if !inLeft || !inRight {
		// an action that only one side (or neither side) declares has
		// no transitions; NewConjunction does not reject such an action,
		// it only checks for opposite-polarity overlap.
		return nil, nil
	}

	lts, err := c.Left.NextTransitions(loc.Left, action)
	if err != nil {
		return nil, err
	}
	rts, err := c.Right.NextTransitions(loc.Right, action)
	if err != nil {
		return nil, err
	}

	k := kernelOrPanic()
	var out []*transition.Transition
	for _, lt := range lts {
		for _, rt := range rts {
			guard := embed(lt.Guard, c.Left.Dim(), c.dim, 0, k).
				Intersection(embed(rt.Guard, c.Right.Dim(), c.dim, c.rightOffset, k))
			if guard.IsEmpty() {
				continue
			}
			out = append(out, &transition.Transition{
				ID:      transition.Branch(lt.ID, rt.ID),
				Action:  action,
				Guard:   guard,
				Updates: mergeUpdates(lt.Updates, rt.Updates, c.rightOffset),
				Target:  location.Compose(lt.Target, rt.Target, location.OpConjunction),
			})
		}
	}

	return out, nil
}

// mergeUpdates concatenates left's updates (already in joint indices,
// since leaf-level clock indices below rightOffset are untouched) with
// right's, re-indexing right's clock numbers into the joint space.
func mergeUpdates(left, right []transition.Update, rightOffset int) []transition.Update {
	out := make([]transition.Update, 0, len(left)+len(right))
	out = append(out, left...)
	for _, u := range right {
		idx := u.Clock
		if idx > 0 {
			idx = rightOffset + idx
		}
		out = append(out, transition.Update{Clock: idx, Value: u.Value})
	}

	return out
}
