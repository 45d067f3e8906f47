package cts

import (
	"fmt"

	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/result"
	"github.com/ecdar/reveal/transition"
	"github.com/ecdar/reveal/zone"
)

// Composition is the CTS node for `L || R`: shared actions synchronize,
// actions known only to one side let that side advance alone while the
// other's location is held fixed.
type Composition struct {
	Left, Right     Node
	dim             int
	rightOffset     int
	inputs, outputs []string
}

var _ Node = (*Composition)(nil)

// NewComposition builds L || R, failing with ErrOutputsOverlap if both
// sides declare the same output action (spec.md §4.3.1).
func NewComposition(left, right Node) (*Composition, error) {
	if overlap := actionsOverlap(left.OutputActions(), right.OutputActions()); len(overlap) > 0 {
		return nil, wrapErr("NewComposition", fmt.Errorf("%w: %v", ErrOutputsOverlap, overlap))
	}

	jointDim := left.Dim() + right.Dim() - 1
	outputs := actionUnion(left.OutputActions(), right.OutputActions())
	inputs := actionDiff(actionUnion(left.InputActions(), right.InputActions()), outputs)

	return &Composition{
		Left: left, Right: right, dim: jointDim, rightOffset: left.Dim() - 1,
		inputs: inputs, outputs: outputs,
	}, nil
}

// CompositionRecipeError reports the output-disjointness precondition
// as a structured result.RecipeFailure.
func CompositionRecipeError(systemName string, left, right Node) *result.RecipeFailure {
	overlap := actionsOverlap(left.OutputActions(), right.OutputActions())

	return &result.RecipeFailure{NotDisjoint: &result.ActionPairFailure{
		Composition: systemName,
		A:           result.ActionSet{System: "L", Actions: left.OutputActions()},
		B:           result.ActionSet{System: "R", Actions: overlap},
	}}
}

func (c *Composition) Dim() int               { return c.dim }
func (c *Composition) InputActions() []string  { return c.inputs }
func (c *Composition) OutputActions() []string { return c.outputs }

func (c *Composition) InitialLocation() *location.Tree {
	l, r := c.Left.InitialLocation(), c.Right.InitialLocation()
	if l == nil || r == nil {
		return nil
	}

	return location.Compose(l, r, location.OpComposition)
}

func (c *Composition) AllLocations() []*location.Tree {
	var out []*location.Tree
	for _, l := range c.Left.AllLocations() {
		for _, r := range c.Right.AllLocations() {
			out = append(out, location.Compose(l, r, location.OpComposition))
		}
	}

	return out
}

func (c *Composition) Invariant(loc *location.Tree) zone.Federation {
	if loc.IsUniversal() || loc.IsInconsistent() {
		return kernelOrPanic().New(c.dim)
	}
	lInv := embed(c.Left.Invariant(loc.Left), c.Left.Dim(), c.dim, 0, kernelOrPanic())
	rInv := embed(c.Right.Invariant(loc.Right), c.Right.Dim(), c.dim, c.rightOffset, kernelOrPanic())

	return lInv.Intersection(rInv)
}

func (c *Composition) LocalMaxBounds(loc *location.Tree) zone.Bounds {
	b := zone.NewBounds(c.dim)
	b.Add(embedBounds(c.Left.LocalMaxBounds(loc.Left), c.dim, 0))
	b.Add(embedBounds(c.Right.LocalMaxBounds(loc.Right), c.dim, c.rightOffset))

	return b
}

func (c *Composition) NextTransitions(loc *location.Tree, action string) ([]*transition.Transition, error) {
	leftHas := hasAction(c.Left.InputActions(), action) || hasAction(c.Left.OutputActions(), action)
	rightHas := hasAction(c.Right.InputActions(), action) || hasAction(c.Right.OutputActions(), action)
	k := kernelOrPanic()

	switch {
	case leftHas && rightHas:
		lts, err := c.Left.NextTransitions(loc.Left, action)
		if err != nil {
			return nil, err
		}
		rts, err := c.Right.NextTransitions(loc.Right, action)
		if err != nil {
			return nil, err
		}
		var out []*transition.Transition
		for _, lt := range lts {
			for _, rt := range rts {
				guard := embed(lt.Guard, c.Left.Dim(), c.dim, 0, k).
					Intersection(embed(rt.Guard, c.Right.Dim(), c.dim, c.rightOffset, k))
				if guard.IsEmpty() {
					continue
				}
				out = append(out, &transition.Transition{
					ID: transition.Branch(lt.ID, rt.ID), Action: action, Guard: guard,
					Updates: mergeUpdates(lt.Updates, rt.Updates, c.rightOffset),
					Target:  location.Compose(lt.Target, rt.Target, location.OpComposition),
				})
			}
		}

		return out, nil

	case leftHas:
		lts, err := c.Left.NextTransitions(loc.Left, action)
		if err != nil {
			return nil, err
		}
		rInv := embed(c.Right.Invariant(loc.Right), c.Right.Dim(), c.dim, c.rightOffset, k)
		var out []*transition.Transition
		for _, lt := range lts {
			guard := embed(lt.Guard, c.Left.Dim(), c.dim, 0, k).Intersection(rInv)
			if guard.IsEmpty() {
				continue
			}
			out = append(out, &transition.Transition{
				ID: transition.Branch(lt.ID, transition.Leaf("")), Action: action, Guard: guard,
				Updates: mergeUpdates(lt.Updates, nil, c.rightOffset),
				Target:  location.Compose(lt.Target, loc.Right, location.OpComposition),
			})
		}

		return out, nil

	case rightHas:
		rts, err := c.Right.NextTransitions(loc.Right, action)
		if err != nil {
			return nil, err
		}
		lInv := embed(c.Left.Invariant(loc.Left), c.Left.Dim(), c.dim, 0, k)
		var out []*transition.Transition
		for _, rt := range rts {
			guard := embed(rt.Guard, c.Right.Dim(), c.dim, c.rightOffset, k).Intersection(lInv)
			if guard.IsEmpty() {
				continue
			}
			out = append(out, &transition.Transition{
				ID: transition.Branch(transition.Leaf(""), rt.ID), Action: action, Guard: guard,
				Updates: mergeUpdates(nil, rt.Updates, c.rightOffset),
				Target:  location.Compose(loc.Left, rt.Target, location.OpComposition),
			})
		}

		return out, nil

	default:
		return nil, nil
	}
}
