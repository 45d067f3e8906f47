package cts

import (
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/transition"
	"github.com/ecdar/reveal/zone"
)

// Quotient is the CTS node for `T \ S`: the raw, unpruned quotient of
// spec.md §4.3.4. Its transitions route through a synthesized
// Universal location for outputs of S that T cannot match, and through
// a synthesized Inconsistent location (guarded by a fresh clock x_new
// the node allocates as the top joint index) whenever S witnesses an
// inconsistency T cannot absorb. package quotient performs the
// subsequent pruning pass that removes the regions inevitably leading
// to Inconsistent, turning this raw node into a genuine compiled
// component.
type Quotient struct {
	T, S        Node
	dim         int
	sOffset     int
	xNew        int
	inputs      []string
	outputs     []string
	newAction   string
}

var _ Node = (*Quotient)(nil)

// NewQuotient builds T \ S. newAction names the freshly minted input
// action spec.md §4.3.1 requires (callers pick a name guaranteed not to
// collide with any action already in T or S, e.g. by namespacing on the
// composition label).
func NewQuotient(t, s Node, newAction string) *Quotient {
	jointDim := t.Dim() + s.Dim()
	outputs := actionUnion(actionDiff(t.OutputActions(), s.OutputActions()), actionDiff(s.InputActions(), t.InputActions()))
	inputs := actionUnion(append(actionUnion(t.InputActions(), s.OutputActions()), newAction), nil)

	return &Quotient{
		T: t, S: s, dim: jointDim, sOffset: t.Dim() - 1, xNew: jointDim - 1,
		inputs: inputs, outputs: outputs, newAction: newAction,
	}
}

func (q *Quotient) Dim() int               { return q.dim }
func (q *Quotient) InputActions() []string  { return q.inputs }
func (q *Quotient) OutputActions() []string { return q.outputs }

func (q *Quotient) InitialLocation() *location.Tree {
	t, s := q.T.InitialLocation(), q.S.InitialLocation()
	if t == nil || s == nil {
		return nil
	}

	return location.Compose(t, s, location.OpQuotient)
}

func (q *Quotient) AllLocations() []*location.Tree {
	out := []*location.Tree{location.Universal(), location.Inconsistent()}
	for _, t := range q.T.AllLocations() {
		for _, s := range q.S.AllLocations() {
			out = append(out, location.Compose(t, s, location.OpQuotient))
		}
	}

	return out
}

// xNewLeZero is the Inconsistent location's defining invariant: the
// quotient's extra clock never exceeds 0, so time cannot progress once
// the inconsistent location is entered.
func (q *Quotient) xNewLeZero(k zone.Kernel) zone.Federation {
	return k.New(q.dim).Constrain(q.xNew, 0, zone.ZeroBound)
}

func (q *Quotient) Invariant(loc *location.Tree) zone.Federation {
	k := kernelOrPanic()
	if loc.IsUniversal() {
		return k.New(q.dim)
	}
	if loc.IsInconsistent() {
		return q.xNewLeZero(k)
	}

	// Per spec.md §4.2: Quotient's state invariant uses only the left
	// (T) child's invariant; S's invariant influences transition guards,
	// not the state invariant.
	return embed(q.T.Invariant(loc.Left), q.T.Dim(), q.dim, 0, k)
}

func (q *Quotient) LocalMaxBounds(loc *location.Tree) zone.Bounds {
	b := zone.NewBounds(q.dim)
	if loc.IsUniversal() || loc.IsInconsistent() {
		return b
	}
	b.Add(embedBounds(q.T.LocalMaxBounds(loc.Left), q.dim, 0))
	b.Add(embedBounds(q.S.LocalMaxBounds(loc.Right), q.dim, q.sOffset))

	return b
}

func (q *Quotient) NextTransitions(loc *location.Tree, action string) ([]*transition.Transition, error) {
	k := kernelOrPanic()

	if loc.IsUniversal() {
		// Rule 7a: Universal self-loops on every action with guard true.
		return []*transition.Transition{{
			ID: transition.Leaf(""), Action: action, Guard: k.New(q.dim), Target: location.Universal(),
		}}, nil
	}
	if loc.IsInconsistent() {
		// Rule 7b: Inconsistent consumes every input as a self-loop; no
		// outputs are enabled.
		if hasAction(q.inputs, action) {
			return []*transition.Transition{{
				ID: transition.Leaf(""), Action: action, Guard: q.xNewLeZero(k), Target: location.Inconsistent(),
			}}, nil
		}

		return nil, nil
	}

	if action == q.newAction {
		// Rule 6: the synthesized "new" input witnesses T's invariant
		// being escaped while S's still holds; routes to Inconsistent.
		tInv := embed(q.T.Invariant(loc.Left), q.T.Dim(), q.dim, 0, k)
		sInv := embed(q.S.Invariant(loc.Right), q.S.Dim(), q.dim, q.sOffset, k)
		guard := tInv.Inverse().Intersection(sInv)
		if guard.IsEmpty() {
			return nil, nil
		}

		return []*transition.Transition{{
			ID: transition.Leaf(""), Action: action, Guard: guard,
			Updates: []transition.Update{{Clock: q.xNew, Value: 0}},
			Target:  location.Inconsistent(),
		}}, nil
	}

	tHas := hasAction(q.T.InputActions(), action) || hasAction(q.T.OutputActions(), action)
	sHas := hasAction(q.S.InputActions(), action) || hasAction(q.S.OutputActions(), action)
	sIsOutput := hasAction(q.S.OutputActions(), action)
	tIsOutput := hasAction(q.T.OutputActions(), action)

	// tts/sts mirror the original engine's next_transitions_if_available:
	// fetched unconditionally (every CTS node answers an action outside
	// its own alphabet with an empty, error-free slice), since the
	// Universal-escape push below needs sts regardless of which of
	// tHas/sHas holds.
	tts, err := q.T.NextTransitions(loc.Left, action)
	if err != nil {
		return nil, err
	}
	sts, err := q.S.NextTransitions(loc.Right, action)
	if err != nil {
		return nil, err
	}

	var out []*transition.Transition

	switch {
	case tHas && sHas:
		// Rule 1: both sides synchronized.
		for _, tt := range tts {
			for _, st := range sts {
				guard := embed(tt.Guard, q.T.Dim(), q.dim, 0, k).
					Intersection(embed(st.Guard, q.S.Dim(), q.dim, q.sOffset, k))
				if guard.IsEmpty() {
					continue
				}
				out = append(out, &transition.Transition{
					ID: transition.Branch(tt.ID, st.ID), Action: action, Guard: guard,
					Updates: mergeUpdates(tt.Updates, st.Updates, q.sOffset),
					Target:  location.Compose(tt.Target, st.Target, location.OpQuotient),
				})
			}
		}

		// Rule 5: inconsistency witness when this is an output both
		// sides declare: wherever S can fire but no T transition's
		// guard covers the same valuation, route to Inconsistent.
		if tIsOutput && sIsOutput {
			var tGuardUnion zone.Federation = k.Empty(q.dim)
			for _, tt := range tts {
				tGuardUnion = tGuardUnion.Union(embed(tt.Guard, q.T.Dim(), q.dim, 0, k))
			}
			for _, st := range sts {
				sg := embed(st.Guard, q.S.Dim(), q.dim, q.sOffset, k)
				witness := sg.Subtraction(tGuardUnion)
				if witness.IsEmpty() {
					continue
				}
				out = append(out, &transition.Transition{
					ID: transition.Leaf(""), Action: action, Guard: witness,
					Updates: []transition.Update{{Clock: q.xNew, Value: 0}},
					Target:  location.Inconsistent(),
				})
			}
		}

	case sHas:
		// Rule 2: only S has this action; T's location is unchanged.
		tInv := embed(q.T.Invariant(loc.Left), q.T.Dim(), q.dim, 0, k)
		for _, st := range sts {
			guard := embed(st.Guard, q.S.Dim(), q.dim, q.sOffset, k).Intersection(tInv)
			if guard.IsEmpty() {
				continue
			}
			out = append(out, &transition.Transition{
				ID: transition.Branch(transition.Leaf(""), st.ID), Action: action, Guard: guard,
				Updates: mergeUpdates(nil, st.Updates, q.sOffset),
				Target:  location.Compose(loc.Left, st.Target, location.OpQuotient),
			})
		}

	case tHas:
		// Rule 3: only T has this action; S's location is unchanged, the
		// guard confined to S's invariant there.
		sInv := embed(q.S.Invariant(loc.Right), q.S.Dim(), q.dim, q.sOffset, k)
		for _, tt := range tts {
			guard := embed(tt.Guard, q.T.Dim(), q.dim, 0, k).Intersection(sInv)
			if guard.IsEmpty() {
				continue
			}
			out = append(out, &transition.Transition{
				ID: transition.Branch(tt.ID, transition.Leaf("")), Action: action, Guard: guard,
				Updates: mergeUpdates(tt.Updates, nil, q.sOffset),
				Target:  location.Compose(tt.Target, loc.Right, location.OpQuotient),
			})
		}
	}

	// Rule 4 (original_source/src/TransitionSystems/
	// quotient.rs:266-294): the Universal escape is unconditional for
	// every action reaching a normal quotient location, regardless of
	// whether T or S individually has it — only the guard formula
	// depends on whether action is one of S's own outputs. Gating this
	// on tHas/sHas (as Rule 2/3 above do for their own transitions) is
	// exactly the bug: it silently disables the action outside S's
	// invariant/reach instead of routing it to Universal.
	sGuardUnion := k.Empty(q.dim)
	for _, st := range sts {
		sGuardUnion = sGuardUnion.Union(embed(st.Guard, q.S.Dim(), q.dim, q.sOffset, k))
	}
	sInv := embed(q.S.Invariant(loc.Right), q.S.Dim(), q.dim, q.sOffset, k)

	escape := sInv.Inverse()
	if sIsOutput {
		escape = escape.Union(sGuardUnion.Inverse())
	}
	if !escape.IsEmpty() {
		out = append(out, &transition.Transition{
			ID: transition.Leaf(""), Action: action, Guard: escape, Target: location.Universal(),
		})
	}

	return out, nil
}
