// Package refine decides L ⊑ R by on-the-fly zone-pair exploration per
// spec.md §4.7: a waiting stack and a passed list of state pairs keyed
// by (loc_L, loc_R), each popped pair checked action-by-action for
// unmatched or delay-cutting behavior before advancing by delay.
package refine

import (
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/precheck"
	"github.com/ecdar/reveal/result"
	"github.com/ecdar/reveal/zone"
)

// pair is one entry of the waiting/passed lists: a state pair over the
// joint dimension of L and R, L's clocks in the low range and R's in
// the high range (spec.md §3.5).
type pair struct {
	left, right *location.Tree
	z           zone.Federation
}

// Check decides whether left ⊑ right, returning a positive QueryResult
// or the first RefinementFailure witnessed (including precondition
// failures, checked first per spec.md §4.7).
func Check(left, right cts.Node, leftName, rightName string) result.QueryResult {
	if fail := checkPreconditions(left, right, leftName, rightName); fail != nil {
		return result.FromRefinement(result.RefinementFailure{Kind: result.PrecondViolated, Precondition: fail})
	}

	dim := left.Dim() + right.Dim() - 1
	rightOffset := left.Dim() - 1
	k := cts.Kernel()

	initL, initR := left.InitialLocation(), right.InitialLocation()
	z0 := k.Init(dim).
		Intersection(embedInv(left.Invariant(initL), left.Dim(), dim, 0, k)).
		Intersection(embedInv(right.Invariant(initR), right.Dim(), dim, rightOffset, k))

	passed := make(map[string][]zone.Federation)
	waiting := []pair{{left: initL, right: initR, z: z0}}

	for len(waiting) > 0 {
		n := len(waiting) - 1
		cur := waiting[n]
		waiting = waiting[:n]

		key := cur.left.String() + "|" + cur.right.String()
		if subsumed(passed[key], cur.z) {
			continue
		}
		passed[key] = append(passed[key], cur.z)

		for _, a := range left.OutputActions() {
			fail, nextPairs := stepAction(left, right, rightOffset, dim, cur, a, leftName, rightName, k)
			if fail != nil {
				return result.FromRefinement(*fail)
			}
			waiting = append(waiting, nextPairs...)
		}
		for _, a := range left.InputActions() {
			fail, nextPairs := stepAction(left, right, rightOffset, dim, cur, a, leftName, rightName, k)
			if fail != nil {
				return result.FromRefinement(*fail)
			}
			waiting = append(waiting, nextPairs...)
		}

		// Advance by delay: both sides elapse together, intersected
		// with the joint invariant, then extrapolated.
		jointBounds := zone.NewBounds(dim)
		jointBounds.Add(cts.EmbedBounds(left.LocalMaxBounds(cur.left), dim, 0))
		jointBounds.Add(cts.EmbedBounds(right.LocalMaxBounds(cur.right), dim, rightOffset))

		delayed := cur.z.Up().
			Intersection(embedInv(left.Invariant(cur.left), left.Dim(), dim, 0, k)).
			Intersection(embedInv(right.Invariant(cur.right), right.Dim(), dim, rightOffset, k)).
			ExtrapolateMaxBounds(jointBounds)
		if !delayed.IsEmpty() && !subsumed(passed[key], delayed) {
			waiting = append(waiting, pair{left: cur.left, right: cur.right, z: delayed})
		}
	}

	return result.Success()
}

// stepAction checks one action at one popped pair: collects L's
// enabled transitions restricted to the current zone and R's matching
// transitions, reporting CannotMatch or CutsDelaySolutions, otherwise
// returning the successor pairs to enqueue.
func stepAction(left, right cts.Node, rightOffset, dim int, cur pair, action, leftName, rightName string, k zone.Kernel) (*result.RefinementFailure, []pair) {
	lts, _ := left.NextTransitions(cur.left, action)
	if len(lts) == 0 {
		return nil, nil
	}
	rts, _ := right.NextTransitions(cur.right, action)

	var out []pair
	for _, lt := range lts {
		lGuard := cts.Embed(lt.Guard, left.Dim(), dim, 0, k).Intersection(cur.z)
		if lGuard.IsEmpty() {
			continue
		}
		if len(rts) == 0 {
			return &result.RefinementFailure{Kind: result.CannotMatch, Action: action, State: cur.left.String() + "/" + cur.right.String()}, nil
		}

		var matched zone.Federation = k.Empty(dim)
		for _, rt := range rts {
			rGuard := cts.Embed(rt.Guard, right.Dim(), dim, rightOffset, k).Intersection(cur.z)
			combined := lGuard.Intersection(rGuard)
			if combined.IsEmpty() {
				continue
			}
			matched = matched.Union(combined)
			out = append(out, pair{left: lt.Target, right: rt.Target, z: combined})
		}

		if matched.IsEmpty() {
			return &result.RefinementFailure{Kind: result.CannotMatch, Action: action, State: cur.left.String() + "/" + cur.right.String()}, nil
		}
		if !lGuard.SubsetEq(matched) {
			return &result.RefinementFailure{Kind: result.CutsDelaySolutions, Action: action, State: cur.left.String() + "/" + cur.right.String()}, nil
		}
	}

	return nil, out
}

func subsumed(seen []zone.Federation, z zone.Federation) bool {
	for _, s := range seen {
		if z.SubsetEq(s) {
			return true
		}
	}

	return false
}

func embedInv(fed zone.Federation, childDim, jointDim, offset int, k zone.Kernel) zone.Federation {
	return cts.Embed(fed, childDim, jointDim, offset, k)
}

func checkPreconditions(left, right cts.Node, leftName, rightName string) *result.RefinementPrecondition {
	leftPre := precheck.Run(left, leftName)
	if !leftPre.Ok {
		return &result.RefinementPrecondition{NotDeterministic: leftPre.Determinism, NotConsistent: leftPre.Consistency}
	}
	rightPre := precheck.Run(right, rightName)
	if !rightPre.Ok {
		return &result.RefinementPrecondition{NotDeterministic: rightPre.Determinism, NotConsistent: rightPre.Consistency}
	}
	if !subsetOf(left.InputActions(), right.InputActions()) || !subsetOf(left.OutputActions(), right.OutputActions()) {
		return &result.RefinementPrecondition{ActionMismatch: &result.ActionPairFailure{
			Composition: "refinement", A: result.ActionSet{System: leftName, Actions: left.InputActions()},
			B: result.ActionSet{System: rightName, Actions: right.InputActions()},
		}}
	}
	if left.InitialLocation() == nil || right.InitialLocation() == nil {
		return &result.RefinementPrecondition{NoInitialState: true}
	}

	return nil
}

func subsetOf(a, b []string) bool {
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}
	for _, s := range a {
		if _, ok := inB[s]; !ok {
			return false
		}
	}

	return true
}
