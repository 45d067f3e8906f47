// Package determinism implements the CTS determinism check of
// spec.md §4.5: a depth-first walk from the initial state with a passed
// list keyed by location, where a zone already covered by a stored
// federation for that location is skipped, verifying that no two
// enabled transitions on the same action ever share a valuation.
package determinism

import (
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/result"
	"github.com/ecdar/reveal/zone"
)

// Result is the outcome of a determinism check: either Ok, or the first
// offending state/action recorded as Failure.
type Result struct {
	Ok      bool
	Failure *result.DeterminismFailure
}

// walker carries the passed list and traversal state for one
// determinism check: a single recursive visit method over mutable
// fields, one allocation per check rather than per visited state.
type walker struct {
	node       cts.Node
	systemName string
	passed     map[string][]zone.Federation
}

// Check walks every reachable state of node depth-first and reports the
// first determinism violation, if any.
func Check(node cts.Node, systemName string) Result {
	w := &walker{node: node, systemName: systemName, passed: make(map[string][]zone.Federation)}
	init := node.InitialLocation()
	if init == nil {
		return Result{Ok: true} // no initial state is a consistency concern, not a determinism one
	}
	initZ := cts.Init(node, init)

	return w.visit(init, initZ)
}

func (w *walker) visit(loc *location.Tree, z zone.Federation) Result {
	key := locKey(loc)
	for _, seen := range w.passed[key] {
		if z.SubsetEq(seen) {
			return Result{Ok: true}
		}
	}
	w.passed[key] = append(w.passed[key], z)

	for _, action := range append(append([]string(nil), w.node.InputActions()...), w.node.OutputActions()...) {
		trs, err := w.node.NextTransitions(loc, action)
		if err != nil || len(trs) == 0 {
			continue
		}
		bounds := w.node.LocalMaxBounds(loc)

		var accumulated zone.Federation
		for _, tr := range trs {
			allowed := tr.Guard.Intersection(z)
			if allowed.IsEmpty() {
				continue
			}
			if accumulated != nil && accumulated.HasIntersection(allowed) {
				return Result{Ok: false, Failure: &result.DeterminismFailure{
					System: w.systemName, Action: action, State: locKey(loc),
				}}
			}
			if accumulated == nil {
				accumulated = allowed
			} else {
				accumulated = accumulated.Union(allowed)
			}

			nextZ, ok := tr.Apply(z, w.node.Invariant(tr.Target), bounds)
			if !ok {
				continue
			}
			if res := w.visit(tr.Target, nextZ); !res.Ok {
				return res
			}
		}
	}

	return Result{Ok: true}
}

func locKey(loc *location.Tree) string {
	return loc.String()
}
