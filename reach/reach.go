// Package reach implements reachability (spec.md §4.8): a BFS over
// symbolic successors with a visited table keyed by location, pruning a
// candidate successor whenever its federation is already covered by one
// on file for that location — the subset-pruning rule grounded in the
// original engine's reachability module — and reconstructing the
// witness path through back-pointers once the end pattern partial-
// matches a popped state whose zone intersects the end federation.
//
// Besides each discrete transition's successor, every popped state also
// enqueues a same-location "let time pass" successor (current zone's
// delay closure intersected with the location's invariant), mirroring
// refine's step 4 (spec.md §4.7): a state is a region occupied over an
// interval, not an instant, so whether an outgoing guard or the end
// pattern's zone constraint can ever be satisfied depends on letting
// the clocks grow before re-checking either one.
package reach

import (
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/result"
	"github.com/ecdar/reveal/transition"
	"github.com/ecdar/reveal/zone"
)

// EndState names the target pattern: a location tree that may contain
// AnyLocation wildcards, plus an optional zone constraint (nil means
// "any valuation").
type EndState struct {
	Loc *location.Tree
	Zone zone.Federation
}

// entry is one visited-table record, carrying the back-pointer chain
// needed to reconstruct the witness path once a search succeeds.
type entry struct {
	loc    *location.Tree
	z      zone.Federation
	via    *transition.ID
	parent *entry
}

// Find runs BFS from the given state (from, fromZone) toward end, using
// a local slice as the queue rather than recursion, so long paths never
// grow the Go call stack.
func Find(node cts.Node, from *location.Tree, fromZone zone.Federation, end EndState) result.QueryResult {
	if from.IsSpecial() && !from.Equals(end.Loc) {
		return result.FromPath(result.PathFailure{Unreachable: true})
	}

	queue := []*entry{{loc: from, z: fromZone}}
	visited := map[string][]zone.Federation{from.String(): {fromZone}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.loc.ComparePartial(end.Loc) {
			endZone := end.Zone
			if endZone == nil {
				endZone = cur.z
			}
			if cur.z.HasIntersection(endZone) {
				return result.SuccessPath(reconstructPath(cur))
			}
		}

		bounds := node.LocalMaxBounds(cur.loc)

		delayed := cur.z.Up().Intersection(node.Invariant(cur.loc)).ExtrapolateMaxBounds(bounds)
		if !delayed.IsEmpty() {
			key := cur.loc.String()
			if !coveredBy(visited[key], delayed) {
				visited[key] = dropCoveredBy(visited[key], delayed)
				visited[key] = append(visited[key], delayed)
				queue = append(queue, &entry{loc: cur.loc, z: delayed, via: cur.via, parent: cur.parent})
			}
		}

		actions := append(append([]string(nil), node.InputActions()...), node.OutputActions()...)
		for _, a := range actions {
			trs, err := node.NextTransitions(cur.loc, a)
			if err != nil {
				continue
			}
			for _, tr := range trs {
				nextZ, ok := tr.Apply(cur.z, node.Invariant(tr.Target), bounds)
				if !ok {
					continue
				}

				key := tr.Target.String()
				if coveredBy(visited[key], nextZ) {
					continue
				}
				visited[key] = dropCoveredBy(visited[key], nextZ)
				visited[key] = append(visited[key], nextZ)

				queue = append(queue, &entry{loc: tr.Target, z: nextZ, via: tr.ID, parent: cur})
			}
		}
	}

	return result.FromPath(result.PathFailure{Unreachable: true})
}

// coveredBy reports whether some recorded federation already subsumes z.
func coveredBy(recorded []zone.Federation, z zone.Federation) bool {
	for _, r := range recorded {
		if z.SubsetEq(r) {
			return true
		}
	}

	return false
}

// dropCoveredBy removes any recorded federation that z itself subsumes,
// keeping the visited table reduced as the search widens a location's
// known reachable region.
func dropCoveredBy(recorded []zone.Federation, z zone.Federation) []zone.Federation {
	out := recorded[:0]
	for _, r := range recorded {
		if !r.SubsetEq(z) {
			out = append(out, r)
		}
	}

	return out
}

func reconstructPath(e *entry) []string {
	var rev []string
	for n := e; n != nil && n.via != nil; n = n.parent {
		rev = append(rev, n.via.String())
	}
	out := make([]string, len(rev))
	for i, s := range rev {
		out[len(rev)-1-i] = s
	}

	return out
}
