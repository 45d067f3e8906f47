// Package quotient builds the synthesized component for `T \ S`: it
// assembles the raw cts.Quotient node's reachable state space into a
// concrete component.CompiledComponent, then runs the backward pruning
// fixpoint of spec.md §4.9 that removes regions inevitably leading to
// the Inconsistent location, grounded on the original engine's quotient
// and pruning modules.
package quotient

import (
	"fmt"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/declaration"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/precheck"
	"github.com/ecdar/reveal/result"
	"github.com/ecdar/reveal/transition"
	"github.com/ecdar/reveal/zone"
)

// rawEdge is one transition discovered during state-space enumeration,
// kept alongside its source before being folded into component.Edge
// maps (component.Edge has no source field of its own).
type rawEdge struct {
	src    location.ID
	action string
	edge   component.Edge
}

// Build constructs T \ S and prunes it, returning a compiled component
// ready to be used as a CTS leaf like any other component, or a
// QueryResult failure if a precondition is violated or the quotient is
// uninhabitable.
func Build(t, s cts.Node, tName, sName, newAction string) (*component.CompiledComponent, result.QueryResult) {
	tPre := precheck.Run(t, tName)
	if !tPre.Ok {
		return nil, result.FromRecipe(result.RecipeFailure{Inconsistent: &result.InconsistentComposition{
			Composition: tName + " \\ " + sName, Cause: preToFailure(tPre, tName),
		}})
	}
	sPre := precheck.Run(s, sName)
	if !sPre.Ok {
		return nil, result.FromRecipe(result.RecipeFailure{Inconsistent: &result.InconsistentComposition{
			Composition: tName + " \\ " + sName, Cause: preToFailure(sPre, sName),
		}})
	}

	q := cts.NewQuotient(t, s, newAction)
	k := cts.Kernel()

	locs, order, edges, initID := enumerate(q)

	inconsistentParts := seedInconsistentParts(locs)
	propagate(locs, edges, inconsistentParts, k)

	name := tName + "_minus_" + sName

	if init, ok := locs[initID]; ok {
		if ip, ok := inconsistentParts[initID]; ok && init.Invariant != nil && init.Invariant.SubsetEq(ip) {
			return nil, result.FromConsistency(result.ConsistencyFailure{
				Kind: result.InconsistentLoc, System: name, State: string(initID),
			})
		}
	}

	edges = prune(locs, edges, inconsistentParts, k)

	compiledEdges := make(map[location.ID]map[string][]component.Edge)
	for _, re := range edges {
		if compiledEdges[re.src] == nil {
			compiledEdges[re.src] = make(map[string][]component.Edge)
		}
		compiledEdges[re.src][re.action] = append(compiledEdges[re.src][re.action], re.edge)
	}

	decl := declaration.New()
	for i := 1; i < q.Dim(); i++ {
		_ = decl.AddClock(fmt.Sprintf("x%d", i), i)
	}
	universal := location.Location{ID: location.ID(name + "::__universal__"), Kind: location.KindUniversal, Invariant: k.New(q.Dim())}

	cc := component.Assembled(name, decl, locs, order, initID, compiledEdges, universal, k)

	return cc, result.Success()
}

func preToFailure(p precheck.Result, name string) result.ConsistencyFailure {
	if p.Determinism != nil {
		return result.ConsistencyFailure{Kind: result.NotDeterministic, System: name, Det: p.Determinism}
	}
	if p.Consistency != nil {
		return *p.Consistency
	}

	return result.ConsistencyFailure{Kind: result.NoInitialState, System: name}
}

// enumerate walks every location reachable from q's initial state,
// collecting a flat location.ID per distinct tree shape (keyed by the
// tree's structural string) and every compiled component.Edge between
// them.
func enumerate(q *cts.Quotient) (map[location.ID]location.Location, []location.ID, []rawEdge, location.ID) {
	locs := make(map[location.ID]location.Location)
	var order []location.ID
	var edges []rawEdge

	init := q.InitialLocation()
	if init == nil {
		return locs, order, edges, ""
	}
	initID := location.ID(init.String())

	visited := map[string]bool{}
	queue := []*location.Tree{init}
	visited[init.String()] = true

	actions := append(append([]string(nil), q.InputActions()...), q.OutputActions()...)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		id := location.ID(cur.String())

		kind := location.KindNormal
		if cur.Equals(init) {
			kind = location.KindInitial
		}
		if cur.IsInconsistent() {
			kind = location.KindInconsistent
		}
		if cur.IsUniversal() {
			kind = location.KindUniversal
		}
		locs[id] = location.Location{ID: id, Kind: kind, Invariant: q.Invariant(cur)}
		order = append(order, id)

		for _, a := range actions {
			trs, err := q.NextTransitions(cur, a)
			if err != nil {
				continue
			}
			for _, tr := range trs {
				targetID := location.ID(tr.Target.String())
				kindEdge := component.Output
				for _, in := range q.InputActions() {
					if in == a {
						kindEdge = component.Input

						break
					}
				}
				edges = append(edges, rawEdge{src: id, action: a, edge: component.Edge{
					ID: tr.ID.String(), Action: a, Kind: kindEdge, Guard: tr.Guard,
					Updates: tr.Updates, Target: targetID,
				}})

				if !visited[tr.Target.String()] {
					visited[tr.Target.String()] = true
					queue = append(queue, tr.Target)
				}
			}
		}
	}

	return locs, order, edges, initID
}

// seedInconsistentParts initializes the fixpoint with the Inconsistent
// location's own defining federation (x_new <= 0), the one location
// that is immediately and entirely inconsistent by construction.
func seedInconsistentParts(locs map[location.ID]location.Location) map[location.ID]zone.Federation {
	parts := make(map[location.ID]zone.Federation)
	for id, l := range locs {
		if l.Kind == location.KindInconsistent {
			parts[id] = l.Invariant
		}
	}

	return parts
}

// propagate runs the backward work-list fixpoint of spec.md §4.9 step 2:
// for every edge into a location with a known inconsistent part, the
// predecessor's contribution is the part reachable via that edge (guard
// applied backwards as a free update) minus whatever the source's own
// outputs can still rescue it from.
func propagate(locs map[location.ID]location.Location, edges []rawEdge, parts map[location.ID]zone.Federation, k zone.Kernel) {
	byTarget := make(map[location.ID][]rawEdge)
	outputsBySrc := make(map[location.ID][]rawEdge)
	for _, e := range edges {
		byTarget[e.edge.Target] = append(byTarget[e.edge.Target], e)
		if e.edge.Kind == component.Output {
			outputsBySrc[e.src] = append(outputsBySrc[e.src], e)
		}
	}

	worklist := make([]location.ID, 0, len(parts))
	for id := range parts {
		worklist = append(worklist, id)
	}

	for len(worklist) > 0 {
		target := worklist[0]
		worklist = worklist[1:]
		I := parts[target]

		for _, in := range byTarget[target] {
			src := in.src
			t := &transition.Transition{Guard: in.edge.Guard, Updates: in.edge.Updates}
			back := t.ApplyUpdatesAsFree(I)
			if srcLoc, ok := locs[src]; ok && srcLoc.Invariant != nil {
				back = back.Intersection(srcLoc.Invariant)
			}
			if back.IsEmpty() {
				continue
			}

			avoid := rescuableBy(outputsBySrc[src], target, parts, k)
			residue := back.Subtraction(avoid)
			if residue.IsEmpty() {
				continue
			}

			prior, had := parts[src]
			if had && residue.SubsetEq(prior) {
				continue
			}
			if had {
				parts[src] = prior.Union(residue)
			} else {
				parts[src] = residue
			}
			worklist = append(worklist, src)
		}
	}
}

// rescuableBy returns, delay-closed downward, the region from which src
// has some output NOT leading into target's inconsistent part — the
// "avoid" subtraction of spec.md §4.9 step 2.
func rescuableBy(outs []rawEdge, excludeTarget location.ID, parts map[location.ID]zone.Federation, k zone.Kernel) zone.Federation {
	if len(outs) == 0 {
		return k.Empty(0)
	}
	dim := outs[0].edge.Guard.Dim()
	safe := k.Empty(dim)
	for _, o := range outs {
		if ip, bad := parts[o.edge.Target]; bad && o.edge.Target == excludeTarget {
			safe = safe.Union(o.edge.Guard.Subtraction(ip))

			continue
		}
		safe = safe.Union(o.edge.Guard)
	}

	return safe.Down()
}

// prune applies spec.md §4.9 step 3: subtract each location's final
// inconsistent part from its invariant, and subtract from each edge's
// guard any region whose fire-successor lands inside the target's
// inconsistent part; edges left with an empty guard are dropped.
func prune(locs map[location.ID]location.Location, edges []rawEdge, parts map[location.ID]zone.Federation, k zone.Kernel) []rawEdge {
	for id, l := range locs {
		if ip, ok := parts[id]; ok && l.Invariant != nil {
			l.Invariant = l.Invariant.Subtraction(ip)
			locs[id] = l
		}
	}

	kept := make([]rawEdge, 0, len(edges))
	for _, e := range edges {
		if ip, ok := parts[e.edge.Target]; ok {
			t := &transition.Transition{Guard: e.edge.Guard, Updates: e.edge.Updates}
			preimage := t.ApplyUpdatesAsFree(ip)
			e.edge.Guard = e.edge.Guard.Subtraction(preimage)
		}
		if !e.edge.Guard.IsEmpty() {
			kept = append(kept, e)
		}
	}

	return kept
}
