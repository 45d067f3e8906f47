// Package consistency implements the two local-consistency variants of
// spec.md §4.6 — CheckLeast (consistency under input pruning; the
// variant precheck runs for every query, including the consistency
// query) and CheckFully (additionally every output must lead to a
// consistent successor; not called by any query path) — sharing one
// DFS walker with passed-list deduplication, the split grounded on the
// original engine's local_consistency module.
package consistency

import (
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/result"
	"github.com/ecdar/reveal/zone"
)

// Result is the outcome of a consistency check.
type Result struct {
	Ok      bool
	Failure *result.ConsistencyFailure
}

type mode int

const (
	least mode = iota
	fully
)

type walker struct {
	node       cts.Node
	systemName string
	mode       mode
	passed     map[string][]zone.Federation
}

// CheckLeast runs the pruning-tolerant variant: a state is consistent
// if all inputs lead to a consistent successor and either the zone can
// delay forever or some output leads to a consistent successor.
func CheckLeast(node cts.Node, systemName string) Result {
	return run(node, systemName, least)
}

// CheckFully runs the strict variant: every output must also lead to a
// consistent successor.
func CheckFully(node cts.Node, systemName string) Result {
	return run(node, systemName, fully)
}

func run(node cts.Node, systemName string, m mode) Result {
	init := node.InitialLocation()
	if init == nil {
		return Result{Ok: false, Failure: &result.ConsistencyFailure{
			Kind: result.NoInitialState, System: systemName,
		}}
	}
	w := &walker{node: node, systemName: systemName, mode: m, passed: make(map[string][]zone.Federation)}
	z := cts.Init(node, init)

	ok, _ := w.visit(init, z)
	if ok {
		return Result{Ok: true}
	}

	return Result{Ok: false, Failure: &result.ConsistencyFailure{
		Kind: result.InconsistentLoc, System: systemName, State: init.String(),
	}}
}

// visit reports whether loc (holding zone z) and everything reachable
// from it is consistent under w.mode.
func (w *walker) visit(loc *location.Tree, z zone.Federation) (bool, zone.Federation) {
	if loc.IsUniversal() {
		return true, z
	}
	if loc.IsInconsistent() {
		return false, z
	}

	bounds := w.node.LocalMaxBounds(loc)
	z = z.Up().Intersection(w.node.Invariant(loc)).ExtrapolateMaxBounds(bounds)

	key := loc.String()
	for _, seen := range w.passed[key] {
		if z.SubsetEq(seen) {
			return true, z
		}
	}
	w.passed[key] = append(w.passed[key], z)

	for _, a := range w.node.InputActions() {
		trs, err := w.node.NextTransitions(loc, a)
		if err != nil {
			continue
		}
		for _, tr := range trs {
			nextZ, ok := tr.Apply(z, w.node.Invariant(tr.Target), bounds)
			if !ok {
				continue
			}
			if consistent, _ := w.visit(tr.Target, nextZ); !consistent {
				return false, z
			}
		}
	}

	anyConsistentOutput := false
	allOutputsConsistent := true
	for _, a := range w.node.OutputActions() {
		trs, err := w.node.NextTransitions(loc, a)
		if err != nil {
			continue
		}
		for _, tr := range trs {
			nextZ, ok := tr.Apply(z, w.node.Invariant(tr.Target), bounds)
			if !ok {
				continue
			}
			consistent, _ := w.visit(tr.Target, nextZ)
			if consistent {
				anyConsistentOutput = true
			} else {
				allOutputsConsistent = false
			}
		}
	}

	canDelay := z.CanDelayIndefinitely()

	switch w.mode {
	case fully:
		return allOutputsConsistent && (canDelay || anyConsistentOutput), z
	default: // least
		return canDelay || anyConsistentOutput, z
	}
}
