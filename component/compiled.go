package component

import (
	"sort"

	"github.com/ecdar/reveal/declaration"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/transition"
	"github.com/ecdar/reveal/zone"
)

// Edge is a compiled transition local to one component: its guard is
// already a federation over the component's own clock dimension and its
// target names a location id, not yet wrapped in a location.Tree — the
// owning CTS leaf wraps it once the component's position in the tree is
// known.
type Edge struct {
	ID      string
	Action  string
	Kind    EdgeKind
	Guard   zone.Federation
	Updates []transition.Update
	Target  location.ID
}

// CompiledComponent is a component's edges, locations, and action sets,
// compiled once per query and read-only thereafter (spec.md §3.6): every
// accessor below is safe for concurrent use by the CTS algorithms.
type CompiledComponent struct {
	name    string
	decl    *declaration.Declaration
	locs    map[location.ID]location.Location
	initial location.ID
	order   []location.ID // declaration order, for deterministic AllLocations

	// edges indexed by (location, action) for O(1) next_transitions.
	edges map[location.ID]map[string][]Edge

	inputs  []string
	outputs []string

	universal location.Location
	kernel    zone.Kernel
}

// Assembled builds a CompiledComponent directly from already-compiled
// pieces, bypassing the guard-expression compiler: used by the quotient
// package, whose synthesized edges already carry zone.Federation guards
// computed by composing two existing CTS nodes rather than parsed from
// a component description.
func Assembled(
	name string,
	decl *declaration.Declaration,
	locs map[location.ID]location.Location,
	order []location.ID,
	initial location.ID,
	edges map[location.ID]map[string][]Edge,
	universal location.Location,
	k zone.Kernel,
) *CompiledComponent {
	var inputs, outputs []string
	for _, byAction := range edges {
		for action, es := range byAction {
			for _, e := range es {
				if e.Kind == Input {
					inputs = append(inputs, action)
				} else {
					outputs = append(outputs, action)
				}
			}
		}
	}

	return &CompiledComponent{
		name: name, decl: decl, locs: locs, initial: initial, order: order,
		edges: edges, inputs: sortedUnique(inputs), outputs: sortedUnique(outputs),
		universal: universal, kernel: k,
	}
}

// Name returns the component's declared name, used for diagnostics and
// QueryResult system labels.
func (c *CompiledComponent) Name() string { return c.name }

// Dim returns the component's own clock dimension (reference clock + its
// declared clocks); a CTS node sums its leaves' dimensions at build time.
func (c *CompiledComponent) Dim() int { return c.decl.Dim() }

// Declaration exposes the component's clock declaration, consulted by
// the CTS builder when allocating a joint clock range.
func (c *CompiledComponent) Declaration() *declaration.Declaration { return c.decl }

func (c *CompiledComponent) InputActions() []string  { return append([]string(nil), c.inputs...) }
func (c *CompiledComponent) OutputActions() []string { return append([]string(nil), c.outputs...) }

// InitialLocation returns the component's single initial location.
func (c *CompiledComponent) InitialLocation() location.Location {
	return c.locs[c.initial]
}

// AllLocations returns every declared location (not the synthesized
// Universal leaf) in declaration order.
func (c *CompiledComponent) AllLocations() []location.Location {
	out := make([]location.Location, len(c.order))
	for i, id := range c.order {
		out[i] = c.locs[id]
	}

	return out
}

// Location looks up a declared or synthesized location by id.
func (c *CompiledComponent) Location(id location.ID) (location.Location, bool) {
	if id == c.universal.ID {
		return c.universal, true
	}
	l, ok := c.locs[id]

	return l, ok
}

// Universal returns the component's synthesized top location: invariant
// true, a self-loop on every action with guard true and no updates.
// Used as the absorbing "don't care" operand in Composition and as the
// quotient's escape-hatch target for unmatched specification outputs.
func (c *CompiledComponent) Universal() location.Location { return c.universal }

// LocalMaxBounds returns the per-clock upper bound used by extrapolation
// at loc: the greatest non-negative constant that loc's own invariant or
// the guards of loc's outgoing edges compare that clock against. For the
// Universal location no clock gets a bound.
func (c *CompiledComponent) LocalMaxBounds(loc location.ID) zone.Bounds {
	b := zone.NewBounds(c.decl.Dim())
	if loc == c.universal.ID {
		return b
	}
	for _, byAction := range c.edges[loc] {
		for _, e := range byAction {
			for _, mc := range e.Guard.MinimalConstraints() {
				for _, cst := range mc {
					if !cst.Bound.IsInf() && cst.Bound.Const >= 0 {
						b.SetUpper(cst.I, cst.Bound.Const)
						b.SetUpper(cst.J, cst.Bound.Const)
					}
				}
			}
		}
	}
	if l, ok := c.locs[loc]; ok && l.Invariant != nil {
		for _, mc := range l.Invariant.MinimalConstraints() {
			for _, cst := range mc {
				if !cst.Bound.IsInf() && cst.Bound.Const >= 0 {
					b.SetUpper(cst.I, cst.Bound.Const)
					b.SetUpper(cst.J, cst.Bound.Const)
				}
			}
		}
	}

	return b
}

// NextTransitions returns every compiled edge out of loc labeled action,
// including synthesized input-enabling self-loops and (for the
// Universal location) the trivial self-loop on every action.
func (c *CompiledComponent) NextTransitions(loc location.ID, action string) []Edge {
	if loc == c.universal.ID {
		return []Edge{{
			ID: "", Action: action, Kind: classify(c, action),
			Guard: c.kernel.New(c.decl.Dim()), Target: c.universal.ID,
		}}
	}

	return c.edges[loc][action]
}

func classify(c *CompiledComponent, action string) EdgeKind {
	for _, a := range c.inputs {
		if a == action {
			return Input
		}
	}

	return Output
}

func sortedUnique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)

	return out
}
