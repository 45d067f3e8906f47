package component

import (
	"fmt"

	"github.com/ecdar/reveal/declaration"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/transition"
	"github.com/ecdar/reveal/zone"
)

// Compile lowers a Raw component into a CompiledComponent: guards and
// invariants become federations, clock names resolve to indices via a
// fresh declaration, and every (location, input action) pair not fully
// covered by a real edge is input-enabled with a synthesized self-loop
// per spec.md §4.1.
func Compile(raw *Raw, k zone.Kernel) (*CompiledComponent, error) {
	decl := declaration.New()
	for i, name := range raw.Clocks {
		if err := decl.AddClock(name, i+1); err != nil {
			return nil, compileErrorf("Compile: AddClock", err)
		}
	}
	idx := func(name string) (int, error) {
		if name == "" {
			return declaration.ReferenceClock, nil
		}

		return decl.Index(name)
	}
	dim := decl.Dim()

	locs := make(map[location.ID]location.Location, len(raw.Locations))
	order := make([]location.ID, 0, len(raw.Locations))
	var initial location.ID
	haveInitial := false
	for _, rl := range raw.Locations {
		if _, dup := locs[rl.ID]; dup {
			return nil, compileErrorf("Compile", fmt.Errorf("%w: %q", ErrDuplicateLocation, rl.ID))
		}
		inv, err := compileGuard(rl.Invariant, dim, idx, k)
		if err != nil {
			return nil, compileErrorf("Compile: invariant", err)
		}
		kind := location.KindNormal
		if rl.Initial {
			if haveInitial {
				return nil, compileErrorf("Compile", ErrMultipleInitialLocations)
			}
			haveInitial = true
			initial = rl.ID
			kind = location.KindInitial
		}
		locs[rl.ID] = location.Location{ID: rl.ID, Kind: kind, Urgency: rl.Urgency, Invariant: inv}
		order = append(order, rl.ID)
	}
	if !haveInitial {
		return nil, compileErrorf("Compile", ErrNoInitialLocation)
	}

	edges := make(map[location.ID]map[string][]Edge, len(locs))
	var inputs, outputs []string
	coveredByLocAction := make(map[location.ID]map[string]zone.Federation)
	for _, re := range raw.Edges {
		if _, ok := locs[re.Src]; !ok {
			return nil, compileErrorf("Compile", fmt.Errorf("%w: src %q", ErrUnknownLocation, re.Src))
		}
		if _, ok := locs[re.Dst]; !ok {
			return nil, compileErrorf("Compile", fmt.Errorf("%w: dst %q", ErrUnknownLocation, re.Dst))
		}
		guard, err := compileGuard(re.Guard, dim, idx, k)
		if err != nil {
			return nil, compileErrorf("Compile: guard", err)
		}
		updates := make([]transition.Update, 0, len(re.Updates))
		for _, u := range re.Updates {
			ci, err := idx(u.Clock)
			if err != nil {
				return nil, compileErrorf("Compile: update", err)
			}
			updates = append(updates, transition.Update{Clock: ci, Value: u.Value})
		}

		e := Edge{ID: re.ID, Action: re.Action, Kind: re.Kind, Guard: guard, Updates: updates, Target: re.Dst}
		if edges[re.Src] == nil {
			edges[re.Src] = make(map[string][]Edge)
		}
		edges[re.Src][re.Action] = append(edges[re.Src][re.Action], e)

		if re.Kind == Input {
			inputs = append(inputs, re.Action)
			if coveredByLocAction[re.Src] == nil {
				coveredByLocAction[re.Src] = make(map[string]zone.Federation)
			}
			if prior, ok := coveredByLocAction[re.Src][re.Action]; ok {
				coveredByLocAction[re.Src][re.Action] = prior.Union(guard)
			} else {
				coveredByLocAction[re.Src][re.Action] = guard
			}
		} else {
			outputs = append(outputs, re.Action)
		}
	}

	inputs = sortedUnique(inputs)
	outputs = sortedUnique(outputs)

	// Input-enabling: for every location and every declared input action
	// not fully covered there, synthesize a self-loop over the
	// uncovered part of the invariant.
	for _, locID := range order {
		loc := locs[locID]
		inv := loc.Invariant
		if inv == nil {
			inv = k.New(dim)
		}
		for _, a := range inputs {
			covered, ok := coveredByLocAction[locID][a]
			var uncovered zone.Federation
			if ok {
				uncovered = inv.Subtraction(covered)
			} else {
				uncovered = inv
			}
			if uncovered.IsEmpty() {
				continue
			}
			self := Edge{ID: "", Action: a, Kind: Input, Guard: uncovered, Target: locID}
			if edges[locID] == nil {
				edges[locID] = make(map[string][]Edge)
			}
			edges[locID][a] = append(edges[locID][a], self)
		}
	}

	universal := location.Location{
		ID: location.ID(raw.Name + "::__universal__"), Kind: location.KindUniversal, Invariant: k.New(dim),
	}

	return &CompiledComponent{
		name: raw.Name, decl: decl, locs: locs, initial: initial, order: order,
		edges: edges, inputs: inputs, outputs: outputs, universal: universal, kernel: k,
	}, nil
}
