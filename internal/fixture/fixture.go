// Package fixture builds the "EcdarUniversity" seed-suite components of
// spec.md §8.3 as component.Raw values: Administration, Researcher,
// Machine, Spec, HalfAdm1, HalfAdm2, Adm2, a crafted
// NonDeterministicMachine, and the three-component reachability fixture
// (Component1-3). These mirror the well-known ECDAR "EcdarUniversity"
// example project's topology, simplified to the guards and locations the
// scenarios in spec.md §8.3 exercise.
package fixture

import "github.com/ecdar/reveal/component"

// Administration models the administration office: it may receive a
// grant application and, at least one time unit later, forward it.
func Administration() *component.Raw {
	return &component.Raw{
		Name:   "Administration",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "idle", Initial: true},
			{ID: "received"},
		},
		Edges: []component.RawEdge{
			{ID: "a1", Src: "idle", Dst: "received", Action: "grant_request", Kind: component.Input,
				Updates: []component.RawUpdate{{Clock: "x", Value: 0}}},
			{ID: "a2", Src: "received", Dst: "idle", Action: "forward", Kind: component.Output,
				Guard: component.Leaf(component.GE("x", 1))},
		},
	}
}

// Researcher models a researcher who submits a grant request then waits
// for a reply.
func Researcher() *component.Raw {
	return &component.Raw{
		Name:   "Researcher",
		Clocks: []string{"y"},
		Locations: []component.RawLocation{
			{ID: "idle", Initial: true},
			{ID: "waiting"},
		},
		Edges: []component.RawEdge{
			{ID: "r1", Src: "idle", Dst: "waiting", Action: "grant_request", Kind: component.Output},
			{ID: "r2", Src: "waiting", Dst: "idle", Action: "forward", Kind: component.Input},
		},
	}
}

// Machine models the lab machine the grant ultimately controls access
// to: it accepts a forwarded grant and then may be used, bounded by an
// invariant so it must eventually be released.
func Machine() *component.Raw {
	return &component.Raw{
		Name:   "Machine",
		Clocks: []string{"z"},
		Locations: []component.RawLocation{
			{ID: "idle", Initial: true},
			{ID: "using", Invariant: component.Leaf(component.LE("z", 10))},
		},
		Edges: []component.RawEdge{
			{ID: "m1", Src: "idle", Dst: "using", Action: "forward", Kind: component.Input,
				Updates: []component.RawUpdate{{Clock: "z", Value: 0}}},
			{ID: "m2", Src: "using", Dst: "idle", Action: "release", Kind: component.Output,
				Guard: component.Leaf(component.GE("z", 2))},
		},
	}
}

// Spec is the combined specification Administration || Researcher ||
// Machine is expected to refine.
func Spec() *component.Raw {
	return &component.Raw{
		Name:   "Spec",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "idle", Initial: true},
			{ID: "granted"},
			{ID: "using", Invariant: component.Leaf(component.LE("x", 10))},
		},
		Edges: []component.RawEdge{
			{ID: "s1", Src: "idle", Dst: "granted", Action: "grant_request", Kind: component.Output},
			{ID: "s2", Src: "granted", Dst: "using", Action: "forward", Kind: component.Input,
				Guard:   component.Leaf(component.GE("x", 1)),
				Updates: []component.RawUpdate{{Clock: "x", Value: 0}}},
			{ID: "s3", Src: "using", Dst: "idle", Action: "release", Kind: component.Output,
				Guard: component.Leaf(component.GE("x", 2))},
		},
	}
}

// HalfAdm1 and HalfAdm2 are the two halves Adm2 is expected to be
// refined both by their conjunction and by itself against it.
func HalfAdm1() *component.Raw {
	return &component.Raw{
		Name:   "HalfAdm1",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "idle", Initial: true},
			{ID: "received"},
		},
		Edges: []component.RawEdge{
			{ID: "h1", Src: "idle", Dst: "received", Action: "grant_request", Kind: component.Input},
			{ID: "h2", Src: "received", Dst: "idle", Action: "forward", Kind: component.Output,
				Guard: component.Leaf(component.GE("x", 1))},
		},
	}
}

func HalfAdm2() *component.Raw {
	return &component.Raw{
		Name:   "HalfAdm2",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "idle", Initial: true},
			{ID: "received"},
		},
		Edges: []component.RawEdge{
			{ID: "k1", Src: "idle", Dst: "received", Action: "grant_request", Kind: component.Input},
			{ID: "k2", Src: "received", Dst: "idle", Action: "forward", Kind: component.Output,
				Guard: component.Leaf(component.GE("x", 1))},
		},
	}
}

// Adm2 is Administration's own specification, equivalent in behavior to
// HalfAdm1 && HalfAdm2's shared-action conjunction.
func Adm2() *component.Raw {
	return &component.Raw{
		Name:   "Adm2",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "idle", Initial: true},
			{ID: "received"},
		},
		Edges: []component.RawEdge{
			{ID: "d1", Src: "idle", Dst: "received", Action: "grant_request", Kind: component.Input},
			{ID: "d2", Src: "received", Dst: "idle", Action: "forward", Kind: component.Output,
				Guard: component.Leaf(component.GE("x", 1))},
		},
	}
}

// NonDeterministicMachine is Machine's crafted counterexample for the
// determinism scenario: two overlapping input edges on the same
// action from the same location.
func NonDeterministicMachine() *component.Raw {
	return &component.Raw{
		Name:   "NonDeterministicMachine",
		Clocks: []string{"z"},
		Locations: []component.RawLocation{
			{ID: "idle", Initial: true},
			{ID: "using"},
			{ID: "busy"},
		},
		Edges: []component.RawEdge{
			{ID: "n1", Src: "idle", Dst: "using", Action: "forward", Kind: component.Input},
			{ID: "n2", Src: "idle", Dst: "busy", Action: "forward", Kind: component.Input},
		},
	}
}

// Component1, Component2, Component3 are the reachability fixtures
// named in spec.md §8.3: three independent components with no shared
// actions, each queried on its own. Component3 reaches L7 from L6 via a
// single edge E5, while in Component1 L1 cannot reach L3 because of a
// blocking invariant.
func Component1() *component.Raw {
	return &component.Raw{
		Name:   "Component1",
		Clocks: []string{"x"},
		Locations: []component.RawLocation{
			{ID: "L1", Initial: true, Invariant: component.Leaf(component.LE("x", 1))},
			{ID: "L3", Invariant: component.Leaf(component.LE("x", 0))},
		},
		Edges: []component.RawEdge{
			{ID: "e1", Src: "L1", Dst: "L3", Action: "tick", Kind: component.Input,
				Guard: component.Leaf(component.GE("x", 5))}, // unreachable: invariant caps x at 1 first
		},
	}
}

func Component2() *component.Raw {
	return &component.Raw{
		Name:   "Component2",
		Clocks: []string{"y"},
		Locations: []component.RawLocation{
			{ID: "L4", Initial: true},
			{ID: "L5"},
		},
		Edges: []component.RawEdge{
			{ID: "e4", Src: "L4", Dst: "L5", Action: "step", Kind: component.Output},
		},
	}
}

func Component3() *component.Raw {
	return &component.Raw{
		Name:   "Component3",
		Clocks: []string{"z"},
		Locations: []component.RawLocation{
			{ID: "L6", Initial: true},
			{ID: "L7"},
		},
		Edges: []component.RawEdge{
			{ID: "E5", Src: "L6", Dst: "L7", Action: "advance", Kind: component.Output,
				Guard: component.Leaf(component.GE("z", 5))},
		},
	}
}
