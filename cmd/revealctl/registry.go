package main

import (
	"fmt"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/internal/fixture"
	"github.com/ecdar/reveal/internal/service"
	"github.com/ecdar/reveal/zone"
)

// fixtures lists the seed-suite components of spec.md §8.3 by the name
// a caller refers to them with on the command line.
var fixtures = map[string]func() *component.Raw{
	"Administration":          fixture.Administration,
	"Researcher":              fixture.Researcher,
	"Machine":                 fixture.Machine,
	"Spec":                    fixture.Spec,
	"HalfAdm1":                fixture.HalfAdm1,
	"HalfAdm2":                fixture.HalfAdm2,
	"Adm2":                    fixture.Adm2,
	"NonDeterministicMachine": fixture.NonDeterministicMachine,
	"Component1":              fixture.Component1,
	"Component2":              fixture.Component2,
	"Component3":              fixture.Component3,
}

// loadSystem compiles the named fixture and wraps it as a single-leaf
// CTS node under service.System, ready to pass straight to an Engine
// query method. leafIndex is always 0: the CLI only ever asks about
// one component at a time, never a pre-built network.
func loadSystem(name string, k zone.Kernel) (service.System, error) {
	build, ok := fixtures[name]
	if !ok {
		return service.System{}, fmt.Errorf("revealctl: unknown component %q (known: %v)", name, knownNames())
	}

	cc, err := component.Compile(build(), k)
	if err != nil {
		return service.System{}, fmt.Errorf("revealctl: compiling %q: %w", name, err)
	}

	return service.System{Name: name, Node: &cts.Leaf{Component: cc, LeafIndex: 0}}, nil
}

func knownNames() []string {
	names := make([]string, 0, len(fixtures))
	for n := range fixtures {
		names = append(names, n)
	}

	return names
}
