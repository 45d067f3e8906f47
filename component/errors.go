// Package component compiles a component's raw edges (guard
// expressions, updates, sync labels) into a CompiledComponent ready to
// be driven by the CTS layer: next_transitions, action sets, local max
// bounds, input-enabling self-loops, and the synthesized Universal
// location used by the quotient construction.
//
// Error policy (mirrors the sentinel-error register used throughout
// this module):
//   - Only package-level sentinel values are exposed.
//   - Callers branch with errors.Is; sentinels are never wrapped with a
//     formatted string at their definition, only at call sites via %w.
//   - Compile-time validation may panic only in option constructors; the
//     compiler itself always returns an error.
package component

import (
	"errors"
	"fmt"
)

// ErrNoInitialLocation indicates a component declared zero locations
// marked initial.
var ErrNoInitialLocation = errors.New("component: no initial location")

// ErrMultipleInitialLocations indicates more than one location was
// marked initial.
var ErrMultipleInitialLocations = errors.New("component: multiple initial locations")

// ErrDuplicateLocation indicates the same location id was declared
// twice.
var ErrDuplicateLocation = errors.New("component: duplicate location id")

// ErrUnknownLocation indicates an edge referenced a location id absent
// from the component.
var ErrUnknownLocation = errors.New("component: unknown location id")

// ErrUnsupportedGuardFeature indicates a guard expression referenced an
// integer variable or other construct outside the supported
// clock-difference-constraint grammar.
var ErrUnsupportedGuardFeature = errors.New("component: unsupported guard feature")

func compileErrorf(method string, err error) error {
	return fmt.Errorf("component: %s: %w", method, err)
}
