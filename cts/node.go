// Package cts implements the Composed Transition System: a polymorphic
// tree of Leaf/Conjunction/Composition/Quotient nodes exposing a shared
// operation set (dimension, action sets, next_transitions, local max
// bounds) to every downstream algorithm (determinism, consistency,
// refinement, reachability, quotient construction); the precheck lives
// in package precheck.
//
// Every node embeds its children's federations into its own joint clock
// space on each Invariant and NextTransitions call: clock 0 is the single shared reference
// clock; a left child's own clocks occupy the low range and a right
// child's (if any) occupy the range immediately above it, so a parent's
// dimension is the sum of its children's dimensions minus the one
// reference clock they'd otherwise double-count. This keeps every
// transition's guard comparable within one node; embedded results are
// not cached, so a subtree is re-embedded on every query.
package cts

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/transition"
	"github.com/ecdar/reveal/zone"
)

// ErrActionsNotDisjoint is returned when a Conjunction's two operands
// share an action on opposite polarity (an input on one side matching
// an output on the other), violating spec.md §4.3.1.
var ErrActionsNotDisjoint = errors.New("cts: action sets not disjoint")

// ErrOutputsOverlap is returned when a Composition's two operands both
// declare the same output action.
var ErrOutputsOverlap = errors.New("cts: output actions overlap")

// ErrNoInitialState is returned when a node's initial location does not
// exist because one of its children lacks one.
var ErrNoInitialState = errors.New("cts: no initial state")

// Node is the shared interface every CTS tree shape implements.
type Node interface {
	// Dim returns the node's joint clock dimension, including the
	// shared reference clock at index 0.
	Dim() int
	InputActions() []string
	OutputActions() []string

	// InitialLocation returns the node's initial location tree, or nil
	// if any child lacks one.
	InitialLocation() *location.Tree
	// AllLocations enumerates every reachable-by-construction location
	// tree shape (the Cartesian product of the children's locations).
	AllLocations() []*location.Tree
	// Invariant returns the federation all live zones at loc must lie
	// within.
	Invariant(loc *location.Tree) zone.Federation
	// LocalMaxBounds returns the per-clock extrapolation bound at loc.
	LocalMaxBounds(loc *location.Tree) zone.Bounds
	// NextTransitions returns the transitions enabled at loc for action,
	// already expressed over this node's joint clock dimension.
	NextTransitions(loc *location.Tree, action string) ([]*transition.Transition, error)
}

// sharedKernel is the federation constructor every node closes over;
// installed once by SetKernel and reused for every derived federation
// so the whole tree shares one kernel instance.
var sharedKernel zone.Kernel

// SetKernel installs the federation kernel used to build embedded
// federations; called once during engine startup before any CTS is
// built.
func SetKernel(k zone.Kernel) { sharedKernel = k }

func kernelOrPanic() zone.Kernel {
	if sharedKernel == nil {
		panic("cts: SetKernel must be called before building any CTS node")
	}

	return sharedKernel
}

// Kernel returns the federation kernel installed by SetKernel, exposed
// for algorithm packages (refine, reach, quotient) that need to build
// federations over a joint dimension spanning more than one CTS node.
func Kernel() zone.Kernel { return kernelOrPanic() }

// Embed exposes embed to algorithm packages that combine federations
// from two independently-built CTS nodes (refine's state pairs span two
// whole nodes rather than one node's own children).
func Embed(fed zone.Federation, childDim, jointDim, offset int, k zone.Kernel) zone.Federation {
	return embed(fed, childDim, jointDim, offset, k)
}

// EmbedBounds is the Bounds analogue of Embed.
func EmbedBounds(b zone.Bounds, jointDim, offset int) zone.Bounds {
	return embedBounds(b, jointDim, offset)
}

// actionUnion returns the sorted union of a and b, per spec.md §9's
// "iterate action sets in sorted order for reproducibility".
func actionUnion(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string(nil), a...), b...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)

	return out
}

func actionDiff(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := inB[s]; !ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)

	return out
}

func actionIntersect(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := inB[s]; ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)

	return out
}

func actionsOverlap(a, b []string) []string {
	return actionIntersect(a, b)
}

func hasAction(set []string, a string) bool {
	for _, s := range set {
		if s == a {
			return true
		}
	}

	return false
}

// embed lifts fed (expressed over a child's own [0, childDim) clock
// space) into the parent's jointDim space: the child's clock 0 maps to
// the shared reference clock 0; the child's clock i>0 maps to
// offset+i-1+1 = offset+i, where offset is the first joint index past
// every clock already assigned to earlier children.
func embed(fed zone.Federation, childDim, jointDim, offset int, k zone.Kernel) zone.Federation {
	remap := func(i int) int {
		if i == 0 {
			return 0
		}

		return offset + i
	}

	result := k.Empty(jointDim)
	for _, conj := range fed.MinimalConstraints() {
		z := k.New(jointDim)
		for _, c := range conj {
			z = z.Constrain(remap(c.I), remap(c.J), c.Bound)
		}
		result = result.Union(z)
	}

	return result
}

// embedBounds lifts a child's per-clock Bounds table into the parent's
// joint index space the same way embed lifts federations.
func embedBounds(b zone.Bounds, jointDim, offset int) zone.Bounds {
	out := zone.NewBounds(jointDim)
	for i, v := range b.Upper {
		if v < 0 {
			continue
		}
		joint := i
		if i > 0 {
			joint = offset + i
		}
		out.SetUpper(joint, v)
	}

	return out
}

func wrapErr(op string, err error) error {
	return fmt.Errorf("cts: %s: %w", op, err)
}
