package cts

import (
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/zone"
)

// Init returns the initial federation at loc: the kernel's init zone
// (every clock at 0) intersected with loc's invariant and extrapolated
// by the node's local max bounds, per spec.md §3.5's state invariant
// (federation subset of the tree's invariants).
func Init(node Node, loc *location.Tree) zone.Federation {
	k := kernelOrPanic()
	z := k.Init(node.Dim()).Intersection(node.Invariant(loc))

	return z.ExtrapolateMaxBounds(node.LocalMaxBounds(loc))
}
