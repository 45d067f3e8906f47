package refimpl

import "github.com/ecdar/reveal/zone"

// Kernel is the pure-Go reference zone.Kernel: every Federation it
// produces is backed by a refimpl federation (dense DBM per zone,
// Floyd-Warshall closure). It carries no state and is safe for
// concurrent use by any number of callers, since every operation
// returns a fresh federation rather than mutating a shared one.
type Kernel struct{}

var _ zone.Kernel = Kernel{}

// New returns the universe federation (one unconstrained zone) over
// dim clocks, including the reference clock at index 0.
func (Kernel) New(dim int) zone.Federation {
	return newFederation(dim, universeDBM(dim))
}

// Empty returns the empty federation (no zones) over dim clocks.
func (Kernel) Empty(dim int) zone.Federation {
	return newFederation(dim)
}

// Init returns the federation constraining every clock to exactly 0,
// the initial valuation of a freshly-started component.
func (Kernel) Init(dim int) zone.Federation {
	return newFederation(dim, zeroDBM(dim))
}
