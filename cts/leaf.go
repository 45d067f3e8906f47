package cts

import (
	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/transition"
	"github.com/ecdar/reveal/zone"
)

// Leaf wraps one compiled component as a CTS node. leafIndex identifies
// it among the sibling leaves of the whole query (stable, used by
// location.Tree.ComponentIndex); its own clocks occupy [1, dim) of its
// own local space, already embedded 1:1 since a bare leaf's joint space
// equals its component's own.
type Leaf struct {
	Component *component.CompiledComponent
	LeafIndex int
}

var _ Node = (*Leaf)(nil)

func (l *Leaf) Dim() int { return l.Component.Dim() }

func (l *Leaf) InputActions() []string  { return l.Component.InputActions() }
func (l *Leaf) OutputActions() []string { return l.Component.OutputActions() }

func (l *Leaf) InitialLocation() *location.Tree {
	return location.Leaf(l.LeafIndex, l.Component.InitialLocation())
}

func (l *Leaf) AllLocations() []*location.Tree {
	locs := l.Component.AllLocations()
	out := make([]*location.Tree, len(locs))
	for i, loc := range locs {
		out[i] = location.Leaf(l.LeafIndex, loc)
	}

	return out
}

func (l *Leaf) Invariant(loc *location.Tree) zone.Federation {
	if loc.IsUniversal() {
		return l.Component.Universal().Invariant
	}
	compLoc, ok := l.Component.Location(loc.LocationID)
	if !ok || compLoc.Invariant == nil {
		return kernelOrPanic().New(l.Dim())
	}

	return compLoc.Invariant
}

func (l *Leaf) LocalMaxBounds(loc *location.Tree) zone.Bounds {
	if loc.IsUniversal() {
		return zone.NewBounds(l.Dim())
	}

	return l.Component.LocalMaxBounds(loc.LocationID)
}

func (l *Leaf) NextTransitions(loc *location.Tree, action string) ([]*transition.Transition, error) {
	var edges []component.Edge
	if loc.IsUniversal() {
		edges = l.Component.NextTransitions(l.Component.Universal().ID, action)
	} else {
		edges = l.Component.NextTransitions(loc.LocationID, action)
	}

	out := make([]*transition.Transition, 0, len(edges))
	for _, e := range edges {
		targetLoc, ok := l.Component.Location(e.Target)
		if !ok {
			targetLoc = l.Component.Universal()
		}
		out = append(out, &transition.Transition{
			ID:      transition.Leaf(e.ID),
			Action:  e.Action,
			Guard:   e.Guard,
			Updates: e.Updates,
			Target:  location.Leaf(l.LeafIndex, targetLoc),
		})
	}

	return out, nil
}
