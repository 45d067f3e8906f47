package component

import "github.com/ecdar/reveal/location"

// RawLocation is a component's location as declared, before compilation.
type RawLocation struct {
	ID        location.ID
	Invariant *Expr
	Urgency   location.Urgency
	Initial   bool
}

// EdgeKind distinguishes input and output edges.
type EdgeKind int

const (
	Input EdgeKind = iota
	Output
)

// RawUpdate resets a named clock to a constant, in source order.
type RawUpdate struct {
	Clock string
	Value int64
}

// RawEdge is a component's edge as declared, before compilation.
type RawEdge struct {
	ID      string
	Src     location.ID
	Dst     location.ID
	Action  string
	Kind    EdgeKind
	Guard   *Expr
	Updates []RawUpdate
}

// Raw is an uncompiled component: its clock declaration, locations, and
// edges, exactly as parsed from a component description.
type Raw struct {
	Name      string
	Clocks    []string // declaration order; indices assigned at compile time
	Locations []RawLocation
	Edges     []RawEdge
}
