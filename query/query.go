// Package query defines the query abstract syntax tree of spec.md §6.2:
// a query kind paired with an expression tree over component references
// and the Conjunction/Composition/Quotient operators, plus the
// reachability end-state pattern. Parsing the textual grammar into this
// tree is explicitly out of scope (spec.md §6.2's grammar names the
// surface syntax only to define operator precedence); callers build a
// Query value directly or via another front end.
package query

// Kind names which verification algorithm a Query invokes.
type Kind int

const (
	Refinement Kind = iota
	Consistency
	Determinism
	Reachability
	Specification
	Implementation
	GetComponent
	Prune
	Bisimilarity
)

func (k Kind) String() string {
	switch k {
	case Refinement:
		return "refinement"
	case Consistency:
		return "consistency"
	case Determinism:
		return "determinism"
	case Reachability:
		return "reachability"
	case Specification:
		return "specification"
	case Implementation:
		return "implementation"
	case GetComponent:
		return "getComponent"
	case Prune:
		return "prune"
	case Bisimilarity:
		return "bisim"
	default:
		return "unknown"
	}
}

// Op is an expr-level binary operator. Precedence (spec.md §6.2):
// Quotient highest, then Composition, then Conjunction; all
// left-associative.
type Op int

const (
	OpConjunction Op = iota // "&&"
	OpComposition           // "||"
	OpQuotient              // "\\"
)

// Expr is a query expression: either a leaf naming a declared component,
// a binary node combining two sub-expressions under Op, or a SaveAs
// wrapper naming an intermediate result for reuse by a later query in
// the same session.
type Expr struct {
	// Component is set on a leaf node; empty otherwise.
	Component string

	// Op, Left, Right are set on a binary node; Component is empty.
	Op          Op
	Left, Right *Expr

	// SaveAs, when non-empty, is the name this (sub-)expression's CTS
	// should be cached under for later reference by name within the
	// same session (spec.md §6.2's save_as), alongside the expression
	// it saves.
	SaveAs string
	Saved  *Expr
}

// Leaf returns a component-reference expression.
func Leaf(component string) *Expr { return &Expr{Component: component} }

// Conjunction returns left && right.
func Conjunction(left, right *Expr) *Expr { return &Expr{Op: OpConjunction, Left: left, Right: right} }

// Composition returns left || right.
func Composition(left, right *Expr) *Expr { return &Expr{Op: OpComposition, Left: left, Right: right} }

// Quotient returns left \ right.
func Quotient(left, right *Expr) *Expr { return &Expr{Op: OpQuotient, Left: left, Right: right} }

// SaveAs wraps expr so its resulting CTS is cached under name.
func SaveAs(name string, expr *Expr) *Expr { return &Expr{SaveAs: name, Saved: expr} }

// IsLeaf reports whether e names a component directly.
func (e *Expr) IsLeaf() bool { return e.Component != "" }

// IsSaveAs reports whether e is a save_as wrapper.
func (e *Expr) IsSaveAs() bool { return e.SaveAs != "" }

// LocationPattern names one element of a reachability end-state's
// location list: either a concrete component/location pair or the "_"
// wildcard matching any leaf at that tree position (spec.md §6.2).
type LocationPattern struct {
	Component string
	Location  string
	Any       bool
}

// ClockConstraint is one conjunct of a reachability end-state's optional
// clock predicate, e.g. "x >= 2" or "y < 10".
type ClockConstraint struct {
	Clock string
	Op    ConstraintOp
	Const int64
}

// ConstraintOp mirrors component.guardOp for the reachability grammar's
// own clock predicates, kept as a distinct type since query is the
// surface-facing package and should not depend on component's
// compilation-only guard AST.
type ConstraintOp int

const (
	Lt ConstraintOp = iota
	Le
	Gt
	Ge
	Eq
)

// EndStatePattern is the target of a reachability query: a list of
// per-leaf location patterns plus an optional clock predicate, per
// spec.md §6.2's `reach` production.
type EndStatePattern struct {
	Locations []LocationPattern
	Clocks    []ClockConstraint
}

// Query is one complete request: a kind, the expression it evaluates,
// and (for Reachability) the end-state pattern to search for.
type Query struct {
	Kind Kind
	Expr *Expr

	// End is populated only when Kind == Reachability.
	End *EndStatePattern
}
