package component

import (
	"fmt"

	"github.com/ecdar/reveal/zone"
)

// guardOp is the comparison operator of a single clock-difference atom.
type guardOp int

const (
	opLt guardOp = iota
	opLe
	opGt
	opGe
	opEq
)

// Atom is a single difference constraint `clockA - clockB op const`.
// clockB is the empty string for a plain clock-vs-constant bound
// (equivalent to a difference against the reference clock).
type Atom struct {
	ClockA, ClockB string
	Op             guardOp
	Const          int64
}

// LT/LE/GT/GE/EQ build a plain clock-vs-constant atom.
func LT(clock string, c int64) Atom { return Atom{ClockA: clock, Op: opLt, Const: c} }
func LE(clock string, c int64) Atom { return Atom{ClockA: clock, Op: opLe, Const: c} }
func GT(clock string, c int64) Atom { return Atom{ClockA: clock, Op: opGt, Const: c} }
func GE(clock string, c int64) Atom { return Atom{ClockA: clock, Op: opGe, Const: c} }
func EQ(clock string, c int64) Atom { return Atom{ClockA: clock, Op: opEq, Const: c} }

// Diff builds a difference-of-two-clocks atom: clockA - clockB op c.
func Diff(clockA, clockB string, op guardOp, c int64) Atom {
	return Atom{ClockA: clockA, ClockB: clockB, Op: op, Const: c}
}

// Expr is a guard expression: a disjunction of conjunctions of Atoms,
// built with And/Or/Atom. nil denotes the unconstrained guard "true".
type Expr struct {
	// leaf: a single Atom. conjunction: And of two sub-exprs.
	// disjunction: Or of two sub-exprs (lifted to federation union at
	// compile time, per spec.md's OR-distribution rule).
	atom        *Atom
	left, right *Expr
	isOr        bool
}

// True returns the unconstrained guard.
func True() *Expr { return nil }

// Leaf wraps a single atom as a guard expression.
func Leaf(a Atom) *Expr { return &Expr{atom: &a} }

// And conjoins two guard expressions.
func And(l, r *Expr) *Expr { return &Expr{left: l, right: r} }

// Or disjoins two guard expressions.
func Or(l, r *Expr) *Expr { return &Expr{left: l, right: r, isOr: true} }

// compileGuard lowers a guard expression into a federation over dim
// clocks, resolving clock names through idx. A nil expression compiles
// to the universe. Disjunction distributes into a federation union;
// conjunction intersects.
func compileGuard(e *Expr, dim int, idx func(name string) (int, error), k zone.Kernel) (zone.Federation, error) {
	if e == nil {
		return k.New(dim), nil
	}
	if e.atom != nil {
		return compileAtom(*e.atom, dim, idx, k)
	}

	left, err := compileGuard(e.left, dim, idx, k)
	if err != nil {
		return nil, err
	}
	right, err := compileGuard(e.right, dim, idx, k)
	if err != nil {
		return nil, err
	}
	if e.isOr {
		return left.Union(right), nil
	}

	return left.Intersection(right), nil
}

// String renders an atom in the source surface syntax, for
// serialization of a component back out (spec.md §6.3).
func (a Atom) String() string {
	if a.ClockB != "" {
		return fmt.Sprintf("%s-%s%s%d", a.ClockA, a.ClockB, a.Op, a.Const)
	}

	return fmt.Sprintf("%s%s%d", a.ClockA, a.Op, a.Const)
}

func (op guardOp) String() string {
	switch op {
	case opLt:
		return "<"
	case opLe:
		return "<="
	case opGt:
		return ">"
	case opGe:
		return ">="
	case opEq:
		return "=="
	default:
		return "?"
	}
}

// String renders a guard expression in the source surface syntax: "true"
// for the unconstrained guard, conjunctions joined by "&&", disjunctions
// by "||".
func (e *Expr) String() string {
	if e == nil {
		return "true"
	}
	if e.atom != nil {
		return e.atom.String()
	}
	if e.isOr {
		return fmt.Sprintf("(%s || %s)", e.left.String(), e.right.String())
	}

	return fmt.Sprintf("(%s && %s)", e.left.String(), e.right.String())
}

func compileAtom(a Atom, dim int, idx func(name string) (int, error), k zone.Kernel) (zone.Federation, error) {
	i, err := idx(a.ClockA)
	if err != nil {
		return nil, err
	}
	j := 0
	if a.ClockB != "" {
		j, err = idx(a.ClockB)
		if err != nil {
			return nil, err
		}
	}

	u := k.New(dim)
	switch a.Op {
	case opLt:
		return u.Constrain(i, j, zone.Bound{Const: a.Const, Strict: true}), nil
	case opLe:
		return u.Constrain(i, j, zone.Bound{Const: a.Const, Strict: false}), nil
	case opGt:
		return u.Constrain(j, i, zone.Bound{Const: -a.Const, Strict: true}), nil
	case opGe:
		return u.Constrain(j, i, zone.Bound{Const: -a.Const, Strict: false}), nil
	case opEq:
		le := u.Constrain(i, j, zone.Bound{Const: a.Const, Strict: false})

		return le.Constrain(j, i, zone.Bound{Const: -a.Const, Strict: false}), nil
	default:
		return nil, ErrUnsupportedGuardFeature
	}
}
