// Package result carries the structured QueryResult taxonomy every
// verification algorithm returns instead of throwing: a query answer is
// always a typed success payload or exactly one failure value with a
// concrete witness, per the failure shapes of the ECDAR "Reveaal"
// engine's own query_failures module.
package result

import "fmt"

// Kind discriminates which payload a QueryResult carries.
type Kind int

const (
	KindSuccess Kind = iota
	KindRecipeFailure
	KindConsistencyFailure
	KindDeterminismFailure
	KindRefinementFailure
	KindPathFailure
)

// ActionSet names a set of action labels attached to a failure for
// diagnostics (e.g. the two disjoint-violating sets of a conjunction).
type ActionSet struct {
	System  string
	Actions []string
}

// RecipeFailure reports that a CTS could not be built.
type RecipeFailure struct {
	// Sub-kind, mutually exclusive:
	NotDisjoint *ActionPairFailure
	NotSubset   *ActionPairFailure
	Inconsistent *InconsistentComposition
}

// ActionPairFailure names the two offending action sets of a
// disjointness or subset precondition violation.
type ActionPairFailure struct {
	Composition string
	A, B        ActionSet
}

// InconsistentComposition reports that a sub-system's own inconsistency
// blocked the composition that referenced it.
type InconsistentComposition struct {
	Composition string
	Cause       ConsistencyFailure
}

// ConsistencyFailure is why a system failed its consistency check.
type ConsistencyFailure struct {
	Kind    ConsistencyFailureKind
	System  string
	State   string // human-readable witness location/zone, for diagnostics
	Det     *DeterminismFailure
}

type ConsistencyFailureKind int

const (
	NoInitialState ConsistencyFailureKind = iota
	InconsistentLoc
	InconsistentFrom
	NotDeterministic
)

// DeterminismFailure reports the first state/action where two
// transitions' guards overlapped.
type DeterminismFailure struct {
	System string
	Action string
	State  string
}

// RefinementFailureKind discriminates a refinement failure.
type RefinementFailureKind int

const (
	CutsDelaySolutions RefinementFailureKind = iota
	CannotMatch
	PrecondViolated
)

// RefinementPrecondition names which precondition of §4.7 failed.
type RefinementPrecondition struct {
	ActionMismatch    *ActionPairFailure
	NotConsistent     *ConsistencyFailure
	NotDeterministic  *DeterminismFailure
	NoInitialState    bool
}

// RefinementFailure reports why L ⊑ R failed.
type RefinementFailure struct {
	Kind        RefinementFailureKind
	Action      string
	State       string
	Precondition *RefinementPrecondition
}

// PathFailure reports that a reachability query found no path.
type PathFailure struct {
	Unreachable bool
}

// QueryResult is the tagged-union outcome of one query: exactly one of
// the payload fields matching Kind is populated.
type QueryResult struct {
	Kind Kind

	Recipe      *RecipeFailure
	Consistency *ConsistencyFailure
	Determinism *DeterminismFailure
	Refinement  *RefinementFailure
	Path        *PathFailure

	// TraceIDs carries the reachability path or refinement witness
	// transition chain, present on success for path-producing queries.
	TraceIDs []string
}

// Success returns the positive-answer QueryResult.
func Success() QueryResult { return QueryResult{Kind: KindSuccess} }

// SuccessPath returns the positive-answer QueryResult for a
// path-producing query (reachability), carrying the witness trace.
func SuccessPath(ids []string) QueryResult {
	return QueryResult{Kind: KindSuccess, TraceIDs: ids}
}

func FromRecipe(f RecipeFailure) QueryResult {
	return QueryResult{Kind: KindRecipeFailure, Recipe: &f}
}

func FromConsistency(f ConsistencyFailure) QueryResult {
	return QueryResult{Kind: KindConsistencyFailure, Consistency: &f}
}

func FromDeterminism(f DeterminismFailure) QueryResult {
	return QueryResult{Kind: KindDeterminismFailure, Determinism: &f}
}

func FromRefinement(f RefinementFailure) QueryResult {
	return QueryResult{Kind: KindRefinementFailure, Refinement: &f}
}

func FromPath(f PathFailure) QueryResult {
	return QueryResult{Kind: KindPathFailure, Path: &f}
}

// Ok reports whether the query produced a positive answer.
func (r QueryResult) Ok() bool { return r.Kind == KindSuccess }

// Error renders the failure for human consumption; implements the error
// interface so a QueryResult can be returned/wrapped through ordinary
// Go error-handling paths at the service boundary while the structured
// fields remain available for callers that branch on Kind.
func (r QueryResult) Error() string {
	switch r.Kind {
	case KindSuccess:
		return "query succeeded"
	case KindRecipeFailure:
		return fmt.Sprintf("recipe failure: %s", r.Recipe.describe())
	case KindConsistencyFailure:
		return fmt.Sprintf("consistency failure: %s", r.Consistency.describe())
	case KindDeterminismFailure:
		return fmt.Sprintf("determinism failure: system %q action %q at %s",
			r.Determinism.System, r.Determinism.Action, r.Determinism.State)
	case KindRefinementFailure:
		return fmt.Sprintf("refinement failure: %s", r.Refinement.describe())
	case KindPathFailure:
		return "unreachable"
	default:
		return "unknown query result"
	}
}

func (f *RecipeFailure) describe() string {
	switch {
	case f.NotDisjoint != nil:
		return fmt.Sprintf("%s: action sets not disjoint (%v / %v)",
			f.NotDisjoint.Composition, f.NotDisjoint.A.Actions, f.NotDisjoint.B.Actions)
	case f.NotSubset != nil:
		return fmt.Sprintf("%s: action sets not a subset (%v / %v)",
			f.NotSubset.Composition, f.NotSubset.A.Actions, f.NotSubset.B.Actions)
	case f.Inconsistent != nil:
		return fmt.Sprintf("%s: sub-system inconsistent (%s)",
			f.Inconsistent.Composition, f.Inconsistent.Cause.describe())
	default:
		return "unspecified"
	}
}

func (f *ConsistencyFailure) describe() string {
	switch f.Kind {
	case NoInitialState:
		return fmt.Sprintf("%s: no initial state", f.System)
	case InconsistentLoc:
		return fmt.Sprintf("%s: inconsistent location at %s", f.System, f.State)
	case InconsistentFrom:
		return fmt.Sprintf("%s: inconsistent reachable from %s", f.System, f.State)
	case NotDeterministic:
		return fmt.Sprintf("%s: not deterministic (action %q at %s)", f.System, f.Det.Action, f.Det.State)
	default:
		return "unspecified"
	}
}

func (f *RefinementFailure) describe() string {
	switch f.Kind {
	case CutsDelaySolutions:
		return fmt.Sprintf("action %q at %s cuts delay solutions", f.Action, f.State)
	case CannotMatch:
		return fmt.Sprintf("action %q at %s cannot be matched", f.Action, f.State)
	case PrecondViolated:
		return fmt.Sprintf("precondition violated: %s", f.Precondition.describe())
	default:
		return "unspecified"
	}
}

func (p *RefinementPrecondition) describe() string {
	switch {
	case p.ActionMismatch != nil:
		return fmt.Sprintf("action alphabets mismatch (%v / %v)", p.ActionMismatch.A.Actions, p.ActionMismatch.B.Actions)
	case p.NotConsistent != nil:
		return fmt.Sprintf("not consistent: %s", p.NotConsistent.describe())
	case p.NotDeterministic != nil:
		return fmt.Sprintf("not deterministic: action %q at %s", p.NotDeterministic.Action, p.NotDeterministic.State)
	case p.NoInitialState:
		return "no initial state"
	default:
		return "unspecified"
	}
}
