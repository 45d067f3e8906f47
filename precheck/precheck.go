// Package precheck composes the determinism and local-consistency
// checks into the single precheck() operation spec.md §4.3 assigns to
// every CTS node: ok, or the first determinism or consistency failure
// encountered, consistency checked with the pruning-tolerant variant
// since a raw (unpruned) quotient's universal branches are expected to
// satisfy "no real transition" and must still count as consistent.
package precheck

import (
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/cts/consistency"
	"github.com/ecdar/reveal/cts/determinism"
	"github.com/ecdar/reveal/result"
)

// Result is the outcome of a precheck: ok, or exactly one of a
// determinism or consistency failure.
type Result struct {
	Ok          bool
	Determinism *result.DeterminismFailure
	Consistency *result.ConsistencyFailure
}

// Run executes determinism.Check followed by consistency.CheckLeast,
// short-circuiting on the first failure.
func Run(node cts.Node, systemName string) Result {
	det := determinism.Check(node, systemName)
	if !det.Ok {
		return Result{Determinism: det.Failure}
	}
	con := consistency.CheckLeast(node, systemName)
	if !con.Ok {
		return Result{Consistency: con.Failure}
	}

	return Result{Ok: true}
}
