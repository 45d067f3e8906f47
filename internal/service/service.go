// Package service is the query execution boundary of spec.md §5: one
// goroutine per incoming query, each carrying its own zerolog logger
// enriched with a query id, driving the verification packages
// (refine/reach/precheck/quotient) and returning a result.QueryResult.
package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/config"
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/internal/cache"
	"github.com/ecdar/reveal/precheck"
	"github.com/ecdar/reveal/quotient"
	"github.com/ecdar/reveal/reach"
	"github.com/ecdar/reveal/refine"
	"github.com/ecdar/reveal/result"
)

// System is a named, already-built CTS node plus the display name its
// QueryResult diagnostics should use.
type System struct {
	Name string
	Node cts.Node
}

// Engine owns the process-wide component cache and logger, and answers
// queries by dispatching to the verification packages. One Engine is
// shared by every query-handling goroutine; its own state (the cache)
// is safe for concurrent use.
type Engine struct {
	cfg     config.Config
	log     zerolog.Logger
	cache   *cache.Cache
	counter atomic.Uint64
}

// New builds an Engine from cfg, logging through the provided logger at
// cfg.LogLevel (the CLI passes one writing to os.Stderr).
func New(cfg config.Config, logger zerolog.Logger) *Engine {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return &Engine{cfg: cfg, log: logger.Level(level), cache: cache.New(cfg.CacheSize)}
}

// nextQueryID returns a process-local, monotonically increasing query
// identifier for log correlation.
func (e *Engine) nextQueryID() string {
	return fmt.Sprintf("q-%d", e.counter.Add(1))
}

// Refine answers a refinement query: does left refine right.
func (e *Engine) Refine(ctx context.Context, left, right System) result.QueryResult {
	qid := e.nextQueryID()
	log := e.log.With().Str("query_id", qid).Str("kind", "refinement").Logger()
	log.Info().Str("left", left.Name).Str("right", right.Name).Msg("query received")

	res := refine.Check(left.Node, right.Node, left.Name, right.Name)
	e.logOutcome(log, res)

	return res
}

// Consistency answers a (least-consistent) consistency query against sys.
func (e *Engine) Consistency(ctx context.Context, sys System) result.QueryResult {
	qid := e.nextQueryID()
	log := e.log.With().Str("query_id", qid).Str("kind", "consistency").Logger()
	log.Info().Str("system", sys.Name).Msg("query received")

	pre := precheck.Run(sys.Node, sys.Name)
	var res result.QueryResult
	if pre.Ok {
		res = result.Success()
	} else if pre.Consistency != nil {
		res = result.FromConsistency(*pre.Consistency)
	} else {
		res = result.FromDeterminism(*pre.Determinism)
	}
	e.logOutcome(log, res)

	return res
}

// Reachability answers whether end is reachable from sys's initial state.
func (e *Engine) Reachability(ctx context.Context, sys System, end reach.EndState) result.QueryResult {
	qid := e.nextQueryID()
	log := e.log.With().Str("query_id", qid).Str("kind", "reachability").Logger()
	log.Info().Str("system", sys.Name).Msg("query received")

	init := sys.Node.InitialLocation()
	z := cts.Init(sys.Node, init)
	res := reach.Find(sys.Node, init, z, end)
	e.logOutcome(log, res)

	return res
}

// Quotient answers a quotient-construction query and returns its
// QueryResult. On success the pruned compiled component is stored in the
// cache under the caller's user ID and the "T\S" name pair; no query
// path reads that entry back.
func (e *Engine) Quotient(ctx context.Context, userID string, t, s System, newAction string) result.QueryResult {
	qid := e.nextQueryID()
	log := e.log.With().Str("query_id", qid).Str("kind", "quotient").Logger()
	log.Info().Str("t", t.Name).Str("s", s.Name).Msg("query received")

	cc, res := quotient.Build(t.Node, s.Node, t.Name, s.Name, newAction)
	if res.Ok() {
		key := cache.Key{UserID: userID, ComponentsHash: t.Name + "\\" + s.Name}
		e.cache.Put(key, map[string]*component.CompiledComponent{cc.Name(): cc})
	}
	e.logOutcome(log, res)

	return res
}

func (e *Engine) logOutcome(log zerolog.Logger, res result.QueryResult) {
	if res.Ok() {
		log.Info().Msg("query answered")

		return
	}
	log.Warn().Str("reason", res.Error()).Msg("query failed")
}
