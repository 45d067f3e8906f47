package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/ecdar/reveal/config"
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/internal/service"
	"github.com/ecdar/reveal/internal/service/rpc"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/reach"
	"github.com/ecdar/reveal/result"
	"github.com/ecdar/reveal/zone/refimpl"
)

// engineRunner adapts the fixture registry plus a live Engine to
// rpc.QueryRunner: it interprets the generic request map SendQuery
// receives as {"kind", "left"/"system"/"t", "right"/"s", "location",
// "action"} fields naming components already known to this process.
type engineRunner struct {
	engine *service.Engine
}

func (r engineRunner) RunQuery(ctx context.Context, req map[string]any) result.QueryResult {
	kind, _ := req["kind"].(string)
	switch kind {
	case "refinement":
		left, err := r.system(req, "left")
		if err != nil {
			return errResult(err)
		}
		right, err := r.system(req, "right")
		if err != nil {
			return errResult(err)
		}

		return r.engine.Refine(ctx, left, right)
	case "consistency":
		sys, err := r.system(req, "system")
		if err != nil {
			return errResult(err)
		}

		return r.engine.Consistency(ctx, sys)
	case "reachability":
		sys, err := r.system(req, "system")
		if err != nil {
			return errResult(err)
		}
		locName, _ := req["location"].(string)
		target := reach.EndState{Loc: location.Leaf(0, location.Location{ID: location.ID(locName)})}

		return r.engine.Reachability(ctx, sys, target)
	case "quotient":
		t, err := r.system(req, "t")
		if err != nil {
			return errResult(err)
		}
		s, err := r.system(req, "s")
		if err != nil {
			return errResult(err)
		}
		action, _ := req["action"].(string)

		return r.engine.Quotient(ctx, "rpc", t, s, action)
	default:
		return errResult(fmt.Errorf("revealctl: unknown query kind %q", kind))
	}
}

func (r engineRunner) system(req map[string]any, field string) (service.System, error) {
	name, _ := req[field].(string)

	return loadSystem(name, refimpl.Kernel{})
}

// errResult reports a request-shape problem (an unknown component or
// query kind) the same way a RecipeFailure reports a malformed CTS: as
// a QueryResult, so the RPC envelope never needs a side-channel error.
func errResult(err error) result.QueryResult {
	return result.FromRecipe(result.RecipeFailure{Inconsistent: &result.InconsistentComposition{
		Composition: err.Error(),
		Cause:       result.ConsistencyFailure{Kind: result.NoInitialState, System: "request"},
	}})
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gRPC query server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			cts.SetKernel(refimpl.Kernel{})
			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			engine := service.New(cfg, logger)

			lis, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("revealctl: listen on %s: %w", addr, err)
			}

			gs := grpc.NewServer()
			rpc.Register(gs, engineRunner{engine: engine})
			reflection.Register(gs)

			logger.Info().Str("addr", addr).Msg("serving")

			return gs.Serve(lis)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":7321", "listen address")

	return cmd
}
