package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ecdar/reveal/config"
	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/internal/service"
	"github.com/ecdar/reveal/location"
	"github.com/ecdar/reveal/reach"
	"github.com/ecdar/reveal/result"
	"github.com/ecdar/reveal/zone/refimpl"
)

// newEngine builds a one-shot Engine for a single CLI invocation,
// logging to stderr at the configured level. The CLI never shares an
// Engine across invocations, so its cache is always cold; that is fine,
// a single query per process is the whole point of this entrypoint.
func newEngine() (*service.Engine, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	cts.SetKernel(refimpl.Kernel{})
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	return service.New(cfg, logger), nil
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a single verification query against named components",
	}
	cmd.AddCommand(newRefinementCmd())
	cmd.AddCommand(newConsistencyCmd())
	cmd.AddCommand(newReachabilityCmd())
	cmd.AddCommand(newQuotientCmd())

	return cmd
}

func newRefinementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refinement <impl> <spec>",
		Short: "Check impl refines spec",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			left, err := loadSystem(args[0], refimpl.Kernel{})
			if err != nil {
				return err
			}
			right, err := loadSystem(args[1], refimpl.Kernel{})
			if err != nil {
				return err
			}

			return report(engine.Refine(cmd.Context(), left, right))
		},
	}
}

func newConsistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency <system>",
		Short: "Check a system is deterministic and free of inconsistent states",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			sys, err := loadSystem(args[0], refimpl.Kernel{})
			if err != nil {
				return err
			}

			return report(engine.Consistency(cmd.Context(), sys))
		},
	}
}

func newReachabilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reachability <system> <location>",
		Short: "Check whether the named location is reachable from the initial state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			sys, err := loadSystem(args[0], refimpl.Kernel{})
			if err != nil {
				return err
			}

			target := location.Leaf(0, location.Location{ID: location.ID(args[1])})
			end := reach.EndState{Loc: target}

			return report(engine.Reachability(cmd.Context(), sys, end))
		},
	}
}

func newQuotientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quotient <t> <s> <new-action>",
		Short: "Build the synthesized component for T \\ S",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			t, err := loadSystem(args[0], refimpl.Kernel{})
			if err != nil {
				return err
			}
			s, err := loadSystem(args[1], refimpl.Kernel{})
			if err != nil {
				return err
			}

			return report(engine.Quotient(cmd.Context(), "cli", t, s, args[2]))
		},
	}
}

// report prints a query's outcome and turns a failure into the
// process's non-zero exit via cobra's own error-printing path.
func report(res result.QueryResult) error {
	if res.Ok() {
		fmt.Println("OK")

		return nil
	}

	return res
}
