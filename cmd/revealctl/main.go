// Command revealctl is the CLI entrypoint for the verification engine:
// local query execution against fixture components (spec.md §8.3) and a
// serve subcommand for the long-running gRPC-facing process. Modeled on
// the teacher's examples/ directory convention of one runnable main per
// demonstrated capability, consolidated here into one cobra-based binary
// with subcommands instead of N separate mains.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "revealctl",
		Short: "Symbolic verification engine for timed input/output automata networks",
	}
	root.AddCommand(newQueryCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newComponentCmd())

	return root
}
