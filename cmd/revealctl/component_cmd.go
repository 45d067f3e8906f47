package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ecdar/reveal/cts"
	"github.com/ecdar/reveal/internal/serialize"
	"github.com/ecdar/reveal/quotient"
	"github.com/ecdar/reveal/zone/refimpl"
)

func newComponentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "component",
		Short: "Inspect and persist components (spec.md §6.3)",
	}
	cmd.AddCommand(newComponentGetCmd())
	cmd.AddCommand(newComponentQuotientCmd())

	return cmd
}

func newComponentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Dump a named component's declaration as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			build, ok := fixtures[args[0]]
			if !ok {
				_, err := loadSystem(args[0], refimpl.Kernel{}) // produces the "unknown component" error

				return err
			}

			return serialize.Write(os.Stdout, serialize.FromRaw(build()))
		},
	}
}

func newComponentQuotientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quotient <t> <s> <new-action>",
		Short: "Build T \\ S and dump the synthesized, pruned component as YAML",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cts.SetKernel(refimpl.Kernel{})
			t, err := loadSystem(args[0], refimpl.Kernel{})
			if err != nil {
				return err
			}
			s, err := loadSystem(args[1], refimpl.Kernel{})
			if err != nil {
				return err
			}

			cc, res := quotient.Build(t.Node, s.Node, t.Name, s.Name, args[2])
			if !res.Ok() {
				return res
			}

			return serialize.Write(os.Stdout, serialize.FromCompiled(cc))
		},
	}
}
