package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/classmodel/format"
)

func newImportsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "imports <type>",
		Short: "List the types a source file declaring the type would import",
		Long: `List the types referenced by a class or interface that live outside
its own package and outside the always-available package, one per line in
sorted order. References come from the type's declaration, its members'
signatures and the classes named by its bytecode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.lookupDeclared(args[0])
			if err != nil {
				return err
			}
			names, err := format.Imports(t)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
