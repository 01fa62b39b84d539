package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOverridesCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "overrides <type>",
		Short: "List the methods a type overrides",
		Long: `List the methods declared by a class or interface that a superclass or
superinterface also declares or inherits. With --all every declared method
is listed, marked "override" or "new".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.lookupDeclared(args[0])
			if err != nil {
				return err
			}
			methods, err := t.MethodsSorted()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range methods {
				overridden, err := t.HasMethodOverridden(m)
				if err != nil {
					return err
				}
				switch {
				case all && overridden:
					fmt.Fprintf(out, "override\t%s%s\n", m.Name(), m.Parameters())
				case all:
					fmt.Fprintf(out, "new\t%s%s\n", m.Name(), m.Parameters())
				case overridden:
					fmt.Fprintf(out, "%s%s\n", m.Name(), m.Parameters())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every declared method")

	return cmd
}
