package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/classmodel/typemodel"
)

func newMembersCmd(a *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "members <type>",
		Short: "List fields, constructors and methods in sorted order",
		Long: `List the members of a class or interface, one per line:

  field        <name> <type> <modifiers>
  constructor  <parameters> <modifiers>
  method       <name> <parameters> <return type> <modifiers>

Members are sorted the way the line format sorts them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch kind {
			case "all", "fields", "constructors", "methods":
			default:
				return errors.Newf("unknown member kind %q, want all, fields, constructors or methods", kind)
			}
			t, err := a.lookupDeclared(args[0])
			if err != nil {
				return err
			}
			return writeMembers(cmd.OutOrStdout(), t, kind)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "all", "members to list (all, fields, constructors, methods)")

	return cmd
}

func writeMembers(w io.Writer, t memberLister, kind string) error {
	if kind == "all" || kind == "fields" {
		fields, err := t.FieldsSorted()
		if err != nil {
			return err
		}
		for _, f := range fields {
			fmt.Fprintf(w, "field\t%s\t%s\t%s\n", f.Name(), f.TypeName(), modifierList(f.Modifiers()))
		}
	}
	if ct, ok := t.(*typemodel.ClassType); ok && (kind == "all" || kind == "constructors") {
		ctors, err := ct.ConstructorsSorted()
		if err != nil {
			return err
		}
		for _, c := range ctors {
			fmt.Fprintf(w, "constructor\t%s\t%s\n", c.Parameters(), modifierList(c.Modifiers()))
		}
	}
	if kind == "all" || kind == "methods" {
		methods, err := t.MethodsSorted()
		if err != nil {
			return err
		}
		for _, m := range methods {
			fmt.Fprintf(w, "method\t%s\t%s\t%s\t%s\n", m.Name(), m.Parameters(), m.ReturnTypeName(), modifierList(m.Modifiers()))
		}
	}
	return nil
}

func modifierList(mods []typemodel.Modifier) string {
	if len(mods) == 0 {
		return "-"
	}
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.String()
	}
	return strings.Join(names, ",")
}
