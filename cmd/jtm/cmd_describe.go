package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/classmodel/format"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <type>...",
		Short: "Render types in the configured output format",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.NewEncoder(a.cfg.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			for _, name := range args {
				t, err := a.lookup(name)
				if err != nil {
					return err
				}
				if err := enc.Encode(t); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
