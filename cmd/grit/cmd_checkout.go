package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/grit/pkg/checkout"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <commit-or-tree> <empty-dir>",
		Short: "Write a commit or tree into an empty directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}

			engine := checkout.NewEngine(r.Store, checkout.WithLogger(logger))
			if err := engine.MaterializeRevision(r, args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "checked out %s into %s\n", args[0], args[1])
			return nil
		},
	}
}
