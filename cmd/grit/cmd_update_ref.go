package main

import (
	"github.com/spf13/cobra"
)

func newUpdateRefCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-ref <ref> <object>",
		Short: "Point a ref at an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			h, err := r.Resolve(args[1])
			if err != nil {
				return err
			}
			return r.UpdateRef(args[0], h)
		},
	}
}
