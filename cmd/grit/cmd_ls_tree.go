package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/grit/pkg/object"
)

func newLsTreeCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "ls-tree [-r] <tree-ish>",
		Short: "List the contents of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			h, err := r.Resolve(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return r.WalkTree(h, recursive, func(p string, e object.TreeEntry) error {
				kind := e.Kind()
				if kind == object.KindUnknown {
					return fmt.Errorf("ls-tree %s: %w: mode %q", p, object.ErrMalformedTree, e.Mode)
				}
				if kind == object.KindSymlink {
					kind = object.KindFile
				}
				_, err := fmt.Fprintf(out, "%s %s %s\t%s\n", e.NormalizedMode(), kind, e.Hash, p)
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "recurse into subtrees")

	return cmd
}
