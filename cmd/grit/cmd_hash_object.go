package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/grit/pkg/object"
)

func newHashObjectCmd() *cobra.Command {
	var (
		typeName string
		write    bool
	)

	cmd := &cobra.Command{
		Use:   "hash-object [-t type] [-w] <file>",
		Short: "Compute an object ID and optionally store the object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			objType, err := object.ParseType(typeName)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}
			obj, err := object.Decode(objType, data)
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}

			var h object.Hash
			if write {
				r, err := openRepo(cmd)
				if err != nil {
					return err
				}
				h, err = r.Store.Write(obj)
				if err != nil {
					return err
				}
			} else {
				h, err = object.HashOf(obj)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", string(object.TypeBlob), "object type: blob, tree, commit or tag")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object into the object store")

	return cmd
}
