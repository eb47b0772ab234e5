package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/grit/pkg/object"
)

func newCatFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat-file <type> <object>",
		Short: "Print the content of a stored object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			want, err := object.ParseType(args[0])
			if err != nil {
				return err
			}

			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			h, err := r.Resolve(args[1])
			if err != nil {
				return err
			}
			obj, err := r.Store.Read(h)
			if err != nil {
				return err
			}
			if obj.Type() != want {
				return &object.TypeMismatchError{Hash: h, Got: obj.Type(), Want: want}
			}

			data, err := obj.Serialize()
			if err != nil {
				return fmt.Errorf("cat-file: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
