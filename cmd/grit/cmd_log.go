package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/grit/pkg/object"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log [commit]",
		Short: "Print commit history as a graphviz digraph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rev := "HEAD"
			if len(args) > 0 {
				rev = args[0]
			}

			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			start, err := r.Resolve(rev)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "digraph log{")
			fmt.Fprintln(out, "  node[shape=rect]")
			err = r.Log(start, func(h object.Hash, c *object.Commit) error {
				fmt.Fprintf(out, "  c_%s [label=\"%s: %s\"]\n", h, h.Short(), graphvizLabel(c.Message()))
				for _, p := range c.Parents() {
					fmt.Fprintf(out, "  c_%s -> c_%s;\n", h, p)
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "}")
			return nil
		},
	}
}

// graphvizLabel returns the first line of msg escaped for a quoted label.
func graphvizLabel(msg string) string {
	msg = strings.TrimSpace(msg)
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	msg = strings.ReplaceAll(msg, `\`, `\\`)
	return strings.ReplaceAll(msg, `"`, `\"`)
}
