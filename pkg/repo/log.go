package repo

import (
	"fmt"

	"github.com/odvcencio/grit/pkg/object"
)

// LogFunc is called once per reachable commit.
type LogFunc func(h object.Hash, c *object.Commit) error

// Log visits every commit reachable from start exactly once, depth-first,
// taking parents in header order.
func (r *Repo) Log(start object.Hash, fn LogFunc) error {
	seen := make(map[object.Hash]struct{})
	stack := []object.Hash{start}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}

		c, err := r.Store.ReadCommit(h)
		if err != nil {
			return fmt.Errorf("log %s: %w", h, err)
		}
		if err := fn(h, c); err != nil {
			return err
		}

		parents := c.Parents()
		for i := len(parents) - 1; i >= 0; i-- {
			if _, ok := seen[parents[i]]; !ok {
				stack = append(stack, parents[i])
			}
		}
	}
	return nil
}
