package repo

import (
	"fmt"
	"path"

	"github.com/odvcencio/grit/pkg/object"
)

// WalkTreeFunc is called for each listed entry with its slash-separated
// path relative to the walked tree.
type WalkTreeFunc func(p string, e object.TreeEntry) error

// WalkTree lists the tree reachable from h (a tree, commit or tag). With
// recursive set, subtrees are descended into instead of listed.
func (r *Repo) WalkTree(h object.Hash, recursive bool, fn WalkTreeFunc) error {
	obj, err := r.Store.Read(h)
	if err != nil {
		return fmt.Errorf("walk tree %s: %w", h, err)
	}
	tree, err := object.PeelToTree(r.Store, obj)
	if err != nil {
		return fmt.Errorf("walk tree %s: %w", h, err)
	}
	return r.walkTree(tree, "", recursive, fn)
}

func (r *Repo) walkTree(tree *object.Tree, prefix string, recursive bool, fn WalkTreeFunc) error {
	for _, e := range tree.Entries {
		p := path.Join(prefix, e.Path)
		if !recursive || e.Kind() != object.KindDir {
			if err := fn(p, e); err != nil {
				return err
			}
			continue
		}
		sub, err := r.Store.ReadTree(e.Hash)
		if err != nil {
			return fmt.Errorf("walk tree %s: %w", p, err)
		}
		if err := r.walkTree(sub, p, recursive, fn); err != nil {
			return err
		}
	}
	return nil
}
