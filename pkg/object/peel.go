package object

import (
	"errors"
	"fmt"
)

// ErrNotTreeish is returned when an object does not lead to a tree.
var ErrNotTreeish = errors.New("object does not resolve to a tree")

// maxPeel bounds tag-to-tag indirection.
const maxPeel = 16

// Reader is the read side of an object store.
type Reader interface {
	Read(h Hash) (Object, error)
}

// PeelToTree follows commit "tree" and tag "object" headers from obj until
// it reaches a tree.
func PeelToTree(r Reader, obj Object) (*Tree, error) {
	for i := 0; i < maxPeel; i++ {
		var next Hash
		switch o := obj.(type) {
		case *Tree:
			return o, nil
		case *Commit:
			next = o.TreeHash()
		case *Tag:
			next = o.Target()
		default:
			return nil, fmt.Errorf("%w: %s", ErrNotTreeish, obj.Type())
		}
		if next == "" {
			return nil, fmt.Errorf("%w: %s has no target", ErrNotTreeish, obj.Type())
		}
		var err error
		if obj, err = r.Read(next); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: tag chain longer than %d", ErrNotTreeish, maxPeel)
}
