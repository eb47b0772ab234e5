// Package checkout projects stored trees onto a filesystem directory.
package checkout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/odvcencio/grit/pkg/object"
)

var (
	// ErrDestinationNotEmpty is returned when the checkout target already
	// holds files.
	ErrDestinationNotEmpty = errors.New("destination is not empty")

	ErrNotDirectory = errors.New("destination is not a directory")

	// ErrUnsupportedEntryKind is returned for symlink and submodule entries.
	ErrUnsupportedEntryKind = errors.New("unsupported tree entry kind")
)

// Resolver maps a revision name to an object hash.
type Resolver interface {
	Resolve(name string) (object.Hash, error)
}

// Engine materializes trees read from a store.
type Engine struct {
	store  object.Reader
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEngine(store object.Reader, opts ...Option) *Engine {
	e := &Engine{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaterializeRevision resolves rev through res and checks it out into dest.
func (e *Engine) MaterializeRevision(res Resolver, rev, dest string) error {
	h, err := res.Resolve(rev)
	if err != nil {
		return fmt.Errorf("checkout %s: %w", rev, err)
	}
	return e.MaterializeHash(h, dest)
}

// MaterializeHash reads the object under h and checks it out into dest.
func (e *Engine) MaterializeHash(h object.Hash, dest string) error {
	if err := checkDestination(dest); err != nil {
		return fmt.Errorf("checkout %s: %w", h, err)
	}
	obj, err := e.store.Read(h)
	if err != nil {
		return fmt.Errorf("checkout %s: %w", h, err)
	}
	return e.Materialize(obj, dest)
}

// Materialize writes the tree reachable from root into dest. A commit root
// is replaced by its "tree" header and a tag root by its target. dest must
// be absent or an empty directory; otherwise nothing is written.
//
// A failure partway through the walk leaves the files written so far in
// place.
func (e *Engine) Materialize(root object.Object, dest string) error {
	if err := checkDestination(dest); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	tree, err := object.PeelToTree(e.store, root)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("checkout: mkdir %q: %w", dest, err)
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("checkout: abs path: %w", err)
	}
	return e.writeTree(tree, abs)
}

// checkDestination enforces the absent-or-empty-directory precondition
// without modifying the filesystem.
func checkDestination(dest string) error {
	info, err := os.Stat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %q: %w", dest, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dest)
	}
	entries, err := os.ReadDir(dest)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dest, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrDestinationNotEmpty, dest)
	}
	return nil
}

func (e *Engine) writeTree(tree *object.Tree, dir string) error {
	for _, entry := range tree.Entries {
		if err := validEntryPath(entry.Path); err != nil {
			return err
		}
		dest := filepath.Join(dir, entry.Path)

		switch kind := entry.Kind(); kind {
		case object.KindSymlink, object.KindGitlink:
			return fmt.Errorf("checkout %q: %w: %s (mode %s)", dest, ErrUnsupportedEntryKind, kind, entry.Mode)
		}

		obj, err := e.store.Read(entry.Hash)
		if err != nil {
			return fmt.Errorf("checkout %q: %w", dest, err)
		}

		switch o := obj.(type) {
		case *object.Tree:
			if err := os.Mkdir(dest, 0o755); err != nil {
				return fmt.Errorf("checkout: mkdir %q: %w", dest, err)
			}
			e.logger.Debug("checkout dir", zap.String("path", dest), zap.String("hash", string(entry.Hash)))
			if err := e.writeTree(o, dest); err != nil {
				return err
			}
		case *object.Blob:
			if err := os.WriteFile(dest, o.Data, 0o644); err != nil {
				return fmt.Errorf("checkout: write %q: %w", dest, err)
			}
			e.logger.Debug("checkout file",
				zap.String("path", dest),
				zap.String("hash", string(entry.Hash)),
				zap.Int("size", len(o.Data)),
			)
		default:
			return fmt.Errorf("checkout %q: %w: %s object", dest, ErrUnsupportedEntryKind, obj.Type())
		}
	}
	return nil
}

// validEntryPath rejects names that would escape the destination.
func validEntryPath(p string) error {
	if p == "" || p == "." || p == ".." || strings.ContainsAny(p, `/\`) {
		return fmt.Errorf("%w: unsafe entry path %q", object.ErrMalformedTree, p)
	}
	return nil
}
