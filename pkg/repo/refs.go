package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/odvcencio/grit/pkg/object"
)

var (
	ErrUnknownRevision   = errors.New("unknown revision")
	ErrAmbiguousRevision = errors.New("ambiguous revision")
	ErrInvalidRefName    = errors.New("invalid ref name")
)

const (
	// minAbbrev is the shortest hash prefix Resolve accepts.
	minAbbrev = 4
	// maxSymrefDepth bounds "ref: " indirection.
	maxSymrefDepth = 8

	refsLockName = "refs.flock"
)

// Resolve maps a revision name to an object hash. It understands HEAD,
// full ref paths (refs/...), tag and branch short names, full hashes and
// unique abbreviated hashes of at least four hex digits.
func (r *Repo) Resolve(name string) (object.Hash, error) {
	if name == "" {
		return "", fmt.Errorf("resolve: %w: empty name", ErrUnknownRevision)
	}

	candidates := []string{name}
	if name != "HEAD" && !strings.HasPrefix(name, "refs/") {
		candidates = []string{
			filepath.ToSlash(filepath.Join("refs", "tags", name)),
			filepath.ToSlash(filepath.Join("refs", "heads", name)),
		}
	}
	for _, ref := range candidates {
		h, err := r.readRef(ref, 0)
		if err == nil {
			return h, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("resolve %q: %w", name, err)
		}
	}

	if h, err := object.ParseHash(name); err == nil {
		return h, nil
	}
	if len(name) >= minAbbrev && isHex(name) {
		return r.resolveAbbrev(strings.ToLower(name))
	}
	return "", fmt.Errorf("resolve %q: %w", name, ErrUnknownRevision)
}

// readRef reads a ref file under .git/, following symbolic refs.
func (r *Repo) readRef(ref string, depth int) (object.Hash, error) {
	if depth > maxSymrefDepth {
		return "", fmt.Errorf("ref %s: symbolic ref chain too deep", ref)
	}
	data, err := os.ReadFile(r.ResolvePath(filepath.FromSlash(ref)))
	if err != nil {
		return "", err
	}
	value := strings.TrimSpace(string(data))
	if target, ok := strings.CutPrefix(value, "ref: "); ok {
		return r.readRef(target, depth+1)
	}
	h, err := object.ParseHash(value)
	if err != nil {
		return "", fmt.Errorf("ref %s: %w", ref, err)
	}
	return h, nil
}

// resolveAbbrev scans the bucket named by the first two digits of prefix.
func (r *Repo) resolveAbbrev(prefix string) (object.Hash, error) {
	bucket := r.ResolvePath("objects", prefix[:2])
	entries, err := os.ReadDir(bucket)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("resolve %q: %w", prefix, err)
	}

	var matches []object.Hash
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix[2:]) {
			continue
		}
		if h, err := object.ParseHash(prefix[:2] + e.Name()); err == nil {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("resolve %q: %w", prefix, ErrUnknownRevision)
	case 1:
		return matches[0], nil
	default:
		sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
		short := make([]string, len(matches))
		for i, m := range matches {
			short[i] = m.Short()
		}
		return "", fmt.Errorf("resolve %q: %w: candidates %s", prefix, ErrAmbiguousRevision, strings.Join(short, ", "))
	}
}

// UpdateRef writes h to the named ref file under .git/. Parent directories
// are created as needed. Writers are serialized on .git/refs.flock and the
// ref file is replaced by rename.
func (r *Repo) UpdateRef(name string, h object.Hash) (retErr error) {
	if _, err := object.ParseHash(string(h)); err != nil {
		return fmt.Errorf("update ref %s: %w", name, err)
	}
	if !validRefName(name) {
		return fmt.Errorf("update ref %s: %w", name, ErrInvalidRefName)
	}
	path := r.ResolvePath(filepath.FromSlash(name))
	dir, err := r.EnsureDir(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("update ref %s: %w", name, err)
	}

	lock := flock.New(r.ResolvePath(refsLockName))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("update ref %s: lock: %w", name, err)
	}
	defer func() {
		retErr = multierr.Append(retErr, lock.Unlock())
	}()

	tmp, err := os.CreateTemp(dir, ".tmp-ref-*")
	if err != nil {
		return fmt.Errorf("update ref %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(string(h) + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("update ref %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("update ref %s: %w", name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("update ref %s: %w", name, err)
	}
	r.logger.Debug("ref updated", zap.String("ref", name), zap.String("hash", string(h)))
	return nil
}

// validRefName accepts HEAD and slash-separated names under refs/ whose
// components are non-empty and do not start with a dot.
func validRefName(name string) bool {
	if name == "HEAD" {
		return true
	}
	rest, ok := strings.CutPrefix(name, "refs/")
	if !ok {
		return false
	}
	for _, part := range strings.Split(rest, "/") {
		if part == "" || strings.HasPrefix(part, ".") || strings.ContainsAny(part, "\\\x00") {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
