package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/odvcencio/grit/pkg/object"
)

var (
	ErrNotRepository    = errors.New("not a repository")
	ErrRepositoryExists = errors.New("repository already exists")

	// ErrUnsupportedFormat is returned for a repositoryformatversion other
	// than 0.
	ErrUnsupportedFormat = errors.New("unsupported repository format")
)

// metaDirName is the repository metadata directory inside the work tree.
const metaDirName = ".git"

// Repo represents an opened repository. It is the Locator handed to its
// object store.
type Repo struct {
	WorkTree string        // working directory root
	GitDir   string        // .git/ directory
	Config   *Config       // parsed .git/config
	Store    *object.Store // content-addressed object store

	logger *zap.Logger
}

// Option configures how a repository is opened.
type Option func(*Repo)

// WithLogger sets the logger shared with the object store.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Repo) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// ResolvePath joins segments onto the .git directory.
func (r *Repo) ResolvePath(segments ...string) string {
	return filepath.Join(append([]string{r.GitDir}, segments...)...)
}

// EnsureDir creates path and any missing parents. An existing directory is
// success.
func (r *Repo) EnsureDir(path string) (string, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("ensure dir %s: %w", path, err)
	}
	return path, nil
}

// Open opens the repository whose work tree is exactly path. It does not
// search parent directories; see Find.
func Open(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}
	gitDir := filepath.Join(abs, metaDirName)
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("open %s: %w", abs, ErrNotRepository)
	}

	cfg, err := LoadConfig(filepath.Join(gitDir, "config"))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	version, err := cfg.FormatVersion()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	if version != 0 {
		return nil, fmt.Errorf("open %s: %w: repositoryformatversion %d", abs, ErrUnsupportedFormat, version)
	}

	return newRepo(abs, gitDir, cfg, opts), nil
}

// Find searches upward from path for a directory containing .git/ and
// opens it.
func Find(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("find: abs path: %w", err)
	}

	cur := abs
	for {
		info, err := os.Stat(filepath.Join(cur, metaDirName))
		if err == nil && info.IsDir() {
			return Open(cur, opts...)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("find %s: %w (or any parent up to /)", abs, ErrNotRepository)
		}
		cur = parent
	}
}

func newRepo(workTree, gitDir string, cfg *Config, opts []Option) *Repo {
	r := &Repo{
		WorkTree: workTree,
		GitDir:   gitDir,
		Config:   cfg,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Store = object.NewStore(r,
		object.WithCompressionLevel(cfg.CompressionLevel()),
		object.WithLogger(r.logger),
	)
	return r
}
