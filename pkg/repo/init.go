package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const defaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"

// Init creates a new repository at path. It creates the .git/ directory
// structure: objects/, refs/heads/, refs/tags/, HEAD, description and
// config. path may be missing or an existing directory; an existing
// non-empty .git/ is an error.
func Init(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("init: %s is not a directory", abs)
	}

	gitDir := filepath.Join(abs, metaDirName)
	entries, err := os.ReadDir(gitDir)
	switch {
	case err == nil && len(entries) > 0:
		return nil, fmt.Errorf("init: %w at %s", ErrRepositoryExists, gitDir)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("init: %w", err)
	}

	dirs := []string{
		filepath.Join(gitDir, "objects"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	files := map[string]string{
		"HEAD":        "ref: refs/heads/main\n",
		"description": defaultDescription,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(gitDir, name), []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("init: write %s: %w", name, err)
		}
	}

	cfg := DefaultConfig()
	if err := cfg.Save(filepath.Join(gitDir, "config")); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	return newRepo(abs, gitDir, cfg, opts), nil
}
