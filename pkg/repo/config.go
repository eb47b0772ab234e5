package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/zlib"
	"gopkg.in/ini.v1"
)

// Config wraps the repository's ini-format .git/config.
type Config struct {
	file *ini.File
}

// DefaultConfig returns the settings written by Init.
func DefaultConfig() *Config {
	f := ini.Empty()
	core := f.Section("core")
	core.Key("repositoryformatversion").SetValue("0")
	core.Key("filemode").SetValue("false")
	core.Key("bare").SetValue("false")
	return &Config{file: f}
}

// LoadConfig reads an ini config file. A missing file is an error: every
// repository carries one.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %s is missing", path)
	}
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &Config{file: f}, nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	if err := c.file.SaveTo(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// lookup reads a key without creating it. ini's Section and Key accessors
// add missing entries, which would then be written back by Save.
func (c *Config) lookup(section, name string) (*ini.Key, bool) {
	sec, err := c.file.GetSection(section)
	if err != nil {
		return nil, false
	}
	key, err := sec.GetKey(name)
	if err != nil {
		return nil, false
	}
	return key, true
}

// FormatVersion returns core.repositoryformatversion.
func (c *Config) FormatVersion() (int, error) {
	key, ok := c.lookup("core", "repositoryformatversion")
	if !ok {
		return 0, fmt.Errorf("read config: core.repositoryformatversion is not set")
	}
	v, err := key.Int()
	if err != nil {
		return 0, fmt.Errorf("read config: core.repositoryformatversion: %w", err)
	}
	return v, nil
}

// CompressionLevel returns core.compression if it is a valid zlib level,
// and the default level otherwise.
func (c *Config) CompressionLevel() int {
	key, ok := c.lookup("core", "compression")
	if !ok {
		return zlib.DefaultCompression
	}
	level, err := key.Int()
	if err != nil || level < zlib.DefaultCompression || level > zlib.BestCompression {
		return zlib.DefaultCompression
	}
	return level
}

// Get returns the value of a "section.name" key, or "" if unset.
func (c *Config) Get(key string) (string, error) {
	section, name, err := splitConfigKey(key)
	if err != nil {
		return "", err
	}
	k, ok := c.lookup(section, name)
	if !ok {
		return "", nil
	}
	return k.String(), nil
}

// Set assigns a "section.name" key.
func (c *Config) Set(key, value string) error {
	section, name, err := splitConfigKey(key)
	if err != nil {
		return err
	}
	c.file.Section(section).Key(name).SetValue(value)
	return nil
}

func splitConfigKey(key string) (string, string, error) {
	section, name, ok := strings.Cut(key, ".")
	if !ok || section == "" || name == "" {
		return "", "", fmt.Errorf("invalid config key %q", key)
	}
	return section, name, nil
}
