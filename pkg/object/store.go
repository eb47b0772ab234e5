package object

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/zlib"
	"go.uber.org/zap"
)

// Locator resolves paths inside a repository's metadata directory. The store
// never searches for a repository on its own.
type Locator interface {
	// ResolvePath joins segments onto the metadata root.
	ResolvePath(segments ...string) string
	// EnsureDir creates path if missing and returns it. An existing
	// directory is success.
	EnsureDir(path string) (string, error)
}

// DirLocator is a Locator rooted at a plain directory.
type DirLocator string

func (d DirLocator) ResolvePath(segments ...string) string {
	return filepath.Join(append([]string{string(d)}, segments...)...)
}

func (d DirLocator) EnsureDir(path string) (string, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123... Each file holds the
// zlib-compressed bytes of "type len\0content".
//
// Objects are written once. Concurrent writers of the same object race
// harmlessly because the path is a function of the content. Readers racing
// a writer of the same object are not synchronized.
type Store struct {
	loc    Locator
	level  int
	logger *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCompressionLevel sets the zlib level used for new objects.
func WithCompressionLevel(level int) StoreOption {
	return func(s *Store) { s.level = level }
}

func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store whose objects/ directory is resolved through loc.
// Bucket directories are created lazily on first write.
func NewStore(loc Locator, opts ...StoreOption) *Store {
	s := &Store{
		loc:    loc,
		level:  zlib.DefaultCompression,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return s.loc.ResolvePath("objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if _, err := ParseHash(string(h)); err != nil {
		return false
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Write stores obj and returns its content hash. An object already present
// under that hash is left untouched. New objects are written to a temp file
// in the bucket and renamed into place, so no reader sees partial content.
func (s *Store) Write(obj Object) (Hash, error) {
	t, data, err := Encode(obj)
	if err != nil {
		return "", fmt.Errorf("object write: %w", err)
	}
	return s.WriteRaw(t, data)
}

// WriteRaw stores already-serialized content under the given type.
func (s *Store) WriteRaw(objType ObjectType, data []byte) (Hash, error) {
	if _, ok := constructors[objType]; !ok {
		return "", fmt.Errorf("object write: %w: %q", ErrUnknownType, string(objType))
	}
	h := HashObject(objType, data)

	dir, err := s.loc.EnsureDir(s.loc.ResolvePath("objects", string(h[:2])))
	if err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	dest := s.objectPath(h)
	if _, err := os.Stat(dest); err == nil {
		s.logger.Debug("object exists", zap.String("hash", string(h)), zap.String("type", string(objType)))
		return h, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("object write stat: %w", err)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, s.level)
	if err != nil {
		return "", fmt.Errorf("object write compress: %w", err)
	}
	if _, err := zw.Write(envelope(objType, len(data))); err != nil {
		return "", fmt.Errorf("object write compress: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("object write compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("object write compress: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}

	s.logger.Debug("object written",
		zap.String("hash", string(h)),
		zap.String("type", string(objType)),
		zap.Int("size", len(data)),
	)
	return h, nil
}

// ReadRaw retrieves an object by hash, returning its type and content with
// the envelope validated and stripped.
func (s *Store) ReadRaw(h Hash) (ObjectType, []byte, error) {
	if _, err := ParseHash(string(h)); err != nil {
		return "", nil, fmt.Errorf("object read: %w", err)
	}

	f, err := os.Open(s.objectPath(h))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("object read %s: %w", h, ErrNotFound)
		}
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}
	defer f.Close()

	zr, err := zlib.NewReader(f)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w: %v", h, ErrCorrupt, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w: %v", h, ErrCorrupt, err)
	}

	objType, content, err := splitEnvelope(raw)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return objType, content, nil
}

// splitEnvelope parses "type len\0content". The length check comes before
// the type check so truncated objects of any type report ErrCorrupt.
func splitEnvelope(raw []byte) (ObjectType, []byte, error) {
	nul := bytes.IndexByte(raw, 0)
	if nul < 0 {
		return "", nil, fmt.Errorf("%w: no header terminator", ErrCorrupt)
	}
	header := raw[:nul]
	content := raw[nul+1:]

	spc := bytes.IndexByte(header, ' ')
	if spc < 0 {
		return "", nil, fmt.Errorf("%w: invalid header %q", ErrCorrupt, header)
	}
	length, err := strconv.Atoi(string(header[spc+1:]))
	if err != nil || length < 0 {
		return "", nil, fmt.Errorf("%w: invalid length %q", ErrCorrupt, header[spc+1:])
	}
	if len(content) != length {
		return "", nil, fmt.Errorf("%w: length mismatch (header=%d, actual=%d)", ErrCorrupt, length, len(content))
	}

	objType, err := ParseType(string(header[:spc]))
	if err != nil {
		return "", nil, err
	}
	return objType, content, nil
}

// Read retrieves and decodes an object.
func (s *Store) Read(h Hash) (Object, error) {
	objType, content, err := s.ReadRaw(h)
	if err != nil {
		return nil, err
	}
	obj, err := Decode(objType, content)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return obj, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// ReadBlob reads an object and requires it to be a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	obj, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	b, ok := obj.(*Blob)
	if !ok {
		return nil, typeMismatch(h, obj.Type(), TypeBlob)
	}
	return b, nil
}

// ReadTree reads an object and requires it to be a Tree.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	obj, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	tr, ok := obj.(*Tree)
	if !ok {
		return nil, typeMismatch(h, obj.Type(), TypeTree)
	}
	return tr, nil
}

// ReadCommit reads an object and requires it to be a Commit.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	obj, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*Commit)
	if !ok {
		return nil, typeMismatch(h, obj.Type(), TypeCommit)
	}
	return c, nil
}

// TypeMismatchError reports an object of the wrong type for the caller.
type TypeMismatchError struct {
	Hash Hash
	Got  ObjectType
	Want ObjectType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("object %s: type mismatch: got %q, want %q", e.Hash, e.Got, e.Want)
}

func typeMismatch(h Hash, got, want ObjectType) error {
	return &TypeMismatchError{Hash: h, Got: got, Want: want}
}
