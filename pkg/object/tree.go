package object

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

const (
	// Tree mode strings as written on disk. Directories use the five-digit
	// form; readers accept both five and six digits.
	ModeFile       = "100644"
	ModeExecutable = "100755"
	ModeDir        = "40000"
	ModeSymlink    = "120000"
	ModeGitlink    = "160000"
)

// EntryKind classifies a tree entry by its mode family.
type EntryKind int

const (
	KindUnknown EntryKind = iota
	KindFile
	KindDir
	KindSymlink
	KindGitlink
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "blob"
	case KindDir:
		return "tree"
	case KindSymlink:
		return "symlink"
	case KindGitlink:
		return "commit"
	default:
		return "unknown"
	}
}

// TreeEntry is one entry in a tree object.
type TreeEntry struct {
	Mode string
	Path string
	Hash Hash
}

// Kind derives the entry family from the mode's leading digits.
func (e TreeEntry) Kind() EntryKind {
	switch normalizedMode(e.Mode)[:2] {
	case "10":
		return KindFile
	case "04":
		return KindDir
	case "12":
		return KindSymlink
	case "16":
		return KindGitlink
	default:
		return KindUnknown
	}
}

// NormalizedMode returns the mode left-padded to six digits.
func (e TreeEntry) NormalizedMode() string {
	return normalizedMode(e.Mode)
}

func normalizedMode(mode string) string {
	if len(mode) >= 6 {
		return mode
	}
	return strings.Repeat("0", 6-len(mode)) + mode
}

// sortKey orders regular files by bare path and everything else as if the
// path carried a trailing slash, so "foo.txt" sorts before directory "foo".
func (e TreeEntry) sortKey() string {
	if strings.HasPrefix(e.Mode, "10") {
		return e.Path
	}
	return e.Path + "/"
}

// SortTreeEntries sorts entries in place into canonical order.
func SortTreeEntries(entries []TreeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].sortKey() < entries[j].sortKey()
	})
}

// ParseTree decodes a binary tree payload. Each entry is
//
//	<mode> SP <path> NUL <20 raw hash bytes>
func ParseTree(data []byte) ([]TreeEntry, error) {
	var entries []TreeEntry
	pos := 0
	for pos < len(data) {
		next, e, err := parseTreeEntry(data, pos)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
		pos = next
	}
	return entries, nil
}

func parseTreeEntry(data []byte, start int) (int, TreeEntry, error) {
	spc := bytes.IndexByte(data[start:], ' ')
	if spc != 5 && spc != 6 {
		return 0, TreeEntry{}, fmt.Errorf("%w: mode separator at offset %d", ErrMalformedTree, start)
	}
	mode := string(data[start : start+spc])
	if !isOctal(mode) {
		return 0, TreeEntry{}, fmt.Errorf("%w: mode %q at offset %d", ErrMalformedTree, mode, start)
	}

	pathStart := start + spc + 1
	nul := bytes.IndexByte(data[pathStart:], 0)
	if nul < 0 {
		return 0, TreeEntry{}, fmt.Errorf("%w: unterminated path at offset %d", ErrMalformedTree, pathStart)
	}
	if nul == 0 {
		return 0, TreeEntry{}, fmt.Errorf("%w: empty path at offset %d", ErrMalformedTree, pathStart)
	}
	path := string(data[pathStart : pathStart+nul])

	hashStart := pathStart + nul + 1
	hashEnd := hashStart + HashSize
	if hashEnd > len(data) {
		return 0, TreeEntry{}, fmt.Errorf("%w: truncated hash for %q", ErrMalformedTree, path)
	}

	return hashEnd, TreeEntry{
		Mode: mode,
		Path: path,
		Hash: HashFromRaw(data[hashStart:hashEnd]),
	}, nil
}

// SerializeTree encodes entries in canonical order. The input slice is not
// modified.
func SerializeTree(entries []TreeEntry) ([]byte, error) {
	sorted := make([]TreeEntry, len(entries))
	copy(sorted, entries)
	SortTreeEntries(sorted)

	var buf bytes.Buffer
	for _, e := range sorted {
		if (len(e.Mode) != 5 && len(e.Mode) != 6) || !isOctal(e.Mode) {
			return nil, fmt.Errorf("%w: entry %q has mode %q", ErrMalformedTree, e.Path, e.Mode)
		}
		if e.Path == "" || strings.ContainsAny(e.Path, "/\x00") {
			return nil, fmt.Errorf("%w: invalid entry path %q", ErrMalformedTree, e.Path)
		}
		raw, err := e.Hash.Raw()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %w", ErrMalformedTree, e.Path, err)
		}
		buf.WriteString(e.Mode)
		buf.WriteByte(' ')
		buf.WriteString(e.Path)
		buf.WriteByte(0)
		buf.Write(raw[:])
	}
	return buf.Bytes(), nil
}

func isOctal(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return s != ""
}
