package object

import "errors"

var (
	// ErrNotFound is returned when no object is stored under a hash.
	ErrNotFound = errors.New("object not found")

	// ErrCorrupt reports broken framing: a bad compressed stream, a missing
	// header separator, or a declared length that disagrees with the content.
	ErrCorrupt = errors.New("corrupt object")

	// ErrUnknownType is returned for a type tag outside blob, tree, commit, tag.
	ErrUnknownType = errors.New("unknown object type")

	ErrMalformedTree = errors.New("malformed tree")

	ErrMalformedKvlm = errors.New("malformed kvlm")

	ErrInvalidHash = errors.New("invalid hash")
)
