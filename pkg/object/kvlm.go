package object

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Kvlm is the key-value-list-with-message form backing commit and tag
// objects:
//
//	tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904
//	parent 3c4e9cd789d88d8d89c1073707c3585e41b0e614
//	author A U Thor <author@example.com> 1700000000 +0000
//	gpgsig -----BEGIN PGP SIGNATURE-----
//	 <continuation lines start with one space>
//
//	message bytes
//
// Header keys keep their first-seen order. A key seen once holds a single
// value; repeated keys accumulate values in input order. The message lives
// in its own field, outside the header key space.
type Kvlm struct {
	keys   []string
	values map[string][]string

	// Message is every byte after the blank separator line, verbatim.
	Message string
}

// ParseKvlm parses a KVLM payload. It never returns a partially built
// mapping: any framing error discards everything parsed so far.
func ParseKvlm(data []byte) (*Kvlm, error) {
	kv := &Kvlm{}
	pos := 0
	for {
		if pos >= len(data) {
			return nil, fmt.Errorf("%w: missing blank line before message", ErrMalformedKvlm)
		}
		if data[pos] == '\n' {
			kv.Message = string(data[pos+1:])
			return kv, nil
		}

		rest := data[pos:]
		spc := bytes.IndexByte(rest, ' ')
		nl := bytes.IndexByte(rest, '\n')
		if spc < 0 || (nl >= 0 && nl < spc) {
			return nil, fmt.Errorf("%w: header line at offset %d has no value", ErrMalformedKvlm, pos)
		}
		if spc == 0 {
			return nil, fmt.Errorf("%w: empty key at offset %d", ErrMalformedKvlm, pos)
		}

		// Find the newline that ends the logical value. A newline followed
		// by a space is a continuation and belongs to the value.
		end := spc
		for {
			i := bytes.IndexByte(rest[end+1:], '\n')
			if i < 0 {
				return nil, fmt.Errorf("%w: unterminated value for key %q", ErrMalformedKvlm, rest[:spc])
			}
			end += 1 + i
			if end+1 < len(rest) && rest[end+1] == ' ' {
				continue
			}
			break
		}

		value := bytes.ReplaceAll(rest[spc+1:end], []byte("\n "), []byte("\n"))
		kv.Add(string(rest[:spc]), string(value))
		pos += end + 1
	}
}

// Serialize renders the mapping back to wire form. Parse(Serialize(kv))
// reproduces key order, value multiplicity and the message bytes.
func (kv *Kvlm) Serialize() []byte {
	var buf bytes.Buffer
	for _, k := range kv.keys {
		for _, v := range kv.values[k] {
			buf.WriteString(k)
			buf.WriteByte(' ')
			buf.WriteString(strings.ReplaceAll(v, "\n", "\n "))
			buf.WriteByte('\n')
		}
	}
	buf.WriteByte('\n')
	buf.WriteString(kv.Message)
	return buf.Bytes()
}

// Keys returns header keys in first-seen order.
func (kv *Kvlm) Keys() []string {
	return slices.Clone(kv.keys)
}

func (kv *Kvlm) Has(key string) bool {
	_, ok := kv.values[key]
	return ok
}

// Get returns the first value stored under key, or "" if absent.
func (kv *Kvlm) Get(key string) string {
	vals := kv.values[key]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// GetAll returns every value stored under key in order.
func (kv *Kvlm) GetAll(key string) []string {
	return slices.Clone(kv.values[key])
}

// Add appends a value under key. The first Add creates a scalar entry; later
// ones turn it into an ordered list.
func (kv *Kvlm) Add(key, value string) {
	if kv.values == nil {
		kv.values = make(map[string][]string)
	}
	if _, ok := kv.values[key]; !ok {
		kv.keys = append(kv.keys, key)
	}
	kv.values[key] = append(kv.values[key], value)
}

// Set replaces all values under key. A new key goes to the end of the order;
// an existing key keeps its position.
func (kv *Kvlm) Set(key string, values ...string) {
	if len(values) == 0 {
		kv.Delete(key)
		return
	}
	if kv.values == nil {
		kv.values = make(map[string][]string)
	}
	if _, ok := kv.values[key]; !ok {
		kv.keys = append(kv.keys, key)
	}
	kv.values[key] = slices.Clone(values)
}

func (kv *Kvlm) Delete(key string) {
	if _, ok := kv.values[key]; !ok {
		return
	}
	delete(kv.values, key)
	kv.keys = slices.DeleteFunc(kv.keys, func(k string) bool { return k == key })
}

// Equal reports whether two mappings agree on key order, values and message.
func (kv Kvlm) Equal(other Kvlm) bool {
	if kv.Message != other.Message || !slices.Equal(kv.keys, other.keys) {
		return false
	}
	for _, k := range kv.keys {
		if !slices.Equal(kv.values[k], other.values[k]) {
			return false
		}
	}
	return true
}
