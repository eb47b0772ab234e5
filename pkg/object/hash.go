package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Hash is a 40-character lowercase hex-encoded SHA-1 digest.
type Hash string

// HashSize is the length in bytes of a raw digest.
const HashSize = sha1.Size

// HashObject computes the SHA-1 of the envelope "type len\0content".
func HashObject(objType ObjectType, content []byte) Hash {
	h := sha1.New()
	h.Write(envelope(objType, len(content)))
	h.Write(content)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// envelope returns the "type len\0" header that frames stored content.
func envelope(objType ObjectType, n int) []byte {
	hdr := make([]byte, 0, len(objType)+12)
	hdr = append(hdr, objType...)
	hdr = append(hdr, ' ')
	hdr = strconv.AppendInt(hdr, int64(n), 10)
	return append(hdr, 0)
}

// ParseHash validates s as a full hex digest and returns it lowercased.
func ParseHash(s string) (Hash, error) {
	if len(s) != 2*HashSize {
		return "", fmt.Errorf("%w: %q: want %d hex characters", ErrInvalidHash, s, 2*HashSize)
	}
	s = strings.ToLower(s)
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	return Hash(s), nil
}

// HashFromRaw renders a raw big-endian digest as a Hash.
func HashFromRaw(raw []byte) Hash {
	return Hash(hex.EncodeToString(raw))
}

// Raw decodes the hex digest into its 20 raw bytes.
func (h Hash) Raw() ([HashSize]byte, error) {
	var out [HashSize]byte
	if len(h) != 2*HashSize {
		return out, fmt.Errorf("%w: %q", ErrInvalidHash, string(h))
	}
	if _, err := hex.Decode(out[:], []byte(h)); err != nil {
		return out, fmt.Errorf("%w: %q", ErrInvalidHash, string(h))
	}
	return out, nil
}

// Short returns the abbreviated form used in human-facing output.
func (h Hash) Short() string {
	if len(h) < 7 {
		return string(h)
	}
	return string(h[:7])
}

func (h Hash) String() string { return string(h) }
