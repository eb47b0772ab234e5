package object

import (
	"errors"
	"strings"
	"testing"
)

func TestHashObjectKnownDigests(t *testing.T) {
	tests := []struct {
		name    string
		objType ObjectType
		data    string
		want    Hash
	}{
		{name: "empty blob", objType: TypeBlob, data: "", want: "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{name: "hello world", objType: TypeBlob, data: "hello world\n", want: "3b18e512dba79e4c8300dd08aeb37f8e728b8dad"},
		{name: "empty tree", objType: TypeTree, data: "", want: "4b825dc642cb6eb9a060e54bf8d69288fbee4904"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HashObject(tc.objType, []byte(tc.data)); got != tc.want {
				t.Errorf("HashObject: got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestHashObjectEnvelope(t *testing.T) {
	data := []byte("hello")
	if HashObject(TypeBlob, data) != HashObject(TypeBlob, data) {
		t.Error("HashObject not deterministic")
	}
	if HashObject(TypeBlob, data) == HashObject(TypeCommit, data) {
		t.Error("Different types should produce different hashes")
	}
}

func TestParseHash(t *testing.T) {
	upper := strings.Repeat("AB", 20)
	h, err := ParseHash(upper)
	if err != nil {
		t.Fatalf("ParseHash(%q): %v", upper, err)
	}
	if string(h) != strings.ToLower(upper) {
		t.Errorf("ParseHash: got %q, want lowercase", h)
	}

	for _, bad := range []string{"", "abc", strings.Repeat("g", 40), strings.Repeat("a", 41)} {
		if _, err := ParseHash(bad); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("ParseHash(%q): got err %v, want ErrInvalidHash", bad, err)
		}
	}
}

func TestHashRawRoundTrip(t *testing.T) {
	h := Hash("0123456789abcdef0123456789abcdef01234567")
	raw, err := h.Raw()
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if raw[0] != 0x01 || raw[19] != 0x67 {
		t.Errorf("Raw is not big-endian: % x", raw)
	}
	if got := HashFromRaw(raw[:]); got != h {
		t.Errorf("HashFromRaw: got %s, want %s", got, h)
	}
	if h.Short() != "0123456" {
		t.Errorf("Short: got %q", h.Short())
	}
}
