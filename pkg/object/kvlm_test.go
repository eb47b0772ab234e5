package object

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleCommit = "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n" +
	"parent 1111111111111111111111111111111111111111\n" +
	"parent 2222222222222222222222222222222222222222\n" +
	"author A U Thor <author@example.com> 1700000000 +0000\n" +
	"committer C O Mitter <committer@example.com> 1700000100 +0000\n" +
	"gpgsig -----BEGIN PGP SIGNATURE-----\n" +
	" \n" +
	" iQIzBAABCAAdFiEE\n" +
	" -----END PGP SIGNATURE-----\n" +
	"\n" +
	"Merge branch 'topic'\n" +
	"\n" +
	"Body text.\n"

func TestParseKvlmMultiValuedHeader(t *testing.T) {
	kv, err := ParseKvlm([]byte(sampleCommit))
	if err != nil {
		t.Fatalf("ParseKvlm: %v", err)
	}

	want := []string{
		"1111111111111111111111111111111111111111",
		"2222222222222222222222222222222222222222",
	}
	if diff := cmp.Diff(want, kv.GetAll("parent")); diff != "" {
		t.Errorf("parent values (-want +got):\n%s", diff)
	}
	if got := kv.GetAll("tree"); len(got) != 1 {
		t.Errorf("tree: got %d values, want a single value", len(got))
	}

	wantKeys := []string{"tree", "parent", "author", "committer", "gpgsig"}
	if diff := cmp.Diff(wantKeys, kv.Keys()); diff != "" {
		t.Errorf("key order (-want +got):\n%s", diff)
	}
	if kv.Message != "Merge branch 'topic'\n\nBody text.\n" {
		t.Errorf("Message: got %q", kv.Message)
	}
}

func TestParseKvlmContinuation(t *testing.T) {
	kv, err := ParseKvlm([]byte(sampleCommit))
	if err != nil {
		t.Fatalf("ParseKvlm: %v", err)
	}
	want := "-----BEGIN PGP SIGNATURE-----\n\niQIzBAABCAAdFiEE\n-----END PGP SIGNATURE-----"
	if got := kv.Get("gpgsig"); got != want {
		t.Errorf("gpgsig:\n  got:  %q\n  want: %q", got, want)
	}
}

func TestKvlmSerializeReproducesInput(t *testing.T) {
	kv, err := ParseKvlm([]byte(sampleCommit))
	if err != nil {
		t.Fatalf("ParseKvlm: %v", err)
	}
	if got := string(kv.Serialize()); got != sampleCommit {
		t.Errorf("Serialize mismatch:\n  got:  %q\n  want: %q", got, sampleCommit)
	}
}

func TestKvlmRoundTrip(t *testing.T) {
	var orig Kvlm
	orig.Add("tree", "4b825dc642cb6eb9a060e54bf8d69288fbee4904")
	orig.Add("parent", "b")
	orig.Add("author", "someone")
	orig.Add("parent", "a")
	orig.Add("note", "first line\nsecond line\n indented third\n")
	orig.Message = "subject\n\n  body keeps its bytes \x00\n"

	got, err := ParseKvlm(orig.Serialize())
	if err != nil {
		t.Fatalf("ParseKvlm: %v", err)
	}
	if diff := cmp.Diff(orig, *got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "a"}, got.GetAll("parent")); diff != "" {
		t.Errorf("parent order (-want +got):\n%s", diff)
	}
}

func TestParseKvlmNoHeaders(t *testing.T) {
	kv, err := ParseKvlm([]byte("\nonly a message"))
	if err != nil {
		t.Fatalf("ParseKvlm: %v", err)
	}
	if len(kv.Keys()) != 0 {
		t.Errorf("Keys: got %v, want none", kv.Keys())
	}
	if kv.Message != "only a message" {
		t.Errorf("Message: got %q", kv.Message)
	}
}

func TestParseKvlmMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "unterminated value", input: "tree abc"},
		{name: "missing blank line", input: "tree abc\n"},
		{name: "line without value", input: "tree abc\nnovalue\n\nmsg"},
		{name: "empty key", input: " value\n\nmsg"},
		{name: "continuation at end", input: "key a\n more\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv, err := ParseKvlm([]byte(tc.input))
			if !errors.Is(err, ErrMalformedKvlm) {
				t.Fatalf("ParseKvlm(%q): got err %v, want ErrMalformedKvlm", tc.input, err)
			}
			if kv != nil {
				t.Errorf("ParseKvlm(%q) returned a partial mapping", tc.input)
			}
		})
	}
}

func TestKvlmSetAndDelete(t *testing.T) {
	var kv Kvlm
	kv.Add("a", "1")
	kv.Add("b", "2")
	kv.Add("c", "3")

	kv.Set("a", "x", "y")
	if diff := cmp.Diff([]string{"a", "b", "c"}, kv.Keys()); diff != "" {
		t.Errorf("Set moved key (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y"}, kv.GetAll("a")); diff != "" {
		t.Errorf("Set values (-want +got):\n%s", diff)
	}

	kv.Delete("b")
	if kv.Has("b") {
		t.Error("Delete left key b in place")
	}
	if diff := cmp.Diff([]string{"a", "c"}, kv.Keys()); diff != "" {
		t.Errorf("Delete order (-want +got):\n%s", diff)
	}

	kv.Set("c")
	if kv.Has("c") {
		t.Error("Set with no values should remove the key")
	}
	if kv.Get("missing") != "" {
		t.Error("Get of a missing key should be empty")
	}
}
