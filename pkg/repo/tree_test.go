package repo

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/odvcencio/grit/pkg/object"
)

func TestWalkTree(t *testing.T) {
	r := initRepo(t)
	a := writeBlob(t, r, "a")
	b := writeBlob(t, r, "b")

	sub, err := r.Store.Write(&object.Tree{Entries: []object.TreeEntry{
		{Mode: object.ModeFile, Path: "b.txt", Hash: b},
	}})
	if err != nil {
		t.Fatalf("Write sub: %v", err)
	}
	root, err := r.Store.Write(&object.Tree{Entries: []object.TreeEntry{
		{Mode: object.ModeDir, Path: "dir", Hash: sub},
		{Mode: object.ModeFile, Path: "a.txt", Hash: a},
	}})
	if err != nil {
		t.Fatalf("Write root: %v", err)
	}
	commit := writeCommit(t, r, root, "snapshot")

	list := func(h object.Hash, recursive bool) []string {
		t.Helper()
		var out []string
		err := r.WalkTree(h, recursive, func(p string, e object.TreeEntry) error {
			out = append(out, e.Kind().String()+" "+p)
			return nil
		})
		if err != nil {
			t.Fatalf("WalkTree: %v", err)
		}
		return out
	}

	if diff := cmp.Diff([]string{"blob a.txt", "tree dir"}, list(root, false)); diff != "" {
		t.Errorf("flat listing (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"blob a.txt", "blob dir/b.txt"}, list(commit, true)); diff != "" {
		t.Errorf("recursive listing via commit (-want +got):\n%s", diff)
	}
}
