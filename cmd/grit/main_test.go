package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odvcencio/grit/pkg/object"
)

// chdir changes the working directory for the duration of the test,
// restoring the original directory during cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatalf("Chdir: %v", err)
		}
	})
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("grit %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestHashObjectWithoutRepository(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.WriteFile("hello.txt", []byte("hello world\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out := mustRun(t, "hash-object", "hello.txt")
	if got := strings.TrimSpace(out); got != "3b18e512dba79e4c8300dd08aeb37f8e728b8dad" {
		t.Errorf("hash-object = %q", got)
	}
	if _, err := os.Stat(".git"); !os.IsNotExist(err) {
		t.Error("hash-object without -w created repository state")
	}
}

func TestWriteCatAndCheckout(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	mustRun(t, "init")

	if err := os.WriteFile("hello.txt", []byte("hello world\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	blob := strings.TrimSpace(mustRun(t, "hash-object", "-w", "hello.txt"))

	if got := mustRun(t, "cat-file", "blob", blob[:8]); got != "hello world\n" {
		t.Errorf("cat-file = %q", got)
	}
	if _, err := runCmd(t, "cat-file", "tree", blob); err == nil {
		t.Error("cat-file with the wrong type succeeded")
	}

	// Build a one-entry tree and a commit from raw payloads.
	raw, err := object.Hash(blob).Raw()
	if err != nil {
		t.Fatalf("decode hash: %v", err)
	}
	treePayload := append([]byte("100644 greeting.txt\x00"), raw[:]...)
	if err := os.WriteFile("tree.bin", treePayload, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	tree := strings.TrimSpace(mustRun(t, "hash-object", "-w", "-t", "tree", "tree.bin"))

	commitPayload := "tree " + tree + "\nauthor T <t@example.com> 1700000000 +0000\n\nfirst\n"
	if err := os.WriteFile("commit.txt", []byte(commitPayload), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	commit := strings.TrimSpace(mustRun(t, "hash-object", "-w", "-t", "commit", "commit.txt"))

	mustRun(t, "update-ref", "refs/heads/main", commit[:10])
	if got := strings.TrimSpace(mustRun(t, "rev-parse", "HEAD")); got != commit {
		t.Errorf("rev-parse HEAD = %q, want %q", got, commit)
	}

	ls := mustRun(t, "ls-tree", "main")
	if want := "100644 blob " + blob + "\tgreeting.txt\n"; ls != want {
		t.Errorf("ls-tree = %q, want %q", ls, want)
	}

	log := mustRun(t, "log", commit)
	if !strings.Contains(log, "digraph") || !strings.Contains(log, commit[:7]+": first") {
		t.Errorf("log output missing commit node:\n%s", log)
	}

	out := filepath.Join(dir, "out")
	mustRun(t, "checkout", "HEAD", out)
	data, err := os.ReadFile(filepath.Join(out, "greeting.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello world\n" {
		t.Errorf("checked out content = %q", data)
	}

	if _, err := runCmd(t, "checkout", commit, out); err == nil {
		t.Error("checkout into a non-empty directory succeeded")
	}
}

func TestGraphvizLabel(t *testing.T) {
	if got := graphvizLabel("  say \"hi\" \\ now\nsecond line\n"); got != `say \"hi\" \\ now` {
		t.Errorf("graphvizLabel = %q", got)
	}
}
