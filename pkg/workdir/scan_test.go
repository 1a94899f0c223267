package workdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arvo-vcs/arvo/pkg/object"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestScanNested(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "world")

	store := object.NewStore()
	treeID, err := Scan(root, store)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	tree, ok := store.Tree(treeID)
	if !ok {
		t.Fatalf("root tree %s not stored", treeID)
	}
	if len(tree.Lines) != 2 {
		t.Fatalf("len(tree.Lines) = %d, want 2", len(tree.Lines))
	}
	if tree.Lines[0].Path != "a.txt" || tree.Lines[0].Kind != object.LineBlob {
		t.Fatalf("tree.Lines[0] = %+v, want a.txt blob", tree.Lines[0])
	}
	if tree.Lines[1].Path != "sub/" || tree.Lines[1].Kind != object.LineTree {
		t.Fatalf("tree.Lines[1] = %+v, want sub/ tree", tree.Lines[1])
	}
}

func TestScanSkipsStateFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, StateFile), "persisted state")
	writeFile(t, filepath.Join(root, "a.txt"), "hello")

	store := object.NewStore()
	treeID, err := Scan(root, store)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	tree, _ := store.Tree(treeID)
	if len(tree.Lines) != 1 || tree.Lines[0].Path != "a.txt" {
		t.Fatalf("Scan should have skipped %s, got %+v", StateFile, tree.Lines)
	}
}

func TestScanDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")
	writeFile(t, filepath.Join(root, "b.txt"), "world")

	s1 := object.NewStore()
	id1, err := Scan(root, s1)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	s2 := object.NewStore()
	id2, err := Scan(root, s2)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("Scan not deterministic: %s != %s", id1, id2)
	}
}
