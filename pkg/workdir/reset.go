package workdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arvo-vcs/arvo/pkg/arvoerr"
	"github.com/arvo-vcs/arvo/pkg/object"
)

// Reset removes every directory and file under root except StateFile,
// then writes every blob reachable from tree (root tree and all
// subtrees, at every depth) to its recorded path under root. A partial
// failure is reported as arvoerr.ErrIO; the caller may retry.
func Reset(root string, treeID object.ID, store *object.Store) error {
	if err := clearWorkingDir(root); err != nil {
		return err
	}
	tree, ok := store.Tree(treeID)
	if !ok {
		return fmt.Errorf("%w: reset: missing tree %s", object.ErrCorruption, treeID)
	}
	return writeTree(root, tree, store)
}

func clearWorkingDir(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: reset: read %s: %v", arvoerr.ErrIO, root, err)
	}
	for _, entry := range entries {
		if entry.Name() == StateFile {
			continue
		}
		full := filepath.Join(root, entry.Name())
		if err := os.RemoveAll(full); err != nil {
			return fmt.Errorf("%w: reset: remove %s: %v", arvoerr.ErrIO, full, err)
		}
	}
	return nil
}

func writeTree(root string, tree *object.Tree, store *object.Store) error {
	for _, line := range tree.Lines {
		full := filepath.Join(root, filepath.FromSlash(line.Path))
		switch line.Kind {
		case object.LineBlob:
			blob, ok := store.Blob(line.ID)
			if !ok {
				return fmt.Errorf("%w: reset: missing blob %s", object.ErrCorruption, line.ID)
			}
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return fmt.Errorf("%w: reset: mkdir %s: %v", arvoerr.ErrIO, filepath.Dir(full), err)
			}
			if err := os.WriteFile(full, blob.Data, 0o644); err != nil {
				return fmt.Errorf("%w: reset: write %s: %v", arvoerr.ErrIO, full, err)
			}
		case object.LineTree:
			subtree, ok := store.Tree(line.ID)
			if !ok {
				return fmt.Errorf("%w: reset: missing tree %s", object.ErrCorruption, line.ID)
			}
			if err := os.MkdirAll(full, 0o755); err != nil {
				return fmt.Errorf("%w: reset: mkdir %s: %v", arvoerr.ErrIO, full, err)
			}
			if err := writeTree(root, subtree, store); err != nil {
				return err
			}
		}
	}
	return nil
}
