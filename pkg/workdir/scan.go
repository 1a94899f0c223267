// Package workdir scans a working directory into a Tree and materializes
// a Tree back onto disk.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/arvo-vcs/arvo/pkg/arvoerr"
	"github.com/arvo-vcs/arvo/pkg/object"
)

// StateFile is the name of the persistence file at the working-directory
// root, excluded from every scan and sweep.
const StateFile = ".git"

// Scan recursively hashes the working directory rooted at root into a
// Tree, inserting every blob and subtree it encounters into store. The
// StateFile at root is skipped; everything else is included. Directory
// entries are visited in lexicographic order by name so that identical
// directory contents always produce the same tree ID.
func Scan(root string, store *object.Store) (object.ID, error) {
	id, _, err := scanDir(root, root, store)
	return id, err
}

func scanDir(root, dir string, store *object.Store) (object.ID, *object.Tree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return object.Zero, nil, fmt.Errorf("%w: read dir %s: %v", arvoerr.ErrIO, dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	tree := &object.Tree{}
	for _, entry := range entries {
		name := entry.Name()
		if dir == root && name == StateFile {
			continue
		}
		full := filepath.Join(dir, name)
		rel, err := filepath.Rel(root, full)
		if err != nil {
			return object.Zero, nil, fmt.Errorf("%w: relativize %s: %v", arvoerr.ErrIO, full, err)
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			subID, _, err := scanDir(root, full, store)
			if err != nil {
				return object.Zero, nil, err
			}
			tree.Lines = append(tree.Lines, object.TreeLine{
				Kind: object.LineTree,
				ID:   subID,
				Path: rel + "/",
			})
			continue
		}

		content, err := os.ReadFile(full)
		if err != nil {
			return object.Zero, nil, fmt.Errorf("%w: read file %s: %v", arvoerr.ErrIO, full, err)
		}
		blobID := store.PutBlob(&object.Blob{Data: content})
		tree.Lines = append(tree.Lines, object.TreeLine{
			Kind: object.LineBlob,
			ID:   blobID,
			Path: rel,
		})
	}

	id := store.PutTree(tree)
	return id, tree, nil
}
