// Package storage holds the top-level persisted repository state
// (Storage) and its load/save lifecycle against a single file at the
// working-directory root.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arvo-vcs/arvo/pkg/arvoerr"
	"github.com/arvo-vcs/arvo/pkg/object"
	"github.com/arvo-vcs/arvo/pkg/refstore"
	"github.com/arvo-vcs/arvo/pkg/workdir"
	"github.com/rs/zerolog/log"
)

// Storage is the entire persisted state of a repository: the object
// store plus the reference set. It is created by Init, mutated in memory
// by engine operations, and persisted wholesale on every state-changing
// command.
type Storage struct {
	Objects *object.Store
	Refs    *refstore.Set
}

// New returns the Storage of a freshly-initialized, empty repository.
func New() *Storage {
	return &Storage{
		Objects: object.NewStore(),
		Refs:    refstore.NewSet(),
	}
}

// path returns the persistence file path for a working directory root.
func path(root string) string {
	return filepath.Join(root, workdir.StateFile)
}

// Save atomically writes the whole Storage to StateFile under root, via a
// temp file plus rename. Durability of the individual write is not guaranteed; a
// partial write before the rename leaves the prior file untouched.
func Save(root string, s *Storage) error {
	data := Encode(s)

	tmp, err := os.CreateTemp(root, ".git-tmp-*")
	if err != nil {
		return fmt.Errorf("%w: save: create temp file: %v", arvoerr.ErrIO, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: save: write: %v", arvoerr.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: save: close: %v", arvoerr.ErrIO, err)
	}
	if err := os.Rename(tmpName, path(root)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: save: rename: %v", arvoerr.ErrIO, err)
	}
	log.Debug().Str("root", root).Int("bytes", len(data)).Msg("storage saved")
	return nil
}

// Load reads StateFile under root and decodes it. A missing file fails
// with arvoerr.ErrIO (callers needing a fresh repo use New directly);
// Load is only meaningful once Init has run. Load verifies the
// referential closure invariant and fails with object.ErrCorruption if it
// does not hold.
func Load(root string) (*Storage, error) {
	data, err := os.ReadFile(path(root))
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", arvoerr.ErrIO, err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	log.Debug().Str("root", root).Msg("storage loaded")
	return s, nil
}

// Exists reports whether a repository is already initialized at root.
func Exists(root string) bool {
	_, err := os.Stat(path(root))
	return err == nil
}

// Validate checks the referential closure invariant: every commit's tree
// is present, every tree/blob reachable from it is present, and every
// parent is a known commit.
func Validate(s *Storage) error {
	for _, id := range s.Objects.CommitIDs() {
		c, _ := s.Objects.Commit(id)
		if !s.Objects.HasTree(c.TreeID) {
			return fmt.Errorf("%w: commit %s: missing tree %s", object.ErrCorruption, id, c.TreeID)
		}
		if _, _, err := s.Objects.TreeBlobClosure(c.TreeID); err != nil {
			return fmt.Errorf("commit %s: %w", id, err)
		}
		for _, p := range c.Parents {
			if !s.Objects.HasCommit(p) {
				return fmt.Errorf("%w: commit %s: missing parent %s", object.ErrCorruption, id, p)
			}
		}
	}
	return nil
}
