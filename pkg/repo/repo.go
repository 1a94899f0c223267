// Package repo implements the repository engine: commit, checkout,
// branch management, reachability, garbage collection, and HEAD
// resolution over a storage.Storage and a working directory.
package repo

import (
	"github.com/arvo-vcs/arvo/pkg/storage"
	"github.com/rs/zerolog/log"
)

// Repo binds a working directory root to its persisted state. Engine
// operations mutate State in memory; the caller is responsible for
// persisting it (storage.Save) once the command completes.
type Repo struct {
	Root  string
	State *storage.Storage
}

// Init creates an empty repository's in-memory state. It does not touch
// disk; the caller persists it with storage.Save once ready.
func Init(root string) *Repo {
	log.Info().Str("root", root).Msg("repository initialized")
	return &Repo{Root: root, State: storage.New()}
}

// Open loads the persisted state at root into a Repo.
func Open(root string) (*Repo, error) {
	s, err := storage.Load(root)
	if err != nil {
		return nil, err
	}
	return &Repo{Root: root, State: s}, nil
}

// Save persists the repo's current state.
func (r *Repo) Save() error {
	return storage.Save(r.Root, r.State)
}
