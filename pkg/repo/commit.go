package repo

import (
	"github.com/arvo-vcs/arvo/pkg/object"
	"github.com/arvo-vcs/arvo/pkg/workdir"
	"github.com/rs/zerolog/log"
)

// Commit scans the working directory, inserts the resulting blobs and
// trees into the object store, and creates a new commit whose parent is
// the prior resolved HEAD (or none, for the first commit on a branch).
// It advances HEAD (if detached) or the current branch's tip and returns
// the new commit's ID.
//
// commit never fails on an "empty" diff: every call that reaches the
// store produces a new commit, since the timestamp (and usually the
// message) differs from the previous one.
func (r *Repo) Commit(message, author string, now int64) (object.ID, error) {
	treeID, err := workdir.Scan(r.Root, r.State.Objects)
	if err != nil {
		return object.Zero, err
	}

	var parents []object.ID
	if parent := r.State.Refs.ResolveHead(); !parent.IsZero() {
		parents = []object.ID{parent}
	}

	commit := &object.Commit{
		Time:    now,
		Author:  author,
		Message: message,
		TreeID:  treeID,
		Parents: parents,
	}
	id := r.State.Objects.PutCommit(commit)
	r.State.Refs.AdvanceHead(id)

	log.Info().
		Str("commit", string(id)).
		Str("tree", string(treeID)).
		Int("parents", len(parents)).
		Msg("commit created")
	return id, nil
}
