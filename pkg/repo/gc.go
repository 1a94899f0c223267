package repo

import (
	"github.com/arvo-vcs/arvo/pkg/object"
	"github.com/rs/zerolog/log"
)

// GCSummary reports what a GC pass removed.
type GCSummary struct {
	CommitsRemoved int
	TreesRemoved   int
	BlobsRemoved   int
}

// GC computes the set R of commits reachable from every branch tip plus
// HEAD's resolved ID, removes every commit outside R, and then sweeps
// every tree and blob that becomes unreachable once those commits are
// gone.
func (r *Repo) GC() (*GCSummary, error) {
	roots := r.gcRoots()

	keepCommits, err := r.ReachableFromAll(roots)
	if err != nil {
		return nil, err
	}

	removed := 0
	for _, id := range r.State.Objects.CommitIDs() {
		if _, keep := keepCommits[id]; !keep {
			r.State.Objects.DeleteCommit(id)
			removed++
		}
	}

	keepTrees := make(map[object.ID]struct{})
	keepBlobs := make(map[object.ID]struct{})
	for _, c := range keepCommits {
		trees, blobs, err := r.State.Objects.TreeBlobClosure(c.TreeID)
		if err != nil {
			return nil, err
		}
		for id := range trees {
			keepTrees[id] = struct{}{}
		}
		for id := range blobs {
			keepBlobs[id] = struct{}{}
		}
	}
	treesRemoved, blobsRemoved := r.State.Objects.Sweep(keepTrees, keepBlobs)

	summary := &GCSummary{CommitsRemoved: removed, TreesRemoved: treesRemoved, BlobsRemoved: blobsRemoved}
	log.Info().
		Int("commits_removed", removed).
		Int("trees_removed", treesRemoved).
		Int("blobs_removed", blobsRemoved).
		Msg("gc complete")
	return summary, nil
}

func (r *Repo) gcRoots() []object.ID {
	var roots []object.ID
	for _, b := range r.State.Refs.Branches {
		if b.Tip != nil {
			roots = append(roots, *b.Tip)
		}
	}
	if head := r.State.Refs.ResolveHead(); !head.IsZero() {
		roots = append(roots, head)
	}
	return roots
}
