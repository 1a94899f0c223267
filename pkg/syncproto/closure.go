package syncproto

import (
	"github.com/arvo-vcs/arvo/pkg/object"
	"github.com/arvo-vcs/arvo/pkg/repo"
)

// CollectClosure gathers the full reachable-commit set from tip, plus
// every tree and blob those commits reference, into a self-contained
// Bundle suitable for transmission. This is what a pull response's and
// a push request's object payload both are: the complete closure of the
// branch's new tip, not a delta.
func CollectClosure(r *repo.Repo, tip object.ID) (Bundle, error) {
	b := newBundle()
	if tip.IsZero() {
		return b, nil
	}

	chain, err := r.Reachable(tip, object.Zero)
	if err != nil {
		return b, err
	}
	for _, ca := range chain {
		b.Commits[ca.ID] = ca.Commit
		trees, blobs, err := r.State.Objects.TreeBlobClosure(ca.Commit.TreeID)
		if err != nil {
			return b, err
		}
		for id := range trees {
			t, _ := r.State.Objects.Tree(id)
			b.Trees[id] = t
		}
		for id := range blobs {
			blob, _ := r.State.Objects.Blob(id)
			b.Blobs[id] = blob
		}
	}
	return b, nil
}

// RawImport idempotently inserts every commit, tree, and blob in bundle
// into r's object store, then sets branchName's state from info — if the
// branch already exists its tip is updated, otherwise it is created.
// Every ID is recomputed on insert (object.Store.Put* is idempotent and
// hash-verifying by construction), so a sender cannot poison the store
// with mismatched (id, value) pairs; RawImport does not, however, check
// that the bundle is referentially closed. A bundle missing a referenced
// tree or blob will surface as object.ErrCorruption the next time that
// reference is walked.
func RawImport(r *repo.Repo, branchName string, info BranchInfo, bundle Bundle) {
	for _, blob := range bundle.Blobs {
		r.State.Objects.PutBlob(blob)
	}
	for _, tree := range bundle.Trees {
		r.State.Objects.PutTree(tree)
	}
	for _, commit := range bundle.Commits {
		r.State.Objects.PutCommit(commit)
	}
	branch := info.ToBranch()
	r.State.Refs.AddOrSetBranch(branchName, branch)
}
