package syncproto

import (
	"testing"

	"github.com/arvo-vcs/arvo/pkg/object"
	"github.com/arvo-vcs/arvo/pkg/repo"
)

func seedRepo(t *testing.T) (*repo.Repo, object.ID, object.ID) {
	t.Helper()
	root := t.TempDir()
	r := repo.Init(root)
	c1, err := r.Commit("c1", "author", 1)
	if err != nil {
		t.Fatalf("commit c1: %v", err)
	}
	c2, err := r.Commit("c2", "author", 2)
	if err != nil {
		t.Fatalf("commit c2: %v", err)
	}
	return r, c1, c2
}

func TestCollectClosureGathersFullChain(t *testing.T) {
	r, c1, c2 := seedRepo(t)
	bundle, err := CollectClosure(r, c2)
	if err != nil {
		t.Fatalf("CollectClosure: %v", err)
	}
	if _, ok := bundle.Commits[c1]; !ok {
		t.Fatalf("bundle missing c1")
	}
	if _, ok := bundle.Commits[c2]; !ok {
		t.Fatalf("bundle missing c2")
	}
	if len(bundle.Trees) == 0 {
		t.Fatalf("bundle should carry at least one tree")
	}
}

func TestCollectClosureZeroTip(t *testing.T) {
	r, _, _ := seedRepo(t)
	bundle, err := CollectClosure(r, object.Zero)
	if err != nil {
		t.Fatalf("CollectClosure: %v", err)
	}
	if len(bundle.Commits) != 0 {
		t.Fatalf("zero tip should produce an empty bundle, got %d commits", len(bundle.Commits))
	}
}

func TestRawImportIdempotent(t *testing.T) {
	src, _, c2 := seedRepo(t)
	bundle, err := CollectClosure(src, c2)
	if err != nil {
		t.Fatalf("CollectClosure: %v", err)
	}
	info := BranchInfo{Created: c2, Tip: c2}

	dstRoot := t.TempDir()
	dst := repo.Init(dstRoot)

	RawImport(dst, "origin/master", info, bundle)
	firstCommits := len(dst.State.Objects.CommitIDs())

	RawImport(dst, "origin/master", info, bundle)
	secondCommits := len(dst.State.Objects.CommitIDs())

	if firstCommits != secondCommits {
		t.Fatalf("RawImport not idempotent: commit count went from %d to %d", firstCommits, secondCommits)
	}
	branch, ok := dst.State.Refs.Branches["origin/master"]
	if !ok || branch.Tip == nil || *branch.Tip != c2 {
		t.Fatalf("origin/master tip = %+v, want %s", branch, c2)
	}
}
