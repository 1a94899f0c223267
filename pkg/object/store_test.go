package object

import (
	"errors"
	"testing"
)

func TestPutIdempotent(t *testing.T) {
	s := NewStore()
	b := &Blob{Data: []byte("x")}
	id1 := s.PutBlob(b)
	id2 := s.PutBlob(b)
	if id1 != id2 {
		t.Fatalf("PutBlob not idempotent: %s != %s", id1, id2)
	}
	if len(s.AllBlobIDs()) != 1 {
		t.Fatalf("expected exactly one stored blob, got %d", len(s.AllBlobIDs()))
	}
}

func TestTreeBlobClosureMissingBlob(t *testing.T) {
	s := NewStore()
	fakeBlobID := HashTyped("blob", []byte("missing"))
	tree := &Tree{Lines: []TreeLine{{Kind: LineBlob, ID: fakeBlobID, Path: "a.txt"}}}
	treeID := s.PutTree(tree)

	_, _, err := s.TreeBlobClosure(treeID)
	if !errors.Is(err, ErrCorruption) {
		t.Fatalf("TreeBlobClosure error = %v, want ErrCorruption", err)
	}
}

func TestTreeBlobClosureNested(t *testing.T) {
	s := NewStore()
	blobID := s.PutBlob(&Blob{Data: []byte("leaf")})
	inner := s.PutTree(&Tree{Lines: []TreeLine{{Kind: LineBlob, ID: blobID, Path: "leaf.txt"}}})
	outer := s.PutTree(&Tree{Lines: []TreeLine{{Kind: LineTree, ID: inner, Path: "sub/"}}})

	trees, blobs, err := s.TreeBlobClosure(outer)
	if err != nil {
		t.Fatalf("TreeBlobClosure: %v", err)
	}
	if _, ok := trees[inner]; !ok {
		t.Fatalf("expected inner tree %s in closure", inner)
	}
	if _, ok := blobs[blobID]; !ok {
		t.Fatalf("expected blob %s in closure", blobID)
	}
}

func TestSweepRemovesOnlyUnkept(t *testing.T) {
	s := NewStore()
	keepBlob := s.PutBlob(&Blob{Data: []byte("keep")})
	dropBlob := s.PutBlob(&Blob{Data: []byte("drop")})
	keepTree := s.PutTree(&Tree{Lines: []TreeLine{{Kind: LineBlob, ID: keepBlob, Path: "k"}}})
	dropTree := s.PutTree(&Tree{Lines: []TreeLine{{Kind: LineBlob, ID: dropBlob, Path: "d"}}})

	treesRemoved, blobsRemoved := s.Sweep(
		map[ID]struct{}{keepTree: {}},
		map[ID]struct{}{keepBlob: {}},
	)
	if treesRemoved != 1 || blobsRemoved != 1 {
		t.Fatalf("Sweep removed (%d trees, %d blobs), want (1, 1)", treesRemoved, blobsRemoved)
	}
	if !s.HasTree(keepTree) || s.HasTree(dropTree) {
		t.Fatalf("Sweep kept/dropped the wrong trees")
	}
	if !s.HasBlob(keepBlob) || s.HasBlob(dropBlob) {
		t.Fatalf("Sweep kept/dropped the wrong blobs")
	}
}
