package object

import (
	"bytes"
	"testing"
)

func TestBlobRoundTrip(t *testing.T) {
	b := &Blob{Data: []byte("hello world")}
	decoded, err := DecodeBlob(EncodeBlob(b))
	if err != nil {
		t.Fatalf("DecodeBlob: %v", err)
	}
	if !bytes.Equal(decoded.Data, b.Data) {
		t.Fatalf("round trip mismatch: got %q, want %q", decoded.Data, b.Data)
	}
}

func TestHashBlobStableAcrossEqualContent(t *testing.T) {
	a := HashBlob(&Blob{Data: []byte("x")})
	b := HashBlob(&Blob{Data: []byte("x")})
	if a != b {
		t.Fatalf("HashBlob not stable: %s != %s", a, b)
	}
	if HashBlob(&Blob{Data: []byte("y")}) == a {
		t.Fatalf("HashBlob collided on different content")
	}
}

func TestTreeRoundTrip(t *testing.T) {
	tree := &Tree{Lines: []TreeLine{
		{Kind: LineBlob, ID: HashBlob(&Blob{Data: []byte("a")}), Path: "a.txt"},
		{Kind: LineTree, ID: HashTree(&Tree{}), Path: "sub/"},
	}}
	decoded, err := DecodeTree(EncodeTree(tree))
	if err != nil {
		t.Fatalf("DecodeTree: %v", err)
	}
	if len(decoded.Lines) != len(tree.Lines) {
		t.Fatalf("len(Lines) = %d, want %d", len(decoded.Lines), len(tree.Lines))
	}
	for i, line := range tree.Lines {
		if decoded.Lines[i] != line {
			t.Fatalf("line %d = %+v, want %+v", i, decoded.Lines[i], line)
		}
	}
}

func TestCommitRoundTrip(t *testing.T) {
	c := &Commit{
		Time:    1700000000,
		Author:  "author",
		Message: "initial commit",
		TreeID:  HashTree(&Tree{}),
		Parents: []ID{HashTyped("commit", []byte("parent"))},
	}
	decoded, err := DecodeCommit(EncodeCommit(c))
	if err != nil {
		t.Fatalf("DecodeCommit: %v", err)
	}
	if decoded.Time != c.Time || decoded.Author != c.Author || decoded.Message != c.Message || decoded.TreeID != c.TreeID {
		t.Fatalf("decoded commit mismatch: %+v vs %+v", decoded, c)
	}
	if len(decoded.Parents) != 1 || decoded.Parents[0] != c.Parents[0] {
		t.Fatalf("decoded parents = %v, want %v", decoded.Parents, c.Parents)
	}
}

func TestCommitRoundTripEmptyParents(t *testing.T) {
	c := &Commit{Time: 1, Author: "author", Message: "root", TreeID: HashTree(&Tree{})}
	decoded, err := DecodeCommit(EncodeCommit(c))
	if err != nil {
		t.Fatalf("DecodeCommit: %v", err)
	}
	if len(decoded.Parents) != 0 {
		t.Fatalf("Parents = %v, want empty", decoded.Parents)
	}
}
