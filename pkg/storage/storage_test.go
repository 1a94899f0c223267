package storage

import (
	"bytes"
	"errors"
	"testing"

	"github.com/arvo-vcs/arvo/pkg/codec"
	"github.com/arvo-vcs/arvo/pkg/object"
)

func seedState(t *testing.T) *Storage {
	t.Helper()
	s := New()
	blobID := s.Objects.PutBlob(&object.Blob{Data: []byte("hello")})
	treeID := s.Objects.PutTree(&object.Tree{Lines: []object.TreeLine{
		{Kind: object.LineBlob, ID: blobID, Path: "a.txt"},
	}})
	commitID := s.Objects.PutCommit(&object.Commit{
		Time: 1, Author: "author", Message: "c1", TreeID: treeID,
	})
	s.Refs.AdvanceHead(commitID)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	s := seedState(t)

	if err := Save(root, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Objects.CommitIDs()) != 1 {
		t.Fatalf("expected 1 commit after reload, got %d", len(loaded.Objects.CommitIDs()))
	}
}

func TestEncodeDecodeByteRoundTrip(t *testing.T) {
	s := seedState(t)
	b1 := Encode(s)

	decoded, err := Decode(b1)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	b2 := Encode(decoded)
	if !bytes.Equal(b1, b2) {
		t.Fatalf("serialize(deserialize(b)) != b")
	}
}

func TestDecodeRejectsHashMismatch(t *testing.T) {
	// Hand-build a minimal storage payload claiming an ID that does not
	// match the blob content's actual hash.
	w := &codec.Writer{}
	w.PutUint32(storageFormatVersion)

	wrongID := object.HashTyped("blob", []byte("something else"))
	w.PutUint32(1) // blob count
	w.PutString(string(wrongID))
	w.PutBytes(object.EncodeBlob(&object.Blob{Data: []byte("actual content")}))

	w.PutUint32(0) // tree count
	w.PutUint32(0) // commit count

	w.PutUint32(0)        // branch count
	w.PutByte(0)          // HEAD: attached
	w.PutString("master") // HEAD branch name
	w.PutUint32(0)        // remote count

	_, err := Decode(w.Bytes())
	if !errors.Is(err, object.ErrCorruption) {
		t.Fatalf("Decode error = %v, want ErrCorruption", err)
	}
}

func TestValidateDetectsMissingTree(t *testing.T) {
	s := New()
	fakeTreeID := object.HashTyped("tree", []byte("missing"))
	commitID := s.Objects.PutCommit(&object.Commit{Time: 1, Author: "a", Message: "m", TreeID: fakeTreeID})
	s.Refs.AdvanceHead(commitID)

	if err := Validate(s); !errors.Is(err, object.ErrCorruption) {
		t.Fatalf("Validate error = %v, want ErrCorruption", err)
	}
}
