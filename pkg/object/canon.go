package object

import (
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/codec"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// EncodeBlob produces the canonical bytes of a Blob.
func EncodeBlob(b *Blob) []byte {
	w := &codec.Writer{}
	w.PutBytes(b.Data)
	return w.Bytes()
}

// DecodeBlob parses the canonical bytes of a Blob.
func DecodeBlob(data []byte) (*Blob, error) {
	r := codec.NewReader(data)
	d, err := r.GetBytes()
	if err != nil {
		return nil, fmt.Errorf("decode blob: %w", err)
	}
	return &Blob{Data: d}, nil
}

// HashBlob computes the ID a Blob would have once written.
func HashBlob(b *Blob) ID {
	return HashTyped(string(KindBlob), EncodeBlob(b))
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// EncodeTree produces the canonical bytes of a Tree. Lines are encoded in
// the order given; callers (the scanner) are responsible for handing them
// in a fixed, deterministic order so identical directories hash equal.
func EncodeTree(t *Tree) []byte {
	w := &codec.Writer{}
	w.PutUint32(uint32(len(t.Lines)))
	for _, line := range t.Lines {
		w.PutByte(byte(line.Kind))
		w.PutString(string(line.ID))
		w.PutString(line.Path)
	}
	return w.Bytes()
}

// DecodeTree parses the canonical bytes of a Tree.
func DecodeTree(data []byte) (*Tree, error) {
	r := codec.NewReader(data)
	n, err := r.GetUint32()
	if err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	t := &Tree{Lines: make([]TreeLine, 0, n)}
	for i := uint32(0); i < n; i++ {
		kindByte, err := r.GetByte()
		if err != nil {
			return nil, fmt.Errorf("decode tree: line %d kind: %w", i, err)
		}
		idStr, err := r.GetString()
		if err != nil {
			return nil, fmt.Errorf("decode tree: line %d id: %w", i, err)
		}
		path, err := r.GetString()
		if err != nil {
			return nil, fmt.Errorf("decode tree: line %d path: %w", i, err)
		}
		t.Lines = append(t.Lines, TreeLine{Kind: LineKind(kindByte), ID: ID(idStr), Path: path})
	}
	return t, nil
}

// HashTree computes the ID a Tree would have once written.
func HashTree(t *Tree) ID {
	return HashTyped(string(KindTree), EncodeTree(t))
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// EncodeCommit produces the canonical bytes of a Commit. Parents are
// encoded in their given order (first-parent is Parents[0]).
func EncodeCommit(c *Commit) []byte {
	w := &codec.Writer{}
	w.PutInt64(c.Time)
	w.PutString(c.Author)
	w.PutString(c.Message)
	w.PutString(string(c.TreeID))
	w.PutUint32(uint32(len(c.Parents)))
	for _, p := range c.Parents {
		w.PutString(string(p))
	}
	return w.Bytes()
}

// DecodeCommit parses the canonical bytes of a Commit.
func DecodeCommit(data []byte) (*Commit, error) {
	r := codec.NewReader(data)
	var c Commit
	var err error
	if c.Time, err = r.GetInt64(); err != nil {
		return nil, fmt.Errorf("decode commit: time: %w", err)
	}
	if c.Author, err = r.GetString(); err != nil {
		return nil, fmt.Errorf("decode commit: author: %w", err)
	}
	if c.Message, err = r.GetString(); err != nil {
		return nil, fmt.Errorf("decode commit: message: %w", err)
	}
	treeID, err := r.GetString()
	if err != nil {
		return nil, fmt.Errorf("decode commit: tree id: %w", err)
	}
	c.TreeID = ID(treeID)
	n, err := r.GetUint32()
	if err != nil {
		return nil, fmt.Errorf("decode commit: parent count: %w", err)
	}
	c.Parents = make([]ID, 0, n)
	for i := uint32(0); i < n; i++ {
		p, err := r.GetString()
		if err != nil {
			return nil, fmt.Errorf("decode commit: parent %d: %w", i, err)
		}
		c.Parents = append(c.Parents, ID(p))
	}
	return &c, nil
}

// HashCommit computes the ID a Commit would have once written.
func HashCommit(c *Commit) ID {
	return HashTyped(string(KindCommit), EncodeCommit(c))
}
