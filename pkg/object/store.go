package object

import "fmt"

// Store is the content-addressed object store: three disjoint mappings
// keyed by ID. Insertion is idempotent — inserting an ID that already maps
// rejects the write silently, since by the hash-content agreement
// invariant the value must already be identical. Values are never mutated
// in place once inserted; GC is the only remover.
type Store struct {
	blobs   map[ID]*Blob
	trees   map[ID]*Tree
	commits map[ID]*Commit
}

// NewStore returns an empty object store.
func NewStore() *Store {
	return &Store{
		blobs:   make(map[ID]*Blob),
		trees:   make(map[ID]*Tree),
		commits: make(map[ID]*Commit),
	}
}

// PutBlob idempotently inserts b and returns its ID.
func (s *Store) PutBlob(b *Blob) ID {
	id := HashBlob(b)
	if _, ok := s.blobs[id]; !ok {
		s.blobs[id] = b
	}
	return id
}

// PutTree idempotently inserts t and returns its ID.
func (s *Store) PutTree(t *Tree) ID {
	id := HashTree(t)
	if _, ok := s.trees[id]; !ok {
		s.trees[id] = t
	}
	return id
}

// PutCommit idempotently inserts c and returns its ID.
func (s *Store) PutCommit(c *Commit) ID {
	id := HashCommit(c)
	if _, ok := s.commits[id]; !ok {
		s.commits[id] = c
	}
	return id
}

// Blob looks up a blob by ID.
func (s *Store) Blob(id ID) (*Blob, bool) {
	b, ok := s.blobs[id]
	return b, ok
}

// Tree looks up a tree by ID.
func (s *Store) Tree(id ID) (*Tree, bool) {
	t, ok := s.trees[id]
	return t, ok
}

// Commit looks up a commit by ID.
func (s *Store) Commit(id ID) (*Commit, bool) {
	c, ok := s.commits[id]
	return c, ok
}

// HasBlob, HasTree, HasCommit report membership without returning the value.
func (s *Store) HasBlob(id ID) bool   { _, ok := s.blobs[id]; return ok }
func (s *Store) HasTree(id ID) bool   { _, ok := s.trees[id]; return ok }
func (s *Store) HasCommit(id ID) bool { _, ok := s.commits[id]; return ok }

// CommitIDs returns every commit ID currently stored, in no particular order.
func (s *Store) CommitIDs() []ID {
	ids := make([]ID, 0, len(s.commits))
	for id := range s.commits {
		ids = append(ids, id)
	}
	return ids
}

// AllBlobIDs returns every blob ID currently stored, in no particular order.
func (s *Store) AllBlobIDs() []ID {
	ids := make([]ID, 0, len(s.blobs))
	for id := range s.blobs {
		ids = append(ids, id)
	}
	return ids
}

// AllTreeIDs returns every tree ID currently stored, in no particular order.
func (s *Store) AllTreeIDs() []ID {
	ids := make([]ID, 0, len(s.trees))
	for id := range s.trees {
		ids = append(ids, id)
	}
	return ids
}

// AdoptBlob inserts a blob under a caller-supplied ID without recomputing
// its hash. Used only when decoding a previously-persisted Storage, where
// the ID was already verified at the time it was first written.
func (s *Store) AdoptBlob(id ID, b *Blob) { s.blobs[id] = b }

// AdoptTree inserts a tree under a caller-supplied ID. See AdoptBlob.
func (s *Store) AdoptTree(id ID, t *Tree) { s.trees[id] = t }

// AdoptCommit inserts a commit under a caller-supplied ID. See AdoptBlob.
func (s *Store) AdoptCommit(id ID, c *Commit) { s.commits[id] = c }

// DeleteCommit removes a commit by ID. Used only by GC.
func (s *Store) DeleteCommit(id ID) {
	delete(s.commits, id)
}

// DeleteTree removes a tree by ID. Used only by GC.
func (s *Store) DeleteTree(id ID) {
	delete(s.trees, id)
}

// DeleteBlob removes a blob by ID. Used only by GC.
func (s *Store) DeleteBlob(id ID) {
	delete(s.blobs, id)
}

// TreeBlobClosure walks tree id and every subtree it references, returning
// the set of tree IDs and the set of blob IDs reachable from it. It fails
// with ErrCorruption if a referenced tree or blob is missing from the store.
func (s *Store) TreeBlobClosure(id ID) (trees map[ID]struct{}, blobs map[ID]struct{}, err error) {
	trees = make(map[ID]struct{})
	blobs = make(map[ID]struct{})
	var walk func(ID) error
	walk = func(tid ID) error {
		if _, seen := trees[tid]; seen {
			return nil
		}
		t, ok := s.Tree(tid)
		if !ok {
			return fmt.Errorf("%w: missing tree %s", ErrCorruption, tid)
		}
		trees[tid] = struct{}{}
		for _, line := range t.Lines {
			switch line.Kind {
			case LineBlob:
				if !s.HasBlob(line.ID) {
					return fmt.Errorf("%w: missing blob %s", ErrCorruption, line.ID)
				}
				blobs[line.ID] = struct{}{}
			case LineTree:
				if err := walk(line.ID); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(id); err != nil {
		return nil, nil, err
	}
	return trees, blobs, nil
}

// Sweep removes every tree and blob not present in keepTrees/keepBlobs.
// It returns the counts removed. GC removes unreachable commits by
// construction of the kept-commit set, and Sweep removes the trees/blobs
// that become unreachable once those commits are gone.
func (s *Store) Sweep(keepTrees, keepBlobs map[ID]struct{}) (treesRemoved, blobsRemoved int) {
	for id := range s.trees {
		if _, keep := keepTrees[id]; !keep {
			delete(s.trees, id)
			treesRemoved++
		}
	}
	for id := range s.blobs {
		if _, keep := keepBlobs[id]; !keep {
			delete(s.blobs, id)
			blobsRemoved++
		}
	}
	return treesRemoved, blobsRemoved
}
