package storage

import (
	"fmt"
	"sort"

	"github.com/arvo-vcs/arvo/pkg/codec"
	"github.com/arvo-vcs/arvo/pkg/object"
	"github.com/arvo-vcs/arvo/pkg/refstore"
)

// storageFormatVersion guards against decoding a file written by an
// incompatible future encoding.
const storageFormatVersion = 1

// Encode produces the canonical bytes of the whole Storage record: the
// object store (sorted by ID within each kind for determinism) followed
// by the reference set. This is the exact format written to StateFile,
// and the format any serialize(deserialize(b)) == b round trip is
// checked against.
func Encode(s *Storage) []byte {
	w := &codec.Writer{}
	w.PutUint32(storageFormatVersion)

	blobIDs := sortedIDs(s.Objects.AllBlobIDs())
	w.PutUint32(uint32(len(blobIDs)))
	for _, id := range blobIDs {
		b, _ := s.Objects.Blob(id)
		w.PutString(string(id))
		w.PutBytes(object.EncodeBlob(b))
	}

	treeIDs := sortedIDs(s.Objects.AllTreeIDs())
	w.PutUint32(uint32(len(treeIDs)))
	for _, id := range treeIDs {
		t, _ := s.Objects.Tree(id)
		w.PutString(string(id))
		w.PutBytes(object.EncodeTree(t))
	}

	commitIDs := sortedIDs(s.Objects.CommitIDs())
	w.PutUint32(uint32(len(commitIDs)))
	for _, id := range commitIDs {
		c, _ := s.Objects.Commit(id)
		w.PutString(string(id))
		w.PutBytes(object.EncodeCommit(c))
	}

	encodeRefs(w, s.Refs)

	return w.Bytes()
}

func sortedIDs(ids []object.ID) []object.ID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func encodeRefs(w *codec.Writer, refs *refstore.Set) {
	names := make([]string, 0, len(refs.Branches))
	for n := range refs.Branches {
		names = append(names, n)
	}
	sort.Strings(names)
	w.PutUint32(uint32(len(names)))
	for _, name := range names {
		b := refs.Branches[name]
		w.PutString(name)
		putOptionalID(w, b.Created)
		putOptionalID(w, b.Tip)
	}

	if refs.Head.IsDetached() {
		w.PutByte(1)
		w.PutString(string(refs.Head.Detached))
	} else {
		w.PutByte(0)
		w.PutString(refs.Head.Branch)
	}

	w.PutUint32(uint32(len(refs.Remotes)))
	for _, r := range refs.Remotes {
		w.PutString(r.Name)
		w.PutString(r.URL)
	}
}

func putOptionalID(w *codec.Writer, id *object.ID) {
	if id == nil {
		w.PutByte(0)
		return
	}
	w.PutByte(1)
	w.PutString(string(*id))
}

func getOptionalID(r *codec.Reader) (*object.ID, error) {
	tag, err := r.GetByte()
	if err != nil {
		return nil, err
	}
	if tag == 0 {
		return nil, nil
	}
	s, err := r.GetString()
	if err != nil {
		return nil, err
	}
	id := object.ID(s)
	return &id, nil
}

// Decode parses the canonical bytes produced by Encode back into a
// Storage. Every decoded blob/tree/commit has its ID re-verified against
// the content's own hash (invariant 1: every stored key equals the
// digest of its value) before being adopted into the store.
func Decode(data []byte) (*Storage, error) {
	r := codec.NewReader(data)
	version, err := r.GetUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: decode storage: version: %v", object.ErrCorruption, err)
	}
	if version != storageFormatVersion {
		return nil, fmt.Errorf("%w: decode storage: unsupported version %d", object.ErrCorruption, version)
	}

	objs := object.NewStore()

	blobCount, err := r.GetUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: decode storage: blob count: %v", object.ErrCorruption, err)
	}
	for i := uint32(0); i < blobCount; i++ {
		idStr, err := r.GetString()
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: blob %d id: %v", object.ErrCorruption, i, err)
		}
		raw, err := r.GetBytes()
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: blob %d body: %v", object.ErrCorruption, i, err)
		}
		b, err := object.DecodeBlob(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: blob %s: %v", object.ErrCorruption, idStr, err)
		}
		if want, got := object.ID(idStr), object.HashBlob(b); want != got {
			return nil, fmt.Errorf("%w: blob key %s does not match content hash %s", object.ErrCorruption, want, got)
		}
		objs.AdoptBlob(object.ID(idStr), b)
	}

	treeCount, err := r.GetUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: decode storage: tree count: %v", object.ErrCorruption, err)
	}
	for i := uint32(0); i < treeCount; i++ {
		idStr, err := r.GetString()
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: tree %d id: %v", object.ErrCorruption, i, err)
		}
		raw, err := r.GetBytes()
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: tree %d body: %v", object.ErrCorruption, i, err)
		}
		t, err := object.DecodeTree(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: tree %s: %v", object.ErrCorruption, idStr, err)
		}
		if want, got := object.ID(idStr), object.HashTree(t); want != got {
			return nil, fmt.Errorf("%w: tree key %s does not match content hash %s", object.ErrCorruption, want, got)
		}
		objs.AdoptTree(object.ID(idStr), t)
	}

	commitCount, err := r.GetUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: decode storage: commit count: %v", object.ErrCorruption, err)
	}
	for i := uint32(0); i < commitCount; i++ {
		idStr, err := r.GetString()
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: commit %d id: %v", object.ErrCorruption, i, err)
		}
		raw, err := r.GetBytes()
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: commit %d body: %v", object.ErrCorruption, i, err)
		}
		c, err := object.DecodeCommit(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: commit %s: %v", object.ErrCorruption, idStr, err)
		}
		if want, got := object.ID(idStr), object.HashCommit(c); want != got {
			return nil, fmt.Errorf("%w: commit key %s does not match content hash %s", object.ErrCorruption, want, got)
		}
		objs.AdoptCommit(object.ID(idStr), c)
	}

	refs, err := decodeRefs(r)
	if err != nil {
		return nil, err
	}

	return &Storage{Objects: objs, Refs: refs}, nil
}

func decodeRefs(r *codec.Reader) (*refstore.Set, error) {
	branchCount, err := r.GetUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: decode storage: branch count: %v", object.ErrCorruption, err)
	}
	branches := make(map[string]*refstore.Branch, branchCount)
	for i := uint32(0); i < branchCount; i++ {
		name, err := r.GetString()
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: branch %d name: %v", object.ErrCorruption, i, err)
		}
		created, err := getOptionalID(r)
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: branch %s created: %v", object.ErrCorruption, name, err)
		}
		tip, err := getOptionalID(r)
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: branch %s tip: %v", object.ErrCorruption, name, err)
		}
		branches[name] = &refstore.Branch{Created: created, Tip: tip}
	}

	detachedTag, err := r.GetByte()
	if err != nil {
		return nil, fmt.Errorf("%w: decode storage: head tag: %v", object.ErrCorruption, err)
	}
	var head refstore.Head
	if detachedTag == 1 {
		idStr, err := r.GetString()
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: head id: %v", object.ErrCorruption, err)
		}
		head = refstore.DetachedHead(object.ID(idStr))
	} else {
		name, err := r.GetString()
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: head branch: %v", object.ErrCorruption, err)
		}
		head = refstore.AttachedHead(name)
	}

	remoteCount, err := r.GetUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: decode storage: remote count: %v", object.ErrCorruption, err)
	}
	remotes := make([]refstore.Remote, 0, remoteCount)
	for i := uint32(0); i < remoteCount; i++ {
		name, err := r.GetString()
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: remote %d name: %v", object.ErrCorruption, i, err)
		}
		url, err := r.GetString()
		if err != nil {
			return nil, fmt.Errorf("%w: decode storage: remote %d url: %v", object.ErrCorruption, i, err)
		}
		remotes = append(remotes, refstore.Remote{Name: name, URL: url})
	}

	return &refstore.Set{Branches: branches, Head: head, Remotes: remotes}, nil
}
