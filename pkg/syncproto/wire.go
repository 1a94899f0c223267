// Package syncproto implements the push/pull/clone wire protocol and the
// daemon that serves it: a simple HTTP-like request/response transport
// carrying canonically-encoded records between peers of this system.
// There is no claim of interoperability with any mainstream VCS
// transport.
package syncproto

import (
	"fmt"
	"sort"

	"github.com/arvo-vcs/arvo/pkg/arvoerr"
	"github.com/arvo-vcs/arvo/pkg/codec"
	"github.com/arvo-vcs/arvo/pkg/object"
	"github.com/arvo-vcs/arvo/pkg/refstore"
)

// wireFormatVersion guards against decoding a payload from an
// incompatible future protocol revision.
const wireFormatVersion = 1

// BranchInfo is the wire form of refstore.Branch: Created/Tip are the
// zero ID when unset, since the wire has no pointer concept.
type BranchInfo struct {
	Created object.ID
	Tip     object.ID
}

// ToWire converts a refstore.Branch to its wire form.
func ToWire(b *refstore.Branch) BranchInfo {
	var info BranchInfo
	if b.Created != nil {
		info.Created = *b.Created
	}
	if b.Tip != nil {
		info.Tip = *b.Tip
	}
	return info
}

// ToBranch converts a wire BranchInfo back to a refstore.Branch.
func (b BranchInfo) ToBranch() refstore.Branch {
	var out refstore.Branch
	if !b.Created.IsZero() {
		c := b.Created
		out.Created = &c
	}
	if !b.Tip.IsZero() {
		t := b.Tip
		out.Tip = &t
	}
	return out
}

// Bundle is the transferable slice of the object graph: every commit,
// tree, and blob needed to make a set of commits self-contained on the
// receiving end. RawImport does not itself validate closure — the sender
// is responsible for shipping one (see CollectClosure).
type Bundle struct {
	Commits map[object.ID]*object.Commit
	Trees   map[object.ID]*object.Tree
	Blobs   map[object.ID]*object.Blob
}

func newBundle() Bundle {
	return Bundle{
		Commits: make(map[object.ID]*object.Commit),
		Trees:   make(map[object.ID]*object.Tree),
		Blobs:   make(map[object.ID]*object.Blob),
	}
}

// PullResponse is the server's answer to a pull request: the branch's
// current state plus the full reachable commit set from its tip.
type PullResponse struct {
	Branch BranchInfo
	Bundle Bundle
}

// PushRequest is the client's request to a push: the branch name,
// its claimed new state, the last position the client observed on the
// remote (shipped but unused server-side; a future delta transfer
// against it is a known possible improvement), and the full object
// bundle needed to make the branch's new tip self-contained.
type PushRequest struct {
	BranchName                 string
	Branch                     BranchInfo
	LatestRemoteBranchPosition object.ID
	Bundle                     Bundle
}

func encodeBundle(w *codec.Writer, b Bundle) {
	commitIDs := make([]object.ID, 0, len(b.Commits))
	for id := range b.Commits {
		commitIDs = append(commitIDs, id)
	}
	sort.Slice(commitIDs, func(i, j int) bool { return commitIDs[i] < commitIDs[j] })
	w.PutUint32(uint32(len(commitIDs)))
	for _, id := range commitIDs {
		w.PutString(string(id))
		w.PutBytes(object.EncodeCommit(b.Commits[id]))
	}

	treeIDs := make([]object.ID, 0, len(b.Trees))
	for id := range b.Trees {
		treeIDs = append(treeIDs, id)
	}
	sort.Slice(treeIDs, func(i, j int) bool { return treeIDs[i] < treeIDs[j] })
	w.PutUint32(uint32(len(treeIDs)))
	for _, id := range treeIDs {
		w.PutString(string(id))
		w.PutBytes(object.EncodeTree(b.Trees[id]))
	}

	blobIDs := make([]object.ID, 0, len(b.Blobs))
	for id := range b.Blobs {
		blobIDs = append(blobIDs, id)
	}
	sort.Slice(blobIDs, func(i, j int) bool { return blobIDs[i] < blobIDs[j] })
	w.PutUint32(uint32(len(blobIDs)))
	for _, id := range blobIDs {
		w.PutString(string(id))
		w.PutBytes(object.EncodeBlob(b.Blobs[id]))
	}
}

func decodeBundle(r *codec.Reader) (Bundle, error) {
	b := newBundle()

	commitCount, err := r.GetUint32()
	if err != nil {
		return b, fmt.Errorf("%w: decode bundle: commit count: %v", arvoerr.ErrProtocol, err)
	}
	for i := uint32(0); i < commitCount; i++ {
		idStr, err := r.GetString()
		if err != nil {
			return b, fmt.Errorf("%w: decode bundle: commit %d id: %v", arvoerr.ErrProtocol, i, err)
		}
		raw, err := r.GetBytes()
		if err != nil {
			return b, fmt.Errorf("%w: decode bundle: commit %d body: %v", arvoerr.ErrProtocol, i, err)
		}
		c, err := object.DecodeCommit(raw)
		if err != nil {
			return b, fmt.Errorf("%w: decode bundle: commit %s: %v", arvoerr.ErrProtocol, idStr, err)
		}
		b.Commits[object.ID(idStr)] = c
	}

	treeCount, err := r.GetUint32()
	if err != nil {
		return b, fmt.Errorf("%w: decode bundle: tree count: %v", arvoerr.ErrProtocol, err)
	}
	for i := uint32(0); i < treeCount; i++ {
		idStr, err := r.GetString()
		if err != nil {
			return b, fmt.Errorf("%w: decode bundle: tree %d id: %v", arvoerr.ErrProtocol, i, err)
		}
		raw, err := r.GetBytes()
		if err != nil {
			return b, fmt.Errorf("%w: decode bundle: tree %d body: %v", arvoerr.ErrProtocol, i, err)
		}
		t, err := object.DecodeTree(raw)
		if err != nil {
			return b, fmt.Errorf("%w: decode bundle: tree %s: %v", arvoerr.ErrProtocol, idStr, err)
		}
		b.Trees[object.ID(idStr)] = t
	}

	blobCount, err := r.GetUint32()
	if err != nil {
		return b, fmt.Errorf("%w: decode bundle: blob count: %v", arvoerr.ErrProtocol, err)
	}
	for i := uint32(0); i < blobCount; i++ {
		idStr, err := r.GetString()
		if err != nil {
			return b, fmt.Errorf("%w: decode bundle: blob %d id: %v", arvoerr.ErrProtocol, i, err)
		}
		raw, err := r.GetBytes()
		if err != nil {
			return b, fmt.Errorf("%w: decode bundle: blob %d body: %v", arvoerr.ErrProtocol, i, err)
		}
		blob, err := object.DecodeBlob(raw)
		if err != nil {
			return b, fmt.Errorf("%w: decode bundle: blob %s: %v", arvoerr.ErrProtocol, idStr, err)
		}
		b.Blobs[object.ID(idStr)] = blob
	}

	return b, nil
}

func putBranchInfo(w *codec.Writer, b BranchInfo) {
	w.PutString(string(b.Created))
	w.PutString(string(b.Tip))
}

func getBranchInfo(r *codec.Reader) (BranchInfo, error) {
	created, err := r.GetString()
	if err != nil {
		return BranchInfo{}, err
	}
	tip, err := r.GetString()
	if err != nil {
		return BranchInfo{}, err
	}
	return BranchInfo{Created: object.ID(created), Tip: object.ID(tip)}, nil
}

// EncodePullResponse produces the canonical bytes of a PullResponse.
func EncodePullResponse(resp *PullResponse) []byte {
	w := &codec.Writer{}
	w.PutUint32(wireFormatVersion)
	putBranchInfo(w, resp.Branch)
	encodeBundle(w, resp.Bundle)
	return w.Bytes()
}

// DecodePullResponse parses the canonical bytes of a PullResponse.
func DecodePullResponse(data []byte) (*PullResponse, error) {
	r := codec.NewReader(data)
	if err := checkVersion(r); err != nil {
		return nil, err
	}
	branch, err := getBranchInfo(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode pull response: branch: %v", arvoerr.ErrProtocol, err)
	}
	bundle, err := decodeBundle(r)
	if err != nil {
		return nil, err
	}
	return &PullResponse{Branch: branch, Bundle: bundle}, nil
}

// EncodePushRequest produces the canonical bytes of a PushRequest.
func EncodePushRequest(req *PushRequest) []byte {
	w := &codec.Writer{}
	w.PutUint32(wireFormatVersion)
	w.PutString(req.BranchName)
	putBranchInfo(w, req.Branch)
	w.PutString(string(req.LatestRemoteBranchPosition))
	encodeBundle(w, req.Bundle)
	return w.Bytes()
}

// DecodePushRequest parses the canonical bytes of a PushRequest.
func DecodePushRequest(data []byte) (*PushRequest, error) {
	r := codec.NewReader(data)
	if err := checkVersion(r); err != nil {
		return nil, err
	}
	branchName, err := r.GetString()
	if err != nil {
		return nil, fmt.Errorf("%w: decode push request: branch name: %v", arvoerr.ErrProtocol, err)
	}
	branch, err := getBranchInfo(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode push request: branch info: %v", arvoerr.ErrProtocol, err)
	}
	latest, err := r.GetString()
	if err != nil {
		return nil, fmt.Errorf("%w: decode push request: latest position: %v", arvoerr.ErrProtocol, err)
	}
	bundle, err := decodeBundle(r)
	if err != nil {
		return nil, err
	}
	return &PushRequest{
		BranchName:                 branchName,
		Branch:                     branch,
		LatestRemoteBranchPosition: object.ID(latest),
		Bundle:                     bundle,
	}, nil
}

func checkVersion(r *codec.Reader) error {
	v, err := r.GetUint32()
	if err != nil {
		return fmt.Errorf("%w: read version: %v", arvoerr.ErrProtocol, err)
	}
	if v != wireFormatVersion {
		return fmt.Errorf("%w: unsupported wire version %d", arvoerr.ErrProtocol, v)
	}
	return nil
}
