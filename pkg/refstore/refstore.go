// Package refstore holds the mutable reference machinery layered over the
// immutable object graph: named branches, the HEAD cell, and the remotes
// list.
package refstore

import (
	"errors"
	"fmt"
	"sort"

	"github.com/arvo-vcs/arvo/pkg/object"
)

var (
	// ErrUnknownRef is returned when a checkout target names neither a
	// branch nor a known commit ID.
	ErrUnknownRef = errors.New("unknown ref")
	// ErrBranchExists is returned by CreateBranch when the name is taken.
	ErrBranchExists = errors.New("branch already exists")
	// ErrBranchCheckedOut is returned by DeleteBranch when HEAD is
	// attached to the branch being deleted.
	ErrBranchCheckedOut = errors.New("branch is checked out")
	// ErrNoParent is returned by HeadRef when the first-parent chain is
	// shorter than requested.
	ErrNoParent = errors.New("no such parent")
)

// Branch is a named, movable pointer to a commit, together with the
// commit it was forked at.
type Branch struct {
	Created *object.ID
	Tip     *object.ID
}

// Head is the current position pointer: exactly one of Branch (non-empty)
// or Detached (non-zero) is populated.
type Head struct {
	Branch   string
	Detached object.ID
}

// IsDetached reports whether HEAD points directly at a commit rather than
// a branch name.
func (h Head) IsDetached() bool {
	return h.Branch == ""
}

// AttachedHead returns a Head attached to the named branch.
func AttachedHead(branch string) Head {
	return Head{Branch: branch}
}

// DetachedHead returns a Head detached at id.
func DetachedHead(id object.ID) Head {
	return Head{Detached: id}
}

// Remote is a named URL a repository can push to or pull from.
type Remote struct {
	Name string
	URL  string
}

// Set is the full reference state of a repository: branches, HEAD, and
// remotes.
type Set struct {
	Branches map[string]*Branch
	Head     Head
	Remotes  []Remote
}

// NewSet returns the reference state of a freshly-initialized repository:
// one empty branch "master" and HEAD attached to it.
func NewSet() *Set {
	return &Set{
		Branches: map[string]*Branch{
			"master": {},
		},
		Head: AttachedHead("master"),
	}
}

// ResolveHead returns HEAD's effective commit ID: if attached, the
// current branch's tip; if detached, the stored ID directly.
func (s *Set) ResolveHead() object.ID {
	if s.Head.IsDetached() {
		return s.Head.Detached
	}
	b, ok := s.Branches[s.Head.Branch]
	if !ok || b.Tip == nil {
		return object.Zero
	}
	return *b.Tip
}

// AdvanceHead moves the current reference to newTip: the attached
// branch's tip if HEAD is attached, or HEAD's own detached ID otherwise.
func (s *Set) AdvanceHead(newTip object.ID) {
	id := newTip
	if s.Head.IsDetached() {
		s.Head.Detached = id
		return
	}
	b := s.Branches[s.Head.Branch]
	b.Tip = &id
}

// CreateBranch inserts name -> {Created: at, Tip: at}. Fails with
// ErrBranchExists if name is already taken.
func (s *Set) CreateBranch(name string, at object.ID) error {
	if _, exists := s.Branches[name]; exists {
		return fmt.Errorf("create branch %q: %w", name, ErrBranchExists)
	}
	var created, tip *object.ID
	if !at.IsZero() {
		c, t := at, at
		created, tip = &c, &t
	}
	s.Branches[name] = &Branch{Created: created, Tip: tip}
	return nil
}

// DeleteBranch removes name from Branches. Fails with ErrBranchCheckedOut
// if HEAD is attached to it.
func (s *Set) DeleteBranch(name string) error {
	if !s.Head.IsDetached() && s.Head.Branch == name {
		return fmt.Errorf("delete branch %q: %w", name, ErrBranchCheckedOut)
	}
	if _, ok := s.Branches[name]; !ok {
		return fmt.Errorf("delete branch %q: %w", name, ErrUnknownRef)
	}
	delete(s.Branches, name)
	return nil
}

// BranchListEntry is one line of ListBranches output.
type BranchListEntry struct {
	Name    string
	Current bool
}

// ListBranches returns branch names sorted ascending, with the current
// branch (if any) marked.
func (s *Set) ListBranches() []BranchListEntry {
	names := make([]string, 0, len(s.Branches))
	for n := range s.Branches {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]BranchListEntry, 0, len(names))
	for _, n := range names {
		out = append(out, BranchListEntry{
			Name:    n,
			Current: !s.Head.IsDetached() && s.Head.Branch == n,
		})
	}
	return out
}

// AddRemote appends a new remote. Fails if the name is already taken.
func (s *Set) AddRemote(name, url string) error {
	for _, r := range s.Remotes {
		if r.Name == name {
			return fmt.Errorf("add remote %q: already exists", name)
		}
	}
	s.Remotes = append(s.Remotes, Remote{Name: name, URL: url})
	return nil
}

// RemoveRemote deletes the remote with the given name.
func (s *Set) RemoveRemote(name string) error {
	for i, r := range s.Remotes {
		if r.Name == name {
			s.Remotes = append(s.Remotes[:i], s.Remotes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove remote %q: not found", name)
}

// FindRemote looks up a remote by name.
func (s *Set) FindRemote(name string) (Remote, bool) {
	for _, r := range s.Remotes {
		if r.Name == name {
			return r, true
		}
	}
	return Remote{}, false
}

// AddOrSetBranch inserts branch if absent, otherwise sets its tip. Used by
// the sync protocol's rawImport, which ships a whole Branch record from
// the peer.
func (s *Set) AddOrSetBranch(name string, b Branch) {
	existing, ok := s.Branches[name]
	if !ok {
		cp := b
		s.Branches[name] = &cp
		return
	}
	existing.Tip = b.Tip
	if existing.Created == nil {
		existing.Created = b.Created
	}
}
