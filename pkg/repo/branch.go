package repo

import (
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/object"
	"github.com/arvo-vcs/arvo/pkg/refstore"
	"github.com/arvo-vcs/arvo/pkg/workdir"
	"github.com/rs/zerolog/log"
)

// CreateBranch inserts name -> {created: at, tip: at}, resets the working
// directory to at (or leaves the working directory untouched if at is the
// zero ID, in which case the new branch has no tip), and attaches HEAD to
// name. Fails with refstore.ErrBranchExists if the name
// is taken.
func (r *Repo) CreateBranch(name string, at object.ID) error {
	if err := r.State.Refs.CreateBranch(name, at); err != nil {
		return err
	}
	r.State.Refs.Head = refstore.AttachedHead(name)
	if !at.IsZero() {
		if err := r.materialize(at); err != nil {
			return err
		}
	}
	log.Info().Str("branch", name).Str("at", string(at)).Msg("branch created")
	return nil
}

// DeleteBranch removes name from the branch set. Fails with
// refstore.ErrBranchCheckedOut if HEAD is attached to it.
func (r *Repo) DeleteBranch(name string) error {
	if err := r.State.Refs.DeleteBranch(name); err != nil {
		return err
	}
	log.Info().Str("branch", name).Msg("branch deleted")
	return nil
}

// BranchListEntry is one line of ListBranches output. The detached-HEAD
// annotation is not an entry; ListBranches returns it separately.
type BranchListEntry struct {
	Name    string
	Current bool
}

// ListBranches returns every branch sorted ascending, plus a detached
// HEAD banner when HEAD is not attached to any of them.
func (r *Repo) ListBranches() (entries []BranchListEntry, detachedAt string) {
	for _, e := range r.State.Refs.ListBranches() {
		entries = append(entries, BranchListEntry{Name: e.Name, Current: e.Current})
	}
	if r.State.Refs.Head.IsDetached() {
		detachedAt = r.State.Refs.Head.Detached.Short()
	}
	return entries, detachedAt
}

// Checkout switches HEAD to target, which may name a branch or a commit
// ID. If target is a branch name, HEAD attaches to it. If target is an ID
// equal to some branch's tip, HEAD attaches to that branch too. Otherwise,
// if target is a known commit ID, HEAD detaches at it. Fails with
// refstore.ErrUnknownRef if target is neither.
func (r *Repo) Checkout(target string) error {
	refs := r.State.Refs

	if b, ok := refs.Branches[target]; ok {
		tip := object.Zero
		if b.Tip != nil {
			tip = *b.Tip
		}
		if !tip.IsZero() {
			if err := r.materialize(tip); err != nil {
				return err
			}
		}
		refs.Head = refstore.AttachedHead(target)
		log.Info().Str("branch", target).Msg("checkout")
		return nil
	}

	id, err := object.NewID(target)
	if err != nil {
		return fmt.Errorf("checkout %q: %w", target, refstore.ErrUnknownRef)
	}
	if !r.State.Objects.HasCommit(id) {
		return fmt.Errorf("checkout %q: %w", target, refstore.ErrUnknownRef)
	}

	for name, b := range refs.Branches {
		if b.Tip != nil && *b.Tip == id {
			if err := r.materialize(id); err != nil {
				return err
			}
			refs.Head = refstore.AttachedHead(name)
			log.Info().Str("branch", name).Str("commit", string(id)).Msg("checkout (resolved to branch tip)")
			return nil
		}
	}

	if err := r.materialize(id); err != nil {
		return err
	}
	refs.Head = refstore.DetachedHead(id)
	log.Info().Str("commit", string(id)).Msg("checkout (detached)")
	return nil
}

func (r *Repo) materialize(id object.ID) error {
	c, ok := r.State.Objects.Commit(id)
	if !ok {
		return fmt.Errorf("materialize %s: %w", id, refstore.ErrUnknownRef)
	}
	return workdir.Reset(r.Root, c.TreeID, r.State.Objects)
}
