package repo

import (
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/object"
	"github.com/arvo-vcs/arvo/pkg/refstore"
)

// CommitAt pairs a commit ID with its value, the unit Reachable walks in.
type CommitAt struct {
	ID     object.ID
	Commit *object.Commit
}

// Reachable performs a depth-first traversal from the commit "from",
// following parents, and returns the visited (ID, Commit) pairs in
// traversal order. If downTo is non-zero, the traversal stops after
// visiting the commit whose ID equals downTo — downTo itself IS included
// in the result, so a walk between adjacent commits yields both endpoints.
// The commit graph is a DAG by construction (a commit's ID depends on its
// parents' IDs), so no cycle guard is needed, but the walk is iterative
// to avoid recursion-depth limits on long histories.
func (r *Repo) Reachable(from, downTo object.ID) ([]CommitAt, error) {
	var out []CommitAt
	current := from
	for !current.IsZero() {
		c, ok := r.State.Objects.Commit(current)
		if !ok {
			return nil, fmt.Errorf("reachable: missing commit %s: %w", current, object.ErrCorruption)
		}
		out = append(out, CommitAt{ID: current, Commit: c})
		if current == downTo {
			break
		}
		if len(c.Parents) == 0 {
			break
		}
		current = c.Parents[0]
	}
	return out, nil
}

// ReachableFromAll unions Reachable(tip, Zero) across every given root,
// deduplicating by commit ID. Used by GC to compute the retained set R
// from every branch tip plus HEAD's resolved ID.
func (r *Repo) ReachableFromAll(roots []object.ID) (map[object.ID]*object.Commit, error) {
	out := make(map[object.ID]*object.Commit)
	for _, root := range roots {
		if root.IsZero() {
			continue
		}
		if _, seen := out[root]; seen {
			continue
		}
		chain, err := r.Reachable(root, object.Zero)
		if err != nil {
			return nil, err
		}
		for _, ca := range chain {
			out[ca.ID] = ca.Commit
		}
	}
	return out, nil
}

// HeadRef resolves HEAD, then follows the first-parent chain n times.
// Fails with refstore.ErrNoParent if the chain is shorter than n.
func (r *Repo) HeadRef(n int) (object.ID, error) {
	current := r.State.Refs.ResolveHead()
	for i := 0; i < n; i++ {
		if current.IsZero() {
			return object.Zero, fmt.Errorf("head~%d: %w", n, refstore.ErrNoParent)
		}
		c, ok := r.State.Objects.Commit(current)
		if !ok {
			return object.Zero, fmt.Errorf("head~%d: missing commit %s: %w", n, current, object.ErrCorruption)
		}
		if len(c.Parents) == 0 {
			return object.Zero, fmt.Errorf("head~%d: %w", n, refstore.ErrNoParent)
		}
		current = c.Parents[0]
	}
	return current, nil
}
