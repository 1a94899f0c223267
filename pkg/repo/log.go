package repo

import "sort"

// BranchLog is the per-branch log view the CLI's `log` command renders:
// a branch name plus its reachable commits, sorted by commit time
// descending.
type BranchLog struct {
	Branch  string
	Commits []CommitAt
}

// Log returns, for every branch, its reachable commit history newest
// first.
func (r *Repo) Log() ([]BranchLog, error) {
	entries, _ := r.ListBranches()
	out := make([]BranchLog, 0, len(entries))
	for _, e := range entries {
		b := r.State.Refs.Branches[e.Name]
		if b == nil || b.Tip == nil {
			out = append(out, BranchLog{Branch: e.Name})
			continue
		}
		chain, err := r.Reachable(*b.Tip, "")
		if err != nil {
			return nil, err
		}
		sort.SliceStable(chain, func(i, j int) bool {
			return chain[i].Commit.Time > chain[j].Commit.Time
		})
		out = append(out, BranchLog{Branch: e.Name, Commits: chain})
	}
	return out, nil
}
