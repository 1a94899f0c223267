package main

import (
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/repo"
)

func runBranchList(params map[string]string) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	entries, detachedAt := r.ListBranches()
	for _, e := range entries {
		marker := " "
		if e.Current {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, e.Name)
	}
	if detachedAt != "" {
		fmt.Printf("(HEAD detached at %s)\n", detachedAt)
	}
	return nil
}

func runBranchDelete(params map[string]string) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	if err := r.DeleteBranch(params["name"]); err != nil {
		return err
	}
	return r.Save()
}
