package main

import (
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/repo"
)

func runGC(params map[string]string) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	summary, err := r.GC()
	if err != nil {
		return err
	}
	if err := r.Save(); err != nil {
		return err
	}
	fmt.Printf("removed %d commits, %d trees, %d blobs\n",
		summary.CommitsRemoved, summary.TreesRemoved, summary.BlobsRemoved)
	return nil
}
