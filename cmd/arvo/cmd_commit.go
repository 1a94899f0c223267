package main

import (
	"fmt"
	"time"

	"github.com/arvo-vcs/arvo/pkg/repo"
)

func runCommit(params map[string]string) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	id, err := r.Commit(params["msg"], "author", time.Now().Unix())
	if err != nil {
		return err
	}
	if err := r.Save(); err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}
