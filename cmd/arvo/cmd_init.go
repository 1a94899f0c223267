package main

import (
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/repo"
)

func runInit(params map[string]string) error {
	r := repo.Init(".")
	if err := r.Save(); err != nil {
		return err
	}
	fmt.Println("initialized empty repository")
	return nil
}
