package main

import (
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/repo"
)

func runRemoteList(params map[string]string) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	for _, rm := range r.State.Refs.Remotes {
		fmt.Printf("%s\t%s\n", rm.Name, rm.URL)
	}
	return nil
}

func runRemoteAdd(params map[string]string) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	if err := r.State.Refs.AddRemote(params["name"], params["url"]); err != nil {
		return err
	}
	return r.Save()
}

func runRemoteRemove(params map[string]string) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	if err := r.State.Refs.RemoveRemote(params["name"]); err != nil {
		return err
	}
	return r.Save()
}
