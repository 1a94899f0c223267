package main

import (
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/object"
	"github.com/arvo-vcs/arvo/pkg/repo"
)

func runCheckoutNew(params map[string]string) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	if err := r.CreateBranch(params["name"], r.State.Refs.ResolveHead()); err != nil {
		return err
	}
	return r.Save()
}

func runCheckoutNewAt(params map[string]string) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	id, err := object.NewID(params["id"])
	if err != nil {
		return fmt.Errorf("checkout -b: %w", err)
	}
	if err := r.CreateBranch(params["name"], id); err != nil {
		return err
	}
	return r.Save()
}

func runCheckoutSwitch(params map[string]string) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	if err := r.Checkout(params["target"]); err != nil {
		return err
	}
	return r.Save()
}
