package main

import (
	"context"
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/config"
	"github.com/arvo-vcs/arvo/pkg/repo"
	"github.com/arvo-vcs/arvo/pkg/syncproto"
)

func runPull(params map[string]string, cfg config.Config) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	remote, ok := r.State.Refs.FindRemote(params["remote"])
	if !ok {
		return fmt.Errorf("pull: unknown remote %q", params["remote"])
	}

	client := syncproto.NewClient()
	client.Compress = cfg.WireCompression

	branch := params["branch"]
	pr, err := client.Pull(context.Background(), remote.URL, branch)
	if err != nil {
		return err
	}
	syncproto.RawImport(r, branch, pr.Branch, pr.Bundle)
	return r.Save()
}
