package main

import (
	"context"
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/config"
	"github.com/arvo-vcs/arvo/pkg/object"
	"github.com/arvo-vcs/arvo/pkg/repo"
	"github.com/arvo-vcs/arvo/pkg/syncproto"
)

func runPush(params map[string]string, cfg config.Config) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	remote, ok := r.State.Refs.FindRemote(params["remote"])
	if !ok {
		return fmt.Errorf("push: unknown remote %q", params["remote"])
	}

	branchName := params["branch"]
	b, ok := r.State.Refs.Branches[branchName]
	if !ok {
		return fmt.Errorf("push: unknown local branch %q", branchName)
	}

	info := syncproto.ToWire(b)
	bundle, err := syncproto.CollectClosure(r, info.Tip)
	if err != nil {
		return err
	}

	client := syncproto.NewClient()
	client.Compress = cfg.WireCompression

	req := &syncproto.PushRequest{
		BranchName:                 branchName,
		Branch:                     info,
		LatestRemoteBranchPosition: object.Zero,
		Bundle:                     bundle,
	}
	return client.Push(context.Background(), remote.URL, req)
}
