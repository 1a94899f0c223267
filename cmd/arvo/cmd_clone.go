package main

import (
	"context"
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/config"
	"github.com/arvo-vcs/arvo/pkg/syncproto"
)

func runClone(params map[string]string, cfg config.Config) error {
	client := syncproto.NewClient()
	client.Compress = cfg.WireCompression

	r, err := client.Clone(context.Background(), ".", params["url"], params["branch"])
	if err != nil {
		return err
	}
	if err := r.Save(); err != nil {
		return err
	}
	fmt.Println("clone complete")
	return nil
}
