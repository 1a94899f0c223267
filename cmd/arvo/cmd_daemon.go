package main

import (
	"fmt"

	"github.com/arvo-vcs/arvo/pkg/config"
	"github.com/arvo-vcs/arvo/pkg/repo"
	"github.com/arvo-vcs/arvo/pkg/syncproto"
)

func runDaemon(params map[string]string, cfg config.Config) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	d := syncproto.NewDaemon(r)
	addr := fmt.Sprintf("localhost:%s", params["port"])
	return d.Serve(addr, cfg.DaemonReadTimeout, cfg.DaemonWriteTimeout)
}
