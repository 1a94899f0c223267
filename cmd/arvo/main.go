package main

import (
	"fmt"
	"os"

	"github.com/arvo-vcs/arvo/pkg/config"
	"github.com/arvo-vcs/arvo/pkg/logx"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logx.Setup(cfg.LogLevel)

	registerRoutes(cfg)

	if err := dispatch(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
