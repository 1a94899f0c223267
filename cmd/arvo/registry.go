package main

import "github.com/arvo-vcs/arvo/pkg/config"

// registerRoutes builds the full CLI grammar table. Order matters: more
// specific patterns (more literal tokens) are registered before the
// general fallbacks they could otherwise be shadowed by.
func registerRoutes(cfg config.Config) {
	addRoute("init", "create empty repository", runInit)
	addRoute("commit -m $msg", "commit with author \"author\" and current time", runCommit)
	addRoute("log", "per-branch log, newest first", runLog)
	addRoute("checkout -b $name $id", "create branch at id and switch", runCheckoutNewAt)
	addRoute("checkout -b $name", "create branch at HEAD and switch", runCheckoutNew)
	addRoute("checkout $target", "switch HEAD", runCheckoutSwitch)
	addRoute("branch -D $name", "delete branch", runBranchDelete)
	addRoute("branch", "list branches", runBranchList)
	addRoute("gc", "garbage-collect unreachable commits", runGC)
	addRoute("daemon $port", "serve HTTP on localhost:port", func(p map[string]string) error {
		return runDaemon(p, cfg)
	})
	addRoute("pull $remote $branch", "pull branch from remote", func(p map[string]string) error {
		return runPull(p, cfg)
	})
	addRoute("push $remote $branch", "push branch to remote", func(p map[string]string) error {
		return runPush(p, cfg)
	})
	addRoute("clone $url $branch", "initialize and pull from url", func(p map[string]string) error {
		return runClone(p, cfg)
	})
	addRoute("remote -v", "list remotes", runRemoteList)
	addRoute("remote add $name $url", "add remote", runRemoteAdd)
	addRoute("remote rm $name", "remove remote", runRemoteRemove)
}
