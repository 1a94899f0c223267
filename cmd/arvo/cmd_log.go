package main

import (
	"fmt"
	"time"

	"github.com/arvo-vcs/arvo/pkg/repo"
)

func runLog(params map[string]string) error {
	r, err := repo.Open(".")
	if err != nil {
		return err
	}
	branches, err := r.Log()
	if err != nil {
		return err
	}
	for _, b := range branches {
		fmt.Printf("Log for %s\n", b.Branch)
		for _, c := range b.Commits {
			fmt.Println(formatLogLine(c))
		}
	}
	return nil
}

func formatLogLine(c repo.CommitAt) string {
	msg := c.Commit.Message
	if len(msg) > 40 {
		msg = msg[:40]
	}
	t := time.Unix(c.Commit.Time, 0).UTC().Format("2006/01/02 15:04:05")
	return fmt.Sprintf("* %s - %s (%s) %s", c.ID, msg, t, c.Commit.Author)
}
