package syncproto

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arvo-vcs/arvo/pkg/repo"
)

func TestDaemonPullServesBundle(t *testing.T) {
	src, _, c2 := seedRepo(t)
	d := NewDaemon(src)
	srv := httptest.NewServer(http.HandlerFunc(d.handle))
	defer srv.Close()

	client := NewClient()
	pr, err := client.Pull(context.Background(), srv.URL, "master")
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if pr.Branch.Tip != c2 {
		t.Fatalf("pulled tip = %s, want %s", pr.Branch.Tip, c2)
	}
	if len(pr.Bundle.Commits) != 2 {
		t.Fatalf("pulled bundle commits = %d, want 2", len(pr.Bundle.Commits))
	}
}

func TestDaemonPullUnknownBranch(t *testing.T) {
	src, _, _ := seedRepo(t)
	d := NewDaemon(src)
	srv := httptest.NewServer(http.HandlerFunc(d.handle))
	defer srv.Close()

	client := NewClient()
	if _, err := client.Pull(context.Background(), srv.URL, "no-such-branch"); err == nil {
		t.Fatalf("expected error pulling unknown branch")
	}
}

func TestDaemonPushThenPullRoundTrip(t *testing.T) {
	dstRoot := t.TempDir()
	dst := repo.Init(dstRoot)
	d := NewDaemon(dst)
	srv := httptest.NewServer(http.HandlerFunc(d.handle))
	defer srv.Close()

	src, _, c2 := seedRepo(t)
	bundle, err := CollectClosure(src, c2)
	if err != nil {
		t.Fatalf("CollectClosure: %v", err)
	}
	client := NewClient()
	req := &PushRequest{
		BranchName: "master",
		Branch:     BranchInfo{Created: c2, Tip: c2},
		Bundle:     bundle,
	}
	if err := client.Push(context.Background(), srv.URL, req); err != nil {
		t.Fatalf("Push: %v", err)
	}

	pr, err := client.Pull(context.Background(), srv.URL, "master")
	if err != nil {
		t.Fatalf("Pull after push: %v", err)
	}
	if pr.Branch.Tip != c2 {
		t.Fatalf("pulled tip after push = %s, want %s", pr.Branch.Tip, c2)
	}
}
