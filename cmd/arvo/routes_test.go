package main

import (
	"errors"
	"strings"
	"testing"
)

var errBoom = errors.New("boom")

func withFreshRoutes(t *testing.T) {
	t.Helper()
	saved := routes
	routes = nil
	t.Cleanup(func() { routes = saved })
}

func TestMatchLiteralAndParams(t *testing.T) {
	params, ok := match([]string{"checkout", "-b", "$name"}, []string{"checkout", "-b", "feature"})
	if !ok {
		t.Fatalf("expected match")
	}
	if params["name"] != "feature" {
		t.Fatalf("params[name] = %q, want feature", params["name"])
	}
}

func TestMatchWrongLength(t *testing.T) {
	if _, ok := match([]string{"log"}, []string{"log", "extra"}); ok {
		t.Fatalf("expected no match on length mismatch")
	}
}

func TestMatchLiteralMismatch(t *testing.T) {
	if _, ok := match([]string{"branch", "-D", "$name"}, []string{"branch", "-x", "feature"}); ok {
		t.Fatalf("expected no match on literal token mismatch")
	}
}

func TestDispatchFirstMatchWins(t *testing.T) {
	withFreshRoutes(t)
	var hitFirst, hitSecond bool
	addRoute("log", "show log", func(map[string]string) error { hitFirst = true; return nil })
	addRoute("log", "second handler, should never run", func(map[string]string) error { hitSecond = true; return nil })

	if err := dispatch([]string{"log"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !hitFirst || hitSecond {
		t.Fatalf("expected only the first matching route to run: hitFirst=%v hitSecond=%v", hitFirst, hitSecond)
	}
}

func TestDispatchNoMatchListsHelp(t *testing.T) {
	withFreshRoutes(t)
	addRoute("init", "initialize a repository", func(map[string]string) error { return nil })
	addRoute("commit -m $msg", "record a commit", func(map[string]string) error { return nil })

	err := dispatch([]string{"bogus"})
	if err == nil {
		t.Fatalf("expected error for unmatched command")
	}
	if !strings.Contains(err.Error(), "init") || !strings.Contains(err.Error(), "commit -m") {
		t.Fatalf("error should list every known pattern, got: %v", err)
	}
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	withFreshRoutes(t)
	addRoute("gc", "collect garbage", func(map[string]string) error {
		return errBoom
	})
	if err := dispatch([]string{"gc"}); err != errBoom {
		t.Fatalf("dispatch error = %v, want errBoom", err)
	}
}
