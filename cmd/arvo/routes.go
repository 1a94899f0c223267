package main

import (
	"fmt"
	"strings"
)

// route is one row of the CLI grammar table: a fixed pattern of literal
// tokens and named parameters (tokens prefixed with "$"), matched
// against argv in declaration order. The first full match wins.
type route struct {
	pattern []string
	help    string
	run     func(params map[string]string) error
}

var routes []route

func addRoute(pattern, help string, run func(params map[string]string) error) {
	routes = append(routes, route{pattern: strings.Fields(pattern), help: help, run: run})
}

// dispatch matches argv against every route in order and runs the first
// one whose shape fits. It returns an error listing every known pattern
// if nothing matches.
func dispatch(argv []string) error {
	for _, rt := range routes {
		if params, ok := match(rt.pattern, argv); ok {
			return rt.run(params)
		}
	}
	return fmt.Errorf("no command matches %q\n\n%s", strings.Join(argv, " "), helpText())
}

func match(pattern, argv []string) (map[string]string, bool) {
	if len(pattern) != len(argv) {
		return nil, false
	}
	params := make(map[string]string)
	for i, tok := range pattern {
		if strings.HasPrefix(tok, "$") {
			params[strings.TrimPrefix(tok, "$")] = argv[i]
			continue
		}
		if tok != argv[i] {
			return nil, false
		}
	}
	return params, true
}

func helpText() string {
	var b strings.Builder
	b.WriteString("usage:\n")
	for _, rt := range routes {
		fmt.Fprintf(&b, "  arvo %-28s %s\n", strings.Join(rt.pattern, " "), rt.help)
	}
	return b.String()
}
