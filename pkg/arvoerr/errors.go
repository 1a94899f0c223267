// Package arvoerr defines the sentinel error kinds shared across the
// engine, scanner, and sync protocol, so callers anywhere in the stack
// can classify a failure with errors.Is regardless of which layer wrapped
// it.
package arvoerr

import "errors"

var (
	// ErrIO covers unreadable/unwritable paths in the working-tree
	// scanner, checkout materialization, and persistence file access.
	ErrIO = errors.New("io error")

	// ErrNetwork covers transport-level failures talking to a remote
	// daemon (connection refused, timeout, DNS).
	ErrNetwork = errors.New("network error")

	// ErrProtocol covers a peer responding with a status or payload this
	// implementation does not understand.
	ErrProtocol = errors.New("protocol error")
)
