package object

import "errors"

// ErrCorruption indicates the referential closure invariant is violated:
// a commit, tree, or blob references an ID that is not itself present in
// the store.
var ErrCorruption = errors.New("referential closure violated")
