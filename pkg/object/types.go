package object

// Kind names the object variants stored in the object store and used as
// the type tag in HashTyped's envelope.
type Kind string

const (
	KindBlob    Kind = "blob"
	KindTree    Kind = "tree"
	KindCommit  Kind = "commit"
	KindStorage Kind = "storage"
)

// Blob is an immutable text payload. Its ID is HashTyped(KindBlob,
// canonical bytes), i.e. over the length-prefixed Data (see EncodeBlob).
type Blob struct {
	Data []byte
}

// LineKind tags a TreeLine as pointing at a Blob or at a nested Tree.
type LineKind uint8

const (
	LineBlob LineKind = iota
	LineTree
)

// TreeLine is one entry of a Tree: either a blob line or a tree line.
// Path is relative to the working-directory root; tree lines' paths end
// with '/'.
type TreeLine struct {
	Kind LineKind
	ID   ID
	Path string
}

// Tree is an ordered sequence of TreeLines representing one directory
// level. Its ID is HashTyped(KindTree, canonical bytes of the sequence).
type Tree struct {
	Lines []TreeLine
}

// Commit is an immutable snapshot of the working tree plus history
// metadata. Its ID is HashTyped(KindCommit, canonical bytes).
type Commit struct {
	Time    int64
	Author  string
	Message string
	TreeID  ID
	Parents []ID
}
