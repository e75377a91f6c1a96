package foldertree

import "github.com/pkg/errors"

// Sentinel error kinds. Every operation returns one of these, wrapped with
// github.com/pkg/errors for path/operation context; callers should compare
// with errors.Is, which pkg/errors preserves through Wrap/Wrapf.
var (
	// ErrInvalidPath is returned for a syntactically invalid path.
	ErrInvalidPath = errors.New("foldertree: invalid path")

	// ErrExists is returned when an operation's target name already exists
	// where the operation requires it not to (create, move's target, and
	// the "target is root" / "target is an ancestor of source" move
	// cases).
	ErrExists = errors.New("foldertree: already exists")

	// ErrNotFound is returned when some component along a path does not
	// exist.
	ErrNotFound = errors.New("foldertree: not found")

	// ErrNotEmpty is returned by Remove on a folder that still has
	// children.
	ErrNotEmpty = errors.New("foldertree: not empty")

	// ErrForbiddenOnRoot is returned when an operation refuses to treat
	// the root as its source or removal target.
	ErrForbiddenOnRoot = errors.New("foldertree: operation forbidden on root")

	// ErrMoveIntoDescendant is returned by Move when target names a node
	// strictly below source.
	ErrMoveIntoDescendant = errors.New("foldertree: cannot move into own descendant")
)
