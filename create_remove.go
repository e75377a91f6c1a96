package foldertree

import (
	"github.com/pkg/errors"

	"github.com/nbtaylor/foldertree/pathlock"
	"github.com/nbtaylor/foldertree/pathname"
)

// Create makes a new, empty folder at path. path's parent must already
// exist (i.e. every component up to, but not including, the last) and path
// must not be the root itself.
//
// Returns ErrInvalidPath for a malformed path, ErrExists if path is the
// root or a folder already exists there, ErrNotFound if path's parent
// does not exist.
func (t *Tree) Create(path string) error {
	if !pathname.Valid(path) {
		return errors.Wrapf(ErrInvalidPath, "create %q", path)
	}
	if pathname.IsRoot(path) {
		return errors.Wrapf(ErrExists, "create %q: is the root", path)
	}

	parentPath, name, _ := pathname.SplitParent(path)

	parent, ok := pathlock.ReadLockPrefixWriteLockTail(t.root, parentPath)
	if !ok {
		return errors.Wrapf(ErrNotFound, "create %q: parent %q missing", path, parentPath)
	}

	if parent.Children().Has(name) {
		pathlock.ReleaseReadPrefixWriteTail(parent)
		return errors.Wrapf(ErrExists, "create %q", path)
	}

	child := pathlock.NewNode()
	child.SetParent(parent)
	parent.Children().Put(name, child)

	pathlock.ReleaseReadPrefixWriteTail(parent)
	return nil
}

// Remove deletes the empty folder at path. It must not be the root.
//
// Returns ErrInvalidPath for a malformed path, ErrForbiddenOnRoot if path
// is the root, ErrNotFound if path does not exist, ErrNotEmpty if path
// names a folder that still has children.
func (t *Tree) Remove(path string) error {
	if !pathname.Valid(path) {
		return errors.Wrapf(ErrInvalidPath, "remove %q", path)
	}
	if pathname.IsRoot(path) {
		return errors.Wrapf(ErrForbiddenOnRoot, "remove %q", path)
	}

	parentPath, name, _ := pathname.SplitParent(path)

	parent, ok := pathlock.ReadLockPrefixWriteLockTail(t.root, parentPath)
	if !ok {
		return errors.Wrapf(ErrNotFound, "remove %q: parent %q missing", path, parentPath)
	}

	node, present := parent.Children().Get(name)
	if !present {
		pathlock.ReleaseReadPrefixWriteTail(parent)
		return errors.Wrapf(ErrNotFound, "remove %q", path)
	}

	// Safe because parent is write-locked: no new operation can descend
	// into node while we wait for its subtree to go quiet.
	node.AwaitSubtreeQuiescent()

	if node.Children().Len() > 0 {
		pathlock.ReleaseReadPrefixWriteTail(parent)
		return errors.Wrapf(ErrNotEmpty, "remove %q", path)
	}

	parent.Children().Delete(name)
	node.SetParent(nil)

	pathlock.ReleaseReadPrefixWriteTail(parent)
	return nil
}
