// Package foldertree implements an in-memory, concurrent hierarchical
// namespace of named folders addressed by absolute paths. Folders carry no
// payload; a folder's entire state is the set of its named children.
//
// The package exposes four operations - List, Create, Remove, Move -
// callable from any number of goroutines at once. Correctness under
// concurrency is the whole point: see the nodesync and pathlock packages
// for the per-node reader/writer/subtree-quiescence primitive and the
// hand-over-hand path-locking discipline the operations below are built
// from.
package foldertree

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nbtaylor/foldertree/pathlock"
	"github.com/nbtaylor/foldertree/pathname"
)

// Tree is a rooted namespace of folders. The zero value is not usable;
// construct one with New. A *Tree is safe for concurrent use by any number
// of goroutines.
type Tree struct {
	root *pathlock.Node
}

// New returns a fresh Tree containing only the root folder "/".
func New() *Tree {
	return &Tree{root: pathlock.NewNode()}
}

// Free releases every node in the tree. It must only be called once no
// other operation on the tree is in flight; the caller owns that
// synchronization. Go's garbage collector reclaims the node graph once
// Free drops the Tree's last reference to it, so Free only drops that
// reference; it performs no check for in-flight operations and there is no
// explicit deallocation to perform.
func (t *Tree) Free() {
	t.root = nil
}

// List returns a snapshot of path's children as a single string: names
// joined by ",", no trailing separator, "" for an empty folder, sorted
// lexicographically for determinism. It returns ErrInvalidPath for a
// malformed path and ErrNotFound if no folder exists at path.
func (t *Tree) List(path string) (string, error) {
	names, err := t.ListNames(path)
	if err != nil {
		return "", err
	}
	return strings.Join(names, ","), nil
}

// ListNames is the same operation as List, returning the child names as a
// slice instead of a pre-joined string. It shares List's exact commit
// point: both read the child set while the target is read-locked, so a
// ListNames call and a List call that observe the same linearization order
// always agree.
func (t *Tree) ListNames(path string) ([]string, error) {
	if !pathname.Valid(path) {
		return nil, errors.Wrapf(ErrInvalidPath, "list %q", path)
	}

	node, ok := pathlock.ReadLockPath(t.root, path)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "list %q", path)
	}
	names := node.Children().Names()
	pathlock.ReleaseReadPath(node)
	return names, nil
}

// Stats is a point-in-time diagnostic snapshot of the tree root's
// synchronizer counters. It is not part of the tree's protocol: it exists
// for tests and operational visibility only. Taking it holds the root's
// mutex briefly, never waits on a condition variable, and never changes
// any counter.
type Stats struct {
	RootReaders int
	RootWriters int
	RootPending int // sum of readWait + writeWait at the root
}

// Stats returns a snapshot as described above.
func (t *Tree) Stats() Stats {
	c := t.root.Snapshot()
	return Stats{
		RootReaders: c.ReadCount,
		RootWriters: c.WriteCount,
		RootPending: c.ReadWait + c.WriteWait,
	}
}

// Quiescent reports whether every reachable node's synchronizer counters
// are currently zero. It is a diagnostic for tests, not part of the
// tree's protocol, and is only meaningful when the caller already knows
// no operation is in flight.
func (t *Tree) Quiescent() bool {
	return nodeQuiescent(t.root)
}

func nodeQuiescent(n *pathlock.Node) bool {
	if !n.Idle() {
		return false
	}
	idle := true
	n.Children().Each(func(_ string, child *pathlock.Node) {
		if !nodeQuiescent(child) {
			idle = false
		}
	})
	return idle
}
