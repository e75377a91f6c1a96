// Package pathlock implements the folder tree's node type and the
// hand-over-hand path-locking walkers built on top of nodesync. Every
// operation that needs to reach a node by path goes through the walkers
// here; nothing outside this package (and nodesync) acquires or releases a
// read or write lock directly. The tree operations do call
// AwaitSubtreeQuiescent themselves, on nodes reached through these walkers.
package pathlock

import (
	"github.com/nbtaylor/foldertree/childset"
	"github.com/nbtaylor/foldertree/nodesync"
	"github.com/nbtaylor/foldertree/pathname"
)

// Node is a single folder: a synchronizer, a child map, and a non-owning
// back-link to its parent (nil for the root). Children are owned by their
// parent; freeing a node abandons (and, transitively, frees) the subtree
// beneath it.
type Node struct {
	sync     *nodesync.Node
	children *childset.Set[*Node]
	parent   *Node
}

// NewNode returns a fresh, childless, unlocked node with no parent. Callers
// that are inserting it into a tree are responsible for setting its parent
// via SetParent.
func NewNode() *Node {
	return &Node{
		sync:     nodesync.New(),
		children: childset.New[*Node](),
	}
}

// Parent returns n's parent, or nil if n is a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// SetParent re-points n's parent back-link. Only ever called while n is not
// reachable from any other goroutine's perspective: either at creation
// time (holding the future parent write-locked) or during Move (holding
// every path into n locked and n's subtree quiesced).
func (n *Node) SetParent(p *Node) {
	n.parent = p
}

// Children returns n's child container. Callers must hold an appropriate
// lock on n before reading or mutating it.
func (n *Node) Children() *childset.Set[*Node] {
	return n.children
}

// AcquireRead/ReleaseRead/AcquireWrite/ReleaseWrite/AwaitSubtreeQuiescent
// forward to the node's synchronizer; exported here so pathlock's walkers
// and foldertree's operations share one vocabulary.

func (n *Node) AcquireRead()           { n.sync.AcquireRead() }
func (n *Node) ReleaseRead()           { n.sync.ReleaseRead() }
func (n *Node) AcquireWrite()          { n.sync.AcquireWrite() }
func (n *Node) ReleaseWrite()          { n.sync.ReleaseWrite() }
func (n *Node) AwaitSubtreeQuiescent() { n.sync.AwaitSubtreeQuiescent() }

// Snapshot exposes the node's synchronizer counters, for diagnostics only.
func (n *Node) Snapshot() nodesync.Counters { return n.sync.Snapshot() }

// Idle reports whether the node's synchronizer counters are all zero.
func (n *Node) Idle() bool { return n.sync.Idle() }

// releaseReadChain releases a read-lock on n and then, walking parent
// links, on every ancestor of n, stopping at (and not releasing) stopAt.
// Passing nil for stopAt releases all the way to the root, inclusive.
func releaseReadChain(n, stopAt *Node) {
	for cur := n; cur != stopAt; cur = cur.parent {
		cur.ReleaseRead()
	}
}

// ReadLockPath walks from root to the node named by path, acquiring a
// read-lock at every node visited, inclusive of the target. On success it
// returns the target node with the whole path read-locked; the caller must
// eventually call ReleaseReadPath on the result. On a missing component, it
// rolls back every lock taken by this call (LIFO) and returns ok=false.
func ReadLockPath(root *Node, path string) (target *Node, ok bool) {
	cur := root
	cur.AcquireRead()

	remaining := path
	for {
		first, rest, more := pathname.Split(remaining)
		if !more {
			return cur, true
		}
		child, present := cur.children.Get(first)
		if !present {
			releaseReadChain(cur, nil)
			return nil, false
		}
		child.AcquireRead()
		cur = child
		remaining = rest
	}
}

// ReleaseReadPath releases a full lock chain acquired by ReadLockPath,
// from target back up through the root.
func ReleaseReadPath(target *Node) {
	releaseReadChain(target, nil)
}

// ReadLockPrefixWriteLockTail walks from root to the node named by path,
// acquiring a read-lock at every ancestor and a write-lock on the target
// itself. On a missing component it rolls back everything taken by this
// call and returns ok=false.
func ReadLockPrefixWriteLockTail(root *Node, path string) (target *Node, ok bool) {
	return readLockPrefixWriteLockTail(root, nil, path)
}

// readLockPrefixWriteLockTail does the actual walk; stopAt bounds how far
// a rollback-on-miss releases (nil means "all the way to the root") and
// also names a node that is already locked by the caller, externally to
// this call: when cur == stopAt (only possible on the first step of a
// relative walk), this function takes no lock on cur itself before
// descending, since the caller already holds one.
func readLockPrefixWriteLockTail(cur, stopAt *Node, remaining string) (*Node, bool) {
	first, rest, more := pathname.Split(remaining)

	if cur != stopAt {
		if !more {
			cur.AcquireWrite()
			return cur, true
		}
		cur.AcquireRead()
	}

	child, present := cur.children.Get(first)
	if !present {
		// No-op when cur == stopAt: there is nothing of ours to release
		// at the externally-locked boundary.
		releaseReadChain(cur, stopAt)
		return nil, false
	}
	return readLockPrefixWriteLockTail(child, stopAt, rest)
}

// ReleaseReadPrefixWriteTail releases a lock chain acquired by
// ReadLockPrefixWriteLockTail: a write-unlock on target, then a read-unlock
// chain from target's parent up to the root.
func ReleaseReadPrefixWriteTail(target *Node) {
	target.ReleaseWrite()
	if p := target.Parent(); p != nil {
		releaseReadChain(p, nil)
	}
}

// RelativeReadWriteLock is the LCA-relative variant used by Move: starting
// from boundary, which the caller already holds write-locked, it walks
// relativePath, read-locking intermediate nodes and write-locking the
// tail, without re-acquiring a lock on boundary itself. On miss, it rolls
// back every lock taken by this call, down to (but not including)
// boundary.
//
// relativePath must not be pathname.Root: a caller whose target coincides
// with boundary should skip this call entirely and use boundary itself as
// the target, since there is no separate lock to take or release in that
// case.
func RelativeReadWriteLock(boundary *Node, relativePath string) (target *Node, ok bool) {
	return readLockPrefixWriteLockTail(boundary, boundary, relativePath)
}

// ReleaseRelativeReadWriteLock releases a lock chain acquired by
// RelativeReadWriteLock: a write-unlock on target, then a read-unlock
// chain up to (but not including) boundary.
func ReleaseRelativeReadWriteLock(target, boundary *Node) {
	target.ReleaseWrite()
	if p := target.Parent(); p != nil {
		releaseReadChain(p, boundary)
	}
}
