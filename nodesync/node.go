// Copyright 2020 Nathan Taylor (nbtaylor@gmail.com)
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package nodesync implements the per-node concurrency primitive that the
// folder tree is built on: a reader/writer lock augmented with a third,
// orthogonal notion of "subtree presence".
//
// Unlike a classic RWMutex, every acquisition of any kind - read or write -
// also registers the calling goroutine as present somewhere in the node's
// subtree. A node is "subtree-quiet" when nobody but the caller itself is
// present below it. `Remove` and `Move` need this to safely detach and free
// (or relocate) an entire subtree: once the node's parent is write-locked, no
// new operation can enter the subtree from above, so waiting for it to go
// quiet is sufficient to prove that nobody is left inside it.
//
// The state is five counters (readCount, writeCount, readWait, writeWait,
// subtreeCount) protected by one mutex, with three condition variables
// (readCond, writeCond, subtreeCond) used to park and wake waiters. Writers
// are preferred over readers: a reader that finds a writer holding or
// waiting must itself wait, which bounds writer starvation at the cost of
// allowing a steady stream of writers to starve readers (accepted).
//
// Every method here must succeed. A counter found to be in an impossible
// state (e.g. going negative) indicates a bug in the locking protocol above
// this package, not a recoverable condition, so it is treated as fatal.
package nodesync

import (
	"sync"

	"github.com/nbtaylor/foldertree/internal/fatal"
)

// Node is the per-tree-node synchronizer. Each tree node (pathlock.Node)
// holds one, and it is used only through the `pathlock` package; nothing
// else touches condition variables directly.
type Node struct {
	mu sync.Mutex

	readCond    *sync.Cond
	writeCond   *sync.Cond
	subtreeCond *sync.Cond

	readCount  int
	writeCount int
	readWait   int
	writeWait  int

	// subtreeCount is the number of in-flight operations currently holding
	// any lock on this node or any descendant of it, plus one for each
	// caller presently parked inside AwaitSubtreeQuiescent. A node is
	// subtree-quiet iff subtreeCount <= 1 (the 1 accounts for the caller of
	// AwaitSubtreeQuiescent itself).
	subtreeCount int
}

// New returns a freshly initialized, unlocked Node.
func New() *Node {
	n := &Node{}
	n.readCond = sync.NewCond(&n.mu)
	n.writeCond = sync.NewCond(&n.mu)
	n.subtreeCond = sync.NewCond(&n.mu)
	return n
}

// AcquireRead registers the caller as present in this node's subtree. If a
// writer holds or is waiting for this node, it parks at least once and then
// until no writer holds the node; it then marks the caller as an active
// reader.
func (n *Node) AcquireRead() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.subtreeCount++

	if n.writeWait > 0 || n.writeCount > 0 {
		n.readWait++
		// A waiting writer (writeCount still 0) must still be let go first:
		// park at least once rather than re-checking writeCount before the
		// first wait, so a writer that is merely queued, not yet holding,
		// still gets priority over a reader arriving after it.
		for {
			n.readCond.Wait()
			if n.writeCount == 0 {
				break
			}
		}
		n.readWait--
	}

	n.readCount++
	// Cascade-wake: let any other reader parked behind us proceed too,
	// rather than waiting for a writer to wake just one of us at a time.
	n.readCond.Signal()
}

// ReleaseRead undoes a prior AcquireRead.
func (n *Node) ReleaseRead() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.readCount--
	if n.readCount < 0 {
		fatal.Abort("nodesync: ReleaseRead without matching AcquireRead")
	}
	if n.readCount == 0 {
		n.writeCond.Signal()
	}

	n.subtreeCount--
	if n.subtreeCount < 0 {
		fatal.Abort("nodesync: subtree count went negative on ReleaseRead")
	}
	if n.subtreeCount <= 1 {
		n.subtreeCond.Signal()
	}
}

// AcquireWrite registers the caller as present in this node's subtree and
// blocks until no reader or writer holds this node, then marks the caller
// as the sole active writer.
func (n *Node) AcquireWrite() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.subtreeCount++

	for n.writeCount > 0 || n.readCount > 0 {
		n.writeWait++
		n.writeCond.Wait()
		n.writeWait--
	}

	n.writeCount++
}

// ReleaseWrite undoes a prior AcquireWrite.
func (n *Node) ReleaseWrite() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.writeCount--
	if n.writeCount < 0 {
		fatal.Abort("nodesync: ReleaseWrite without matching AcquireWrite")
	}

	if n.readWait > 0 {
		n.readCond.Signal()
	} else {
		n.writeCond.Signal()
	}

	n.subtreeCount--
	if n.subtreeCount < 0 {
		fatal.Abort("nodesync: subtree count went negative on ReleaseWrite")
	}
	if n.subtreeCount <= 1 {
		n.subtreeCond.Signal()
	}
}

// AwaitSubtreeQuiescent blocks until nobody but the caller is present
// anywhere in this node's subtree.
//
// The caller MUST already hold a write-lock on some ancestor of this node
// (or otherwise have made it unreachable from above) before calling this:
// that is what prevents a new operation from entering the subtree and
// re-incrementing subtreeCount while this call is waiting.
func (n *Node) AwaitSubtreeQuiescent() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.subtreeCount++
	for n.subtreeCount > 1 {
		n.subtreeCond.Wait()
	}
	n.subtreeCount--
	if n.subtreeCount < 0 {
		fatal.Abort("nodesync: subtree count went negative on AwaitSubtreeQuiescent")
	}
}

// Counters is a point-in-time snapshot of a Node's internal state, exposed
// for diagnostics and tests only (see Tree.Stats in the root package).
type Counters struct {
	ReadCount    int
	WriteCount   int
	ReadWait     int
	WriteWait    int
	SubtreeCount int
}

// Snapshot returns the current counter values. It takes the node's own
// mutex only, never blocks on a condition variable, and never perturbs any
// of the values it reports.
func (n *Node) Snapshot() Counters {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Counters{
		ReadCount:    n.readCount,
		WriteCount:   n.writeCount,
		ReadWait:     n.readWait,
		WriteWait:    n.writeWait,
		SubtreeCount: n.subtreeCount,
	}
}

// Idle reports whether every counter on this node is currently zero.
func (n *Node) Idle() bool {
	c := n.Snapshot()
	return c.ReadCount == 0 && c.WriteCount == 0 && c.ReadWait == 0 && c.WriteWait == 0 && c.SubtreeCount == 0
}
