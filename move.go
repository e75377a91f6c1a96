package foldertree

import (
	"github.com/pkg/errors"

	"github.com/nbtaylor/foldertree/pathlock"
	"github.com/nbtaylor/foldertree/pathname"
)

// Move relocates the folder named by source to be named target, preserving
// its entire subtree. Both paths must be valid; source must not be the
// root; target must not be the root.
//
// Returns ErrInvalidPath for a malformed path, ErrForbiddenOnRoot if
// source is the root, ErrExists if target is the root, already exists, or
// names an ancestor of source, ErrNotFound if source or an ancestor of
// either path does not exist, and ErrMoveIntoDescendant if target names a
// node strictly below source. Moving a path onto itself (source == target)
// is a no-op success if source exists.
func (t *Tree) Move(source, target string) error {
	if !pathname.Valid(source) || !pathname.Valid(target) {
		return errors.Wrapf(ErrInvalidPath, "move %q -> %q", source, target)
	}
	if pathname.IsRoot(source) {
		return errors.Wrapf(ErrForbiddenOnRoot, "move %q -> %q: source is the root", source, target)
	}
	if pathname.IsRoot(target) {
		return errors.Wrapf(ErrExists, "move %q -> %q: target is the root", source, target)
	}

	// target strictly below source: moving source into its own successor.
	// A missing source is reported as ErrNotFound first.
	if pathname.IsStrictDescendant(source, target) {
		node, ok := pathlock.ReadLockPath(t.root, source)
		if !ok {
			return errors.Wrapf(ErrNotFound, "move %q -> %q", source, target)
		}
		pathlock.ReleaseReadPath(node)
		return errors.Wrapf(ErrMoveIntoDescendant, "move %q -> %q", source, target)
	}

	if source == target {
		node, ok := pathlock.ReadLockPath(t.root, source)
		if !ok {
			return errors.Wrapf(ErrNotFound, "move %q -> %q", source, target)
		}
		pathlock.ReleaseReadPath(node)
		return nil
	}

	// source strictly below target: target is an ancestor of source, and
	// therefore already exists whenever source does.
	if pathname.IsStrictDescendant(target, source) {
		node, ok := pathlock.ReadLockPath(t.root, source)
		if !ok {
			return errors.Wrapf(ErrNotFound, "move %q -> %q", source, target)
		}
		pathlock.ReleaseReadPath(node)
		return errors.Wrapf(ErrExists, "move %q -> %q: target is an ancestor of source", source, target)
	}

	pathSP, sourceName, _ := pathname.SplitParent(source)
	pathTP, targetName, _ := pathname.SplitParent(target)
	lca := pathname.LowestCommonAncestor(pathSP, pathTP)

	lcaNode, ok := pathlock.ReadLockPrefixWriteLockTail(t.root, lca)
	if !ok {
		return errors.Wrapf(ErrNotFound, "move %q -> %q", source, target)
	}

	// extraLocks records, in acquisition order, every node locked relative
	// to lcaNode (i.e. every node other than lcaNode itself that ended up
	// write-locked below it). Release them in reverse acquisition order,
	// then release lcaNode's own write-lock-plus-ancestor-chain last.
	var extraLocks []*pathlock.Node
	cleanup := func() {
		for i := len(extraLocks) - 1; i >= 0; i-- {
			pathlock.ReleaseRelativeReadWriteLock(extraLocks[i], lcaNode)
		}
		pathlock.ReleaseReadPrefixWriteTail(lcaNode)
	}

	sourceParent := lcaNode
	if pathSP != lca {
		sp, ok := pathlock.RelativeReadWriteLock(lcaNode, pathname.RelativeTo(lca, pathSP))
		if !ok {
			cleanup()
			return errors.Wrapf(ErrNotFound, "move %q -> %q: source parent %q missing", source, target, pathSP)
		}
		sourceParent = sp
		extraLocks = append(extraLocks, sourceParent)
	}

	sourceNode, present := sourceParent.Children().Get(sourceName)
	if !present {
		cleanup()
		return errors.Wrapf(ErrNotFound, "move %q -> %q", source, target)
	}

	// No one can enter sourceNode from above: every path from the root to
	// it passes through either lcaNode or sourceParent, both locked by us.
	sourceNode.AwaitSubtreeQuiescent()

	targetParent := lcaNode
	if pathTP != lca {
		tp, ok := pathlock.RelativeReadWriteLock(lcaNode, pathname.RelativeTo(lca, pathTP))
		if !ok {
			cleanup()
			return errors.Wrapf(ErrNotFound, "move %q -> %q: target parent %q missing", source, target, pathTP)
		}
		targetParent = tp
		extraLocks = append(extraLocks, targetParent)
	}

	if targetParent.Children().Has(targetName) {
		cleanup()
		return errors.Wrapf(ErrExists, "move %q -> %q", source, target)
	}

	sourceParent.Children().Delete(sourceName)
	targetParent.Children().Put(targetName, sourceNode)
	sourceNode.SetParent(targetParent)

	cleanup()
	return nil
}
