package pathlock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLockPathMissingComponentRollsBack(t *testing.T) {
	root := NewNode()
	target, ok := ReadLockPath(root, "/a/b/")
	assert.False(t, ok)
	assert.Nil(t, target)
	assert.True(t, root.Idle(), "a miss must roll back every lock taken")
}

func TestReadLockPrefixWriteLockTailAcquiresAndReleases(t *testing.T) {
	root := NewNode()
	a := NewNode()
	a.SetParent(root)
	root.children.Put("a", a)

	target, ok := ReadLockPrefixWriteLockTail(root, "/a/")
	require.True(t, ok)
	require.Equal(t, a, target)
	assert.Equal(t, 1, target.Snapshot().WriteCount)
	assert.Equal(t, 1, root.Snapshot().ReadCount)

	ReleaseReadPrefixWriteTail(target)
	assert.True(t, root.Idle())
	assert.True(t, a.Idle())
}

func TestRelativeReadWriteLockWalksFromBoundary(t *testing.T) {
	root := NewNode()
	a := NewNode()
	a.SetParent(root)
	root.children.Put("a", a)
	b := NewNode()
	b.SetParent(a)
	a.children.Put("b", b)

	boundary := root
	boundary.AcquireWrite()

	target, ok := RelativeReadWriteLock(boundary, "/a/b/")
	require.True(t, ok)
	require.Equal(t, b, target)
	assert.Equal(t, 1, a.Snapshot().ReadCount)
	assert.Equal(t, 1, b.Snapshot().WriteCount)

	ReleaseRelativeReadWriteLock(target, boundary)
	assert.True(t, a.Idle())
	assert.True(t, b.Idle())

	boundary.ReleaseWrite()
	assert.True(t, root.Idle())
}

func TestRelativeReadWriteLockRollsBackOnMissWithoutTouchingBoundary(t *testing.T) {
	root := NewNode()
	a := NewNode()
	a.SetParent(root)
	root.children.Put("a", a)

	boundary := root
	boundary.AcquireWrite()

	target, ok := RelativeReadWriteLock(boundary, "/missing/")
	assert.False(t, ok)
	assert.Nil(t, target)
	assert.True(t, a.Idle(), "rollback must release everything below the boundary")
	assert.Equal(t, 1, boundary.Snapshot().WriteCount, "boundary's own lock must be untouched")

	boundary.ReleaseWrite()
}
