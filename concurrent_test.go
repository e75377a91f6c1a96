package foldertree_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/nbtaylor/foldertree"
)

// TestConcurrentRandomOperationsSettleToQuiescence drives many goroutines
// issuing random Create/Remove/Move/List calls over a shared, modestly
// sized path space and checks that: no call panics or deadlocks (the test
// fails if errgroup.Wait has not returned within a 30-second deadline), and once every
// goroutine finishes every node's synchronizer counters have returned to
// zero.
func TestConcurrentRandomOperationsSettleToQuiescence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping concurrency stress test in -short mode")
	}

	const goroutines = 16
	const opsPerGoroutine = 1000
	const letters = "abcd"

	tr := foldertree.New()

	randomPath := func(rng *rand.Rand, depth int) string {
		p := "/"
		for i := 0; i < depth; i++ {
			p += string(letters[rng.Intn(len(letters))]) + "/"
		}
		return p
	}

	deadline := time.After(30 * time.Second)
	done := make(chan error, 1)

	go func() {
		var g errgroup.Group
		for i := 0; i < goroutines; i++ {
			seed := int64(i) + 1
			g.Go(func() error {
				rng := rand.New(rand.NewSource(seed))
				for j := 0; j < opsPerGoroutine; j++ {
					switch rng.Intn(4) {
					case 0:
						_ = tr.Create(randomPath(rng, 1+rng.Intn(3)))
					case 1:
						_ = tr.Remove(randomPath(rng, 1+rng.Intn(3)))
					case 2:
						src := randomPath(rng, 1+rng.Intn(3))
						dst := randomPath(rng, 1+rng.Intn(3))
						_ = tr.Move(src, dst)
					case 3:
						_, _ = tr.List(randomPath(rng, rng.Intn(3)))
					}
				}
				return nil
			})
		}
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-deadline:
		t.Fatal("concurrent workload did not complete within the deadline: suspected deadlock")
	}

	assert.True(t, tr.Quiescent(), "every node's synchronizer counters must settle to zero once all operations complete")
}

// TestConcurrentListNeverObservesTornState repeatedly creates and removes a
// folder from one goroutine while another goroutine continuously lists its
// parent, asserting that List only ever returns a name for a node that
// genuinely existed at the moment of the snapshot.
func TestConcurrentListNeverObservesTornState(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping concurrency stress test in -short mode")
	}

	tr := foldertree.New()
	require.NoError(t, tr.Create("/x/"))

	const iterations = 2000
	var g errgroup.Group

	g.Go(func() error {
		for i := 0; i < iterations; i++ {
			if err := tr.Create("/x/y/"); err != nil {
				return fmt.Errorf("create: %w", err)
			}
			if err := tr.Remove("/x/y/"); err != nil {
				return fmt.Errorf("remove: %w", err)
			}
		}
		return nil
	})

	g.Go(func() error {
		for i := 0; i < iterations; i++ {
			names, err := tr.ListNames("/x/")
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			for _, name := range names {
				if name != "y" {
					return fmt.Errorf("unexpected child name %q", name)
				}
			}
		}
		return nil
	})

	require.NoError(t, g.Wait())
	assert.True(t, tr.Quiescent())
}
