package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCachesResult(t *testing.T) {
	t.Parallel()

	c := New()
	key := Key{Resource: "categories"}
	calls := 0
	fetch := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"soups", "drinks"}, nil
	}

	got, err := Read(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"soups", "drinks"}, got)

	got, err = Read(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"soups", "drinks"}, got)
	assert.Equal(t, 1, calls)
}

func TestConcurrentReadsShareOneFetch(t *testing.T) {
	t.Parallel()

	c := New()
	key := Key{Resource: "orders"}
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Read(context.Background(), c, key, fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

// Any number of invalidations landing while a refetch is in flight must
// coalesce into exactly one follow-up request, with never more than one
// request for the key in flight at a time.
func TestInvalidateCoalesces(t *testing.T) {
	t.Parallel()

	c := New()
	key := Key{Resource: "orders"}

	var calls, inFlight atomic.Int32
	var overlapped atomic.Bool
	gate := make(chan struct{})
	fetch := func(ctx context.Context) (int, error) {
		if inFlight.Add(1) > 1 {
			overlapped.Store(true)
		}
		defer inFlight.Add(-1)

		n := int(calls.Add(1))
		if n == 2 {
			<-gate
		}
		return n, nil
	}

	_, err := Read(context.Background(), c, key, fetch)
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())

	// kick off a background refetch that parks in the gate
	c.Invalidate("orders")
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)

	// these all land mid-flight and must fold into one follow-up
	for i := 0; i < 5; i++ {
		c.Invalidate("orders")
	}
	assert.Equal(t, int32(2), calls.Load())

	close(gate)
	require.Eventually(t, func() bool {
		_, status, ok := c.Snapshot(key)
		return ok && status == StatusSuccess && calls.Load() == 3
	}, time.Second, time.Millisecond)

	// settle, then confirm no stray request fired
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())
	assert.False(t, overlapped.Load(), "two requests for one key were in flight at once")
}

func TestInvalidateCoversWholeKeyFamily(t *testing.T) {
	t.Parallel()

	c := New()
	keyA := Key{Resource: "food-items", Filter: "categoryId=a"}
	keyB := Key{Resource: "food-items", Filter: "categoryId=b"}
	keyOther := Key{Resource: "categories"}

	var callsA, callsB, callsOther atomic.Int32
	fetchFor := func(n *atomic.Int32) func(context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			n.Add(1)
			return "data", nil
		}
	}

	_, err := Read(context.Background(), c, keyA, fetchFor(&callsA))
	require.NoError(t, err)
	_, err = Read(context.Background(), c, keyB, fetchFor(&callsB))
	require.NoError(t, err)
	_, err = Read(context.Background(), c, keyOther, fetchFor(&callsOther))
	require.NoError(t, err)

	c.Invalidate("food-items")

	require.Eventually(t, func() bool {
		return callsA.Load() == 2 && callsB.Load() == 2
	}, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), callsOther.Load())
}

func TestErrorEntryRefetchedOnNextRead(t *testing.T) {
	t.Parallel()

	c := New()
	key := Key{Resource: "categories"}
	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("backend down")
		}
		return "ok", nil
	}

	_, err := Read(context.Background(), c, key, fetch)
	require.Error(t, err)

	_, status, ok := c.Snapshot(key)
	require.True(t, ok)
	assert.Equal(t, StatusError, status)

	got, err := Read(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}

func TestClearDropsLateResponse(t *testing.T) {
	t.Parallel()

	c := New()
	key := Key{Resource: "orders"}
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (int, error) {
		close(started)
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := Read(context.Background(), c, key, fetch)
		// the caller still gets its answer; only the cache forgets it
		assert.NoError(t, err)
		assert.Equal(t, 7, v)
	}()

	<-started
	c.Clear()
	close(release)
	wg.Wait()

	_, _, ok := c.Snapshot(key)
	assert.False(t, ok, "late response must not resurrect a cleared entry")
}

func TestForgetDropsSingleEntry(t *testing.T) {
	t.Parallel()

	c := New()
	keep := Key{Resource: "categories"}
	drop := Key{Resource: "orders"}
	fetch := func(ctx context.Context) (string, error) { return "x", nil }

	_, err := Read(context.Background(), c, keep, fetch)
	require.NoError(t, err)
	_, err = Read(context.Background(), c, drop, fetch)
	require.NoError(t, err)

	c.Forget(drop)

	_, _, ok := c.Snapshot(keep)
	assert.True(t, ok)
	_, _, ok = c.Snapshot(drop)
	assert.False(t, ok)
}

func TestKeyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "categories", Key{Resource: "categories"}.String())
	assert.Equal(t, "food-items?categoryId=a", Key{Resource: "food-items", Filter: "categoryId=a"}.String())
}
