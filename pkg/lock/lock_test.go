package lock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestKeyedMutex_Exclusive(t *testing.T) {
	m := NewKeyedMutex()
	var inside, maxInside int32

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			release, err := m.Lock(ctx, "user:1")
			if err != nil {
				return err
			}
			defer release()
			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, m.size())
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	m := NewKeyedMutex()
	releaseA, err := m.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	releaseB, err := m.Lock(ctx, "b")
	require.NoError(t, err)
	releaseB()
}

func TestKeyedMutex_Timeout(t *testing.T) {
	m := NewKeyedMutex()
	release, err := m.Lock(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = m.Lock(ctx, "a")
	assert.ErrorIs(t, err, ErrTimeout)

	release()
	release()
	assert.Equal(t, 0, m.size())
}

func TestLockUsers_OrderIndependent(t *testing.T) {
	m := NewKeyedMutex()
	a, b := uuid.New(), uuid.New()

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 50; i++ {
		first, second := a, b
		if i%2 == 1 {
			first, second = b, a
		}
		g.Go(func() error {
			release, err := LockUsers(ctx, m, first, second)
			if err != nil {
				return err
			}
			release()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 0, m.size())
}

func TestLockUsers_DeduplicatesKeys(t *testing.T) {
	m := NewKeyedMutex()
	id := uuid.New()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	release, err := LockUsers(ctx, m, id, id)
	require.NoError(t, err)
	release()
}
