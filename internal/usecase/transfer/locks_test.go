package transfer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountLocks_SameIDLocksOnce(t *testing.T) {
	locks := newAccountLocks()

	done := make(chan struct{})
	go func() {
		unlock := locks.lockPair(5, 5)
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lockPair deadlocked on equal ids")
	}

	assert.True(t, locks.get(5).TryLock(), "lock must be released")
	locks.get(5).Unlock()
}

func TestAccountLocks_OrderIndependentOfDirection(t *testing.T) {
	locks := newAccountLocks()

	unlock := locks.lockPair(2, 1)
	assert.False(t, locks.get(1).TryLock())
	assert.False(t, locks.get(2).TryLock())
	unlock()

	require.True(t, locks.get(1).TryLock())
	require.True(t, locks.get(2).TryLock())
	locks.get(1).Unlock()
	locks.get(2).Unlock()
}

func TestAccountLocks_SameHandlePerID(t *testing.T) {
	locks := newAccountLocks()

	var wg sync.WaitGroup
	handles := make([]*sync.Mutex, 16)
	wg.Add(len(handles))
	for i := range handles {
		go func(i int) {
			defer wg.Done()
			handles[i] = locks.get(3)
		}(i)
	}
	wg.Wait()

	for _, h := range handles {
		assert.Same(t, handles[0], h)
	}
	assert.NotSame(t, locks.get(3), locks.get(4))
}

func TestAccountLocks_CrossedPairsComplete(t *testing.T) {
	locks := newAccountLocks()

	var wg sync.WaitGroup
	const rounds = 1000
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range rounds {
			locks.lockPair(1, 2)()
		}
	}()
	go func() {
		defer wg.Done()
		for range rounds {
			locks.lockPair(2, 1)()
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("crossed lock pairs deadlocked")
	}
}
