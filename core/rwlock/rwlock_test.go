package rwlock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waiters(l *RWLock) (readWaiters, writeWaiters int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readWaiters, l.writeWaiters
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, time.Millisecond)
}

func done(fn func()) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		fn()
		close(ch)
	}()
	return ch
}

func TestRWLock(t *testing.T) {
	t.Run("ConcurrentReaders", func(t *testing.T) {
		l := New()
		l.RLock()
		second := done(func() {
			l.RLock()
			l.RUnlock()
		})
		select {
		case <-second:
		case <-time.After(time.Second):
			t.Fatal("second reader blocked by first reader")
		}
		l.RUnlock()
	})

	t.Run("WriterExcludesReaders", func(t *testing.T) {
		l := New()
		l.Lock()
		reader := done(func() {
			l.RLock()
			l.RUnlock()
		})
		waitUntil(t, func() bool { r, _ := waiters(l); return r == 1 })

		select {
		case <-reader:
			t.Fatal("reader entered while writer held the lock")
		case <-time.After(20 * time.Millisecond):
		}

		l.Unlock()
		<-reader
	})

	t.Run("WriterWaitsForReaders", func(t *testing.T) {
		l := New()
		l.RLock()
		writer := done(func() {
			l.Lock()
			l.Unlock()
		})
		waitUntil(t, func() bool { _, w := waiters(l); return w == 1 })

		select {
		case <-writer:
			t.Fatal("writer entered while a reader held the lock")
		case <-time.After(20 * time.Millisecond):
		}

		l.RUnlock()
		<-writer
	})

	t.Run("WaitingWriterBlocksNewReaders", func(t *testing.T) {
		l := New()
		l.RLock()

		var order []string
		var mu sync.Mutex
		record := func(s string) {
			mu.Lock()
			order = append(order, s)
			mu.Unlock()
		}

		writer := done(func() {
			l.Lock()
			record("writer")
			l.Unlock()
		})
		waitUntil(t, func() bool { _, w := waiters(l); return w == 1 })

		lateReader := done(func() {
			l.RLock()
			record("reader")
			l.RUnlock()
		})
		waitUntil(t, func() bool { r, _ := waiters(l); return r == 1 })

		l.RUnlock()
		<-writer
		<-lateReader

		assert.Equal(t, []string{"writer", "reader"}, order)
	})

	t.Run("WaitingReadersGoBeforeNextWriter", func(t *testing.T) {
		l := New()
		l.Lock()

		var order []string
		var mu sync.Mutex
		record := func(s string) {
			mu.Lock()
			order = append(order, s)
			mu.Unlock()
		}

		reader := done(func() {
			l.RLock()
			record("reader")
			time.Sleep(10 * time.Millisecond)
			l.RUnlock()
		})
		waitUntil(t, func() bool { r, _ := waiters(l); return r == 1 })

		writer := done(func() {
			l.Lock()
			record("writer")
			l.Unlock()
		})
		waitUntil(t, func() bool { _, w := waiters(l); return w == 1 })

		l.Unlock()
		<-reader
		<-writer

		assert.Equal(t, []string{"reader", "writer"}, order)
	})

	t.Run("WithWriteReleasesOnPanic", func(t *testing.T) {
		l := New()
		assert.Panics(t, func() {
			l.WithWrite(func() { panic("boom") })
		})

		acquired := done(func() {
			l.Lock()
			l.Unlock()
		})
		select {
		case <-acquired:
		case <-time.After(time.Second):
			t.Fatal("write lock still held after panic")
		}
	})

	t.Run("WithReadReleasesOnPanic", func(t *testing.T) {
		l := New()
		assert.Panics(t, func() {
			l.WithRead(func() { panic("boom") })
		})

		acquired := done(func() {
			l.Lock()
			l.Unlock()
		})
		select {
		case <-acquired:
		case <-time.After(time.Second):
			t.Fatal("read lock still held after panic")
		}
	})

	t.Run("UnlockOfUnlockedPanics", func(t *testing.T) {
		l := New()
		assert.Panics(t, l.Unlock)
		assert.Panics(t, l.RUnlock)
	})

	t.Run("RLocker", func(t *testing.T) {
		l := New()
		rl := l.RLocker()
		rl.Lock()
		rl.Lock()
		rl.Unlock()
		rl.Unlock()
		l.WithWrite(func() {})
	})
}

func TestRWLockContention(t *testing.T) {
	l := New()

	var (
		activeReaders atomic.Int32
		activeWriters atomic.Int32
		violations    atomic.Int32
		writes        int
		wg            sync.WaitGroup
	)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				l.WithRead(func() {
					activeReaders.Add(1)
					if activeWriters.Load() != 0 {
						violations.Add(1)
					}
					activeReaders.Add(-1)
				})
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.WithWrite(func() {
					if activeWriters.Add(1) != 1 || activeReaders.Load() != 0 {
						violations.Add(1)
					}
					writes++
					activeWriters.Add(-1)
				})
			}
		}()
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		t.Fatal("contention test did not finish; a side is starving")
	}

	assert.Zero(t, violations.Load())
	assert.Equal(t, 400, writes)
}
