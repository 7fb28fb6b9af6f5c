package rwlock

import "sync"

// RWLock allows any number of concurrent readers or a single writer.
//
// Readers that arrive while a writer holds or waits for the lock queue behind
// it. When a writer releases, every reader that was already waiting is
// admitted before the next writer; with no readers waiting, one writer is
// woken. Neither side can starve while critical sections stay bounded.
//
// The zero value is not usable; call New.
type RWLock struct {
	mu      sync.Mutex
	readOK  *sync.Cond
	writeOK *sync.Cond

	readers      int  // active readers
	writing      bool // a writer holds the lock
	readWaiters  int
	writeWaiters int

	// epoch advances every time a writer hands the lock to waiting readers.
	// A reader that started waiting in an older epoch is admitted even when
	// writers are queued.
	epoch    uint64
	admitted int // readers admitted by the last hand-off that have not entered yet
}

// New returns an unlocked RWLock.
func New() *RWLock {
	l := &RWLock{}
	l.readOK = sync.NewCond(&l.mu)
	l.writeOK = sync.NewCond(&l.mu)
	return l
}

// RLock acquires the lock for reading.
func (l *RWLock) RLock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	ticket := l.epoch
	l.readWaiters++
	for l.writing || (l.writeWaiters > 0 && ticket == l.epoch) {
		l.readOK.Wait()
	}
	l.readWaiters--
	if ticket != l.epoch && l.admitted > 0 {
		l.admitted--
	}
	l.readers++
}

// RUnlock releases a read hold. The last reader out wakes one writer.
func (l *RWLock) RUnlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.readers <= 0 {
		panic("rwlock: RUnlock of unlocked RWLock")
	}
	l.readers--
	if l.readers == 0 && l.writeWaiters > 0 {
		l.writeOK.Signal()
	}
}

// Lock acquires the lock for writing.
func (l *RWLock) Lock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.writeWaiters++
	for l.writing || l.readers > 0 || l.admitted > 0 {
		l.writeOK.Wait()
	}
	l.writeWaiters--
	l.writing = true
}

// Unlock releases the write hold.
func (l *RWLock) Unlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.writing {
		panic("rwlock: Unlock of unlocked RWLock")
	}
	l.writing = false

	if l.readWaiters > 0 {
		l.epoch++
		l.admitted = l.readWaiters
		l.readOK.Broadcast()
		return
	}
	if l.writeWaiters > 0 {
		l.writeOK.Signal()
	}
}

// WithRead runs fn while holding the read lock.
func (l *RWLock) WithRead(fn func()) {
	l.RLock()
	defer l.RUnlock()
	fn()
}

// WithWrite runs fn while holding the write lock.
func (l *RWLock) WithWrite(fn func()) {
	l.Lock()
	defer l.Unlock()
	fn()
}

// RLocker returns a sync.Locker backed by the read half of l.
func (l *RWLock) RLocker() sync.Locker {
	return (*rlocker)(l)
}

type rlocker RWLock

func (r *rlocker) Lock()   { (*RWLock)(r).RLock() }
func (r *rlocker) Unlock() { (*RWLock)(r).RUnlock() }
