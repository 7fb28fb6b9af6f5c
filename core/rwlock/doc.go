// Package rwlock provides a readers-writer lock built from a mutex and two
// condition variables.
//
// Unlike sync.RWMutex it exposes its hand-off policy: waiting writers hold
// back newly arriving readers, and a releasing writer lets all readers that
// were already queued through before the next writer. This keeps both sides
// starvation free under bounded critical sections.
//
// # Usage
//
//	l := rwlock.New()
//	l.WithRead(func() {
//	    // shared access
//	})
//	l.WithWrite(func() {
//	    // exclusive access
//	})
package rwlock
