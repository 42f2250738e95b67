package core

// write_limiter.go bounds the number of store writes in flight.
//
// SQLite admits one writer at a time; the busy timeout covers short waits,
// and the limiter keeps a burst of form submits from queueing on the file
// lock. When all slots are taken a write waits up to maxWait and then fails
// with ErrWritesBusy.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrWritesBusy is returned when no write slot frees up within the wait
// timeout.
var ErrWritesBusy = errors.New("too many concurrent writes, please try again later")

// DefaultMaxConcurrentWrites is the default limit for parallel writes.
const DefaultMaxConcurrentWrites = 4

// DefaultWriteWait is how long a write waits for a slot before failing.
const DefaultWriteWait = 5 * time.Second

// WriteLimiter is a semaphore over store writes.
type WriteLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewWriteLimiter allows at most maxConcurrent simultaneous writes.
// Non-positive arguments select the defaults.
func NewWriteLimiter(maxConcurrent int, maxWait time.Duration) *WriteLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentWrites
	}
	if maxWait <= 0 {
		maxWait = DefaultWriteWait
	}

	return &WriteLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire takes a write slot. The caller must Release it.
// It returns ctx.Err() if ctx ends first and ErrWritesBusy on timeout.
func (l *WriteLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWritesBusy
	}
}

// Release returns a slot taken by Acquire.
func (l *WriteLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of writes in flight.
func (l *WriteLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// MaxConcurrent returns the slot count.
func (l *WriteLimiter) MaxConcurrent() int {
	return cap(l.semaphore)
}

// WaitForDrain blocks until no write is in flight or ctx ends.
// Used on shutdown so a save in progress completes.
func (l *WriteLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
