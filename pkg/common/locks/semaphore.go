package locks

import (
	"sync"
	"time"
)

// Semaphore is a counting semaphore. Set releases one unit, WaitOne
// acquires one, blocking while the count is zero.
type Semaphore struct {
	mu    sync.Mutex
	cond  *Cond
	count int64
}

// NewSemaphore creates a Semaphore holding count units.
func NewSemaphore(count int64) *Semaphore {
	s := &Semaphore{count: count}
	s.cond = NewCond(&s.mu)
	return s
}

// Set adds one unit and wakes one waiter.
func (s *Semaphore) Set() {
	s.mu.Lock()
	s.count++
	s.cond.Signal()
	s.mu.Unlock()
}

// Reset drops all available units.
func (s *Semaphore) Reset() {
	s.mu.Lock()
	s.count = 0
	s.mu.Unlock()
}

// WaitOne blocks until a unit is available and takes it.
func (s *Semaphore) WaitOne() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.count <= 0 {
		s.cond.Wait()
	}
	s.count--
}

// WaitOneTimeout is like WaitOne but gives up after d.
// It reports whether a unit was taken.
func (s *Semaphore) WaitOneTimeout(d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := time.Now().Add(d)
	for s.count <= 0 {
		if !s.cond.WaitTimeout(time.Until(deadline)) && s.count <= 0 {
			return false
		}
	}
	s.count--
	return true
}

// Count returns the number of available units.
func (s *Semaphore) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
