package locks

import (
	"sync"
	"time"
)

// Cond is a condition variable with timeout-bounded waits.
//
// Like sync.Cond, every method must be called with L held. Waiters are woken
// in the order they started waiting.
type Cond struct {
	L sync.Locker

	waiters []chan struct{}
}

// NewCond returns a new Cond with Locker l.
func NewCond(l sync.Locker) *Cond {
	return &Cond{L: l}
}

// Wait atomically unlocks c.L and suspends the calling goroutine until it is
// woken by Signal or Broadcast. c.L is locked again before Wait returns.
func (c *Cond) Wait() {
	ch := c.enqueue()
	c.L.Unlock()
	<-ch
	c.L.Lock()
}

// WaitTimeout is like Wait but gives up after d. It reports whether the
// goroutine was woken by a signal. A non-positive d returns false without
// releasing c.L.
func (c *Cond) WaitTimeout(d time.Duration) bool {
	if d <= 0 {
		return false
	}

	ch := c.enqueue()
	c.L.Unlock()

	timer := time.NewTimer(d)
	select {
	case <-ch:
		timer.Stop()
		c.L.Lock()
		return true
	case <-timer.C:
	}

	c.L.Lock()
	// A Signal that ran between the timer firing and re-locking already
	// dequeued us; that wake-up belongs to this waiter.
	return !c.remove(ch)
}

// Signal wakes the longest-waiting goroutine, if any.
func (c *Cond) Signal() {
	if len(c.waiters) == 0 {
		return
	}
	ch := c.waiters[0]
	c.waiters[0] = nil
	c.waiters = c.waiters[1:]
	close(ch)
}

// Broadcast wakes all waiting goroutines.
func (c *Cond) Broadcast() {
	for _, ch := range c.waiters {
		close(ch)
	}
	clear(c.waiters)
	c.waiters = c.waiters[:0]
}

// Waiters returns the number of goroutines currently waiting.
func (c *Cond) Waiters() int {
	return len(c.waiters)
}

func (c *Cond) enqueue() chan struct{} {
	ch := make(chan struct{})
	c.waiters = append(c.waiters, ch)
	return ch
}

// remove drops ch from the wait list and reports whether it was still there.
func (c *Cond) remove(ch chan struct{}) bool {
	for i, w := range c.waiters {
		if w == ch {
			copy(c.waiters[i:], c.waiters[i+1:])
			c.waiters[len(c.waiters)-1] = nil
			c.waiters = c.waiters[:len(c.waiters)-1]
			return true
		}
	}
	return false
}
