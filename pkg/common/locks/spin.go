package locks

import (
	"sync"
	"sync/atomic"

	pkgRuntime "github.com/huynhanx03/go-syncbuf/pkg/runtime"
)

var _ sync.Locker = (*SpinLock)(nil)

const (
	unlocked uint32 = iota
	locked
)

// SpinLock is a mutual-exclusion lock that busy-waits instead of parking.
// It is meant for critical sections of a few instructions, such as a shared
// counter update. The zero value is an unlocked SpinLock.
type SpinLock struct {
	state atomic.Uint32
}

// Lock acquires the lock, spinning until it is available.
func (l *SpinLock) Lock() {
	for spin := 0; !l.state.CompareAndSwap(unlocked, locked); {
		spin = pkgRuntime.Backoff(spin)
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SpinLock) TryLock() bool {
	return l.state.CompareAndSwap(unlocked, locked)
}

// Unlock releases the lock. Unlocking an unlocked SpinLock panics.
func (l *SpinLock) Unlock() {
	if !l.state.CompareAndSwap(locked, unlocked) {
		panic("locks: unlock of unlocked SpinLock")
	}
}
