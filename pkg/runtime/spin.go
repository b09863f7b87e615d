package runtime

import (
	goruntime "runtime"
	_ "unsafe" // for go:linkname
)

const (
	// Adaptive spinning: active spins keep the CPU warm with PAUSE,
	// passive spins hand the P back to the scheduler.
	activeSpinCycles = 4  // PAUSE cycles per active spin
	activeSpinTries  = 30 // active spins before yielding
)

// Procyield spins for a given number of cycles without yielding to the scheduler.
// It uses the CPU PAUSE instruction on x86 to reduce power consumption during spinning.
// cycles: number of spin iterations (typically 4-30 for short waits).
//
//go:linkname Procyield runtime.procyield
func Procyield(cycles uint32)

// Backoff performs one step of adaptive spinning for a retry loop and returns
// the iteration counter to pass on the next call.
//
// The first activeSpinTries calls spin in place, the next one yields the
// processor and resets the counter.
func Backoff(iter int) int {
	if iter < activeSpinTries {
		Procyield(activeSpinCycles)
		return iter + 1
	}
	goruntime.Gosched()
	return 0
}
