package runtime

import "testing"

func TestBackoff(t *testing.T) {
	iter := 0
	for i := 0; i < activeSpinTries; i++ {
		iter = Backoff(iter)
		if iter != i+1 {
			t.Fatalf("Backoff step %d = %d, want %d", i, iter, i+1)
		}
	}

	// Past the active budget the counter resets after yielding.
	if got := Backoff(iter); got != 0 {
		t.Errorf("Backoff(%d) = %d, want 0", iter, got)
	}
}

func TestProcyield(t *testing.T) {
	// Must return without blocking.
	Procyield(activeSpinCycles)
}
