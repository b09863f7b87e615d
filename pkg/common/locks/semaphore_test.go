package locks

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSemaphore_Count(t *testing.T) {
	tests := []struct {
		name    string
		initial int64
		sets    int
		waits   int
		want    int64
	}{
		{"empty", 0, 0, 0, 0},
		{"initial_only", 3, 0, 0, 3},
		{"set_then_wait", 0, 2, 1, 1},
		{"drain_initial", 2, 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSemaphore(tt.initial)
			for i := 0; i < tt.sets; i++ {
				s.Set()
			}
			for i := 0; i < tt.waits; i++ {
				s.WaitOne()
			}
			if got := s.Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSemaphore_Reset(t *testing.T) {
	s := NewSemaphore(5)
	s.Reset()

	if got := s.Count(); got != 0 {
		t.Errorf("Count() after Reset = %d, want 0", got)
	}
	if s.WaitOneTimeout(10 * time.Millisecond) {
		t.Error("WaitOneTimeout after Reset should time out")
	}
}

func TestSemaphore_WaitOneTimeout(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		s := NewSemaphore(1)
		if !s.WaitOneTimeout(time.Millisecond) {
			t.Error("WaitOneTimeout with a unit available should succeed")
		}
	})

	t.Run("expires", func(t *testing.T) {
		s := NewSemaphore(0)
		start := time.Now()
		if s.WaitOneTimeout(20 * time.Millisecond) {
			t.Error("WaitOneTimeout on empty semaphore should fail")
		}
		if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
			t.Errorf("returned after %v, want >= 20ms", elapsed)
		}
	})

	t.Run("released_while_waiting", func(t *testing.T) {
		s := NewSemaphore(0)
		go func() {
			time.Sleep(10 * time.Millisecond)
			s.Set()
		}()
		if !s.WaitOneTimeout(2 * time.Second) {
			t.Error("WaitOneTimeout should take the released unit")
		}
	})
}

func TestSemaphore_Concurrent(t *testing.T) {
	s := NewSemaphore(0)

	const units = 100
	var (
		wg    sync.WaitGroup
		taken atomic.Int64
	)

	wg.Add(units)
	for i := 0; i < units; i++ {
		go func() {
			defer wg.Done()
			s.WaitOne()
			taken.Add(1)
		}()
	}

	for i := 0; i < units; i++ {
		s.Set()
	}
	wg.Wait()

	if got := taken.Load(); got != units {
		t.Errorf("taken = %d, want %d", got, units)
	}
	if got := s.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
}
