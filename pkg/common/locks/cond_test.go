package locks

import (
	"sync"
	"testing"
	"time"
)

// =============================================================================
// WaitTimeout
// =============================================================================

func TestCond_WaitTimeout_Expires(t *testing.T) {
	var mu sync.Mutex
	c := NewCond(&mu)

	mu.Lock()
	start := time.Now()
	woken := c.WaitTimeout(20 * time.Millisecond)
	elapsed := time.Since(start)
	waiters := c.Waiters()
	mu.Unlock()

	if woken {
		t.Error("WaitTimeout without signal should return false")
	}
	if elapsed < 20*time.Millisecond {
		t.Errorf("WaitTimeout returned after %v, want >= 20ms", elapsed)
	}
	if waiters != 0 {
		t.Errorf("Waiters() after timeout = %d, want 0", waiters)
	}
}

func TestCond_WaitTimeout_NonPositive(t *testing.T) {
	var mu sync.Mutex
	c := NewCond(&mu)

	mu.Lock()
	defer mu.Unlock()

	for _, d := range []time.Duration{0, -time.Second} {
		if c.WaitTimeout(d) {
			t.Errorf("WaitTimeout(%v) = true, want false", d)
		}
	}
}

func TestCond_WaitTimeout_Signalled(t *testing.T) {
	var mu sync.Mutex
	c := NewCond(&mu)
	result := make(chan bool, 1)

	go func() {
		mu.Lock()
		result <- c.WaitTimeout(5 * time.Second)
		mu.Unlock()
	}()

	waitForWaiters(t, &mu, c, 1)

	mu.Lock()
	c.Signal()
	mu.Unlock()

	select {
	case woken := <-result:
		if !woken {
			t.Error("WaitTimeout should report a signal")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiter was not woken")
	}
}

// =============================================================================
// Signal / Broadcast
// =============================================================================

func TestCond_SignalFIFO(t *testing.T) {
	var mu sync.Mutex
	c := NewCond(&mu)
	order := make(chan int, 3)

	for i := 0; i < 3; i++ {
		go func(id int) {
			mu.Lock()
			c.Wait()
			order <- id
			mu.Unlock()
		}(i)
		waitForWaiters(t, &mu, c, i+1)
	}

	for want := 0; want < 3; want++ {
		mu.Lock()
		c.Signal()
		mu.Unlock()

		select {
		case got := <-order:
			if got != want {
				t.Errorf("woken waiter = %d, want %d", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("waiter was not woken")
		}
	}
}

func TestCond_SignalWithoutWaiters(t *testing.T) {
	var mu sync.Mutex
	c := NewCond(&mu)

	mu.Lock()
	c.Signal()
	c.Broadcast()
	mu.Unlock()
}

func TestCond_Broadcast(t *testing.T) {
	var mu sync.Mutex
	var wg sync.WaitGroup
	c := NewCond(&mu)

	const waiters = 5
	wg.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			defer wg.Done()
			mu.Lock()
			c.Wait()
			mu.Unlock()
		}()
	}
	waitForWaiters(t, &mu, c, waiters)

	mu.Lock()
	c.Broadcast()
	mu.Unlock()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast did not wake all waiters")
	}
}

// waitForWaiters polls until c has n parked goroutines.
func waitForWaiters(t *testing.T, mu *sync.Mutex, c *Cond, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		got := c.Waiters()
		mu.Unlock()
		if got >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d waiters", n)
}
