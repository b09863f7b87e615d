package queue

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	q := New[int](Bounded(1), WithLogger(zap.New(core)))

	q.SetLimit(Bounded(4))
	q.Push(1)
	q.Push(2)
	q.Push(3)
	q.Push(4)
	q.WaitPushWhile(5, time.Millisecond, func() bool { return false })

	if n := logs.FilterMessage("queue limit changed").Len(); n != 1 {
		t.Errorf("limit change logged %d times, want 1", n)
	}
	if n := logs.FilterMessage("queue push cancelled").Len(); n != 1 {
		t.Errorf("push cancellation logged %d times, want 1", n)
	}
}

func TestWithLogger_Nil(t *testing.T) {
	q := New[int](Bounded(1), WithLogger(nil), nil)
	q.SetLimit(Unbounded()) // must not panic on a nil logger
}

func TestWithPollInterval(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{name: "positive", in: 10 * time.Millisecond, want: 10 * time.Millisecond},
		{name: "zero_keeps_default", in: 0, want: DefaultPollInterval},
		{name: "negative_keeps_default", in: -time.Second, want: DefaultPollInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New[int](Bounded(1), WithPollInterval(tt.in))
			if q.poll != tt.want {
				t.Errorf("poll = %v, want %v", q.poll, tt.want)
			}
		})
	}
}

func TestWithPollInterval_UsedForNonPositiveTimeout(t *testing.T) {
	q := New[int](Bounded(1), WithPollInterval(2*time.Millisecond))
	q.Push(1)

	waits := 0
	start := time.Now()
	ok := q.WaitPushWhile(2, 0, func() bool {
		waits++
		return waits < 3
	})

	if ok {
		t.Fatal("push should be abandoned")
	}
	if waits != 3 {
		t.Errorf("predicate called %d times, want 3", waits)
	}
	// Three waits of the 100ms default would take at least 300ms.
	if elapsed := time.Since(start); elapsed >= 250*time.Millisecond {
		t.Errorf("waits took %v; configured interval not used", elapsed)
	}
}

func TestWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg, "jobs")
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	q := New[int](Bounded(2), WithMetrics(m))
	q.TryPush(1)
	q.TryPush(2)
	q.TryPush(3) // rejected
	q.TryPop()
	q.WaitPushWhile(4, time.Millisecond, nil)
	q.WaitPushWhile(5, time.Millisecond, func() bool { return false }) // cancelled
	q.TryPop()
	q.TryPop()
	q.TryPopFor(time.Millisecond) // timeout

	tests := []struct {
		name      string
		collector prometheus.Collector
		want      float64
	}{
		{"pushes", m.pushes, 3},
		{"pops", m.pops, 3},
		{"rejected", m.rejected, 1},
		{"timeouts", m.timeouts, 1},
		{"cancelled", m.cancelled, 1},
		{"size", m.size, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.collector); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewMetrics(reg, "dup"); err != nil {
		t.Fatalf("first NewMetrics() error = %v", err)
	}
	if _, err := NewMetrics(reg, "dup"); err == nil {
		t.Error("second NewMetrics() with the same name should fail")
	}
}
