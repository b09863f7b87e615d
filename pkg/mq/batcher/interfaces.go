package batcher

import (
	"time"

	"github.com/huynhanx03/go-syncbuf/pkg/settings"
)

// Consumer is the interface that must be implemented by users of the Drainer.
// It is responsible for processing a batch of items.
type Consumer[T any] interface {
	// Consume processes a batch of items. The batch is owned by the
	// Consumer once passed in.
	// Returns an error if processing fails.
	Consume(batch []T) error
}

// ConsumerFunc adapts a function to the Consumer interface.
type ConsumerFunc[T any] func(batch []T) error

// Consume calls f(batch).
func (f ConsumerFunc[T]) Consume(batch []T) error { return f(batch) }

// Source is the queue side the Drainer pulls from. *queue.BlockingQueue
// satisfies it.
type Source[T any] interface {
	// WaitPopWhile waits for an item, giving up when cont returns false.
	WaitPopWhile(timeout time.Duration, cont func() bool) (T, bool)

	// TryPop removes an item without waiting.
	TryPop() (T, bool)

	// Push appends an item regardless of any limit. Used to return
	// buffered items after a failure.
	Push(item T)
}

// Config holds configuration for the Drainer.
type Config struct {
	// BatchSize is the capacity of a single stripe buffer.
	// When a stripe reaches this size, it will be flushed to the Consumer.
	BatchSize int

	// Workers is the number of goroutines pulling from the Source.
	Workers int

	// FlushInterval bounds how long a partial stripe waits for more items.
	FlushInterval time.Duration

	// PollInterval is the per-attempt wait passed to WaitPopWhile.
	PollInterval time.Duration
}

// Defaults applied to zero Config fields.
const (
	DefaultBatchSize     = 512
	DefaultWorkers       = 1
	DefaultFlushInterval = time.Second
	DefaultPollInterval  = 100 * time.Millisecond
)

// FromSettings converts the file configuration into a Config.
func FromSettings(s settings.Batcher) Config {
	return Config{
		BatchSize:     s.BatchSize,
		Workers:       s.Workers,
		FlushInterval: settings.Millis(s.FlushInterval),
		PollInterval:  settings.Millis(s.PollInterval),
	}
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = DefaultFlushInterval
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	return c
}
