package batcher

import (
	"time"

	"github.com/pkg/errors"
)

// stripe accumulates items for one worker.
// It is NOT thread-safe; each worker owns its stripe.
type stripe[T any] struct {
	cons   Consumer[T]
	data   []T
	cap    int
	oldest time.Time // arrival of data[0]
}

// newStripe creates a new stripe with the given consumer and capacity.
func newStripe[T any](cons Consumer[T], capacity int) *stripe[T] {
	return &stripe[T]{
		cons: cons,
		data: make([]T, 0, capacity),
		cap:  capacity,
	}
}

// push appends an item to the stripe.
// If the stripe becomes full, it flushes data to the consumer.
func (s *stripe[T]) push(item T) (int, error) {
	if len(s.data) == 0 {
		s.oldest = time.Now()
	}
	s.data = append(s.data, item)

	if len(s.data) >= s.cap {
		return s.flush()
	}
	return 0, nil
}

// flush hands the buffered items to the consumer and returns how many were
// handed over. The consumer keeps the slice, so a fresh one is allocated.
func (s *stripe[T]) flush() (int, error) {
	n := len(s.data)
	if n == 0 {
		return 0, nil
	}

	batch := s.data
	s.data = make([]T, 0, s.cap)
	if err := s.cons.Consume(batch); err != nil {
		return n, errors.Wrapf(err, "consume batch of %d", n)
	}
	return n, nil
}

// due reports whether the oldest buffered item has waited at least interval.
func (s *stripe[T]) due(interval time.Duration) bool {
	return len(s.data) > 0 && time.Since(s.oldest) >= interval
}

// take empties the stripe without calling the consumer.
func (s *stripe[T]) take() []T {
	items := s.data
	s.data = make([]T, 0, s.cap)
	return items
}
