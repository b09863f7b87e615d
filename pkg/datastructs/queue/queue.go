// Package queue provides a thread-safe FIFO queue with an optional capacity
// limit and blocking, timeout-bounded and predicate-cancellable operations.
//
// Producers and consumers coordinate through one mutex and two independent
// condition signals, "has data" and "has space", so a producer never wakes
// another producer and a consumer never wakes another consumer.
//
// Timeouts and cancellations are not errors: the operations report them as
// a false result, the same as a full or empty queue. Callers that need to
// tell them apart keep their own clock or shutdown flag.
package queue

// Queue is a generic interface for FIFO queues.
type Queue[T any] interface {
	// TryPush adds an item to the queue.
	// Returns true if successful, false if the queue is full.
	TryPush(item T) bool

	// TryPop removes and returns an item from the queue.
	// Returns (item, true) if successful, (zero, false) if the queue is empty.
	TryPop() (T, bool)

	// Size returns the number of queued items.
	Size() int

	// Empty reports whether the queue holds no items.
	Empty() bool
}
