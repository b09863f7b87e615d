package queue

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/huynhanx03/go-syncbuf/pkg/common/locks"
)

var _ Queue[int] = (*BlockingQueue[int])(nil)

// BlockingQueue is a FIFO queue safe for any number of producers and
// consumers. Every operation runs under a single mutex; producers blocked on
// a full queue wait on "has space", consumers blocked on an empty queue wait
// on "has data".
//
// With a bounded Limit the queue applies backpressure: TryPush fails and
// WaitPushWhile waits while Size reaches the maximum. Push ignores the limit.
type BlockingQueue[T any] struct {
	mu       sync.Mutex
	hasData  *locks.Cond
	hasSpace *locks.Cond
	limit    Limit
	items    deque[T]

	log     *zap.Logger
	metrics *Metrics
	poll    time.Duration
}

// New creates an empty queue with the given limit.
func New[T any](limit Limit, opts ...Option) *BlockingQueue[T] {
	o := applyOptions(opts...)
	q := &BlockingQueue[T]{
		limit:   limit,
		log:     o.logger,
		metrics: o.metrics,
		poll:    o.poll,
	}
	q.hasData = locks.NewCond(&q.mu)
	q.hasSpace = locks.NewCond(&q.mu)
	return q
}

// NewUnbounded creates an empty queue that never blocks producers.
func NewUnbounded[T any](opts ...Option) *BlockingQueue[T] {
	return New[T](Unbounded(), opts...)
}

// From creates a queue holding items in slice order. The initial fill
// ignores the limit, as Push does.
func From[T any](limit Limit, items []T, opts ...Option) *BlockingQueue[T] {
	q := New[T](limit, opts...)
	for _, v := range items {
		q.items.pushBack(v)
	}
	return q
}

// TryPush appends v unless the queue is full. It never blocks.
func (q *BlockingQueue[T]) TryPush(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.full() {
		q.metrics.recordReject()
		return false
	}
	q.push(v)
	return true
}

// Push appends v regardless of the limit. It is meant for unbounded
// producers and for callers that already reserved space.
func (q *BlockingQueue[T]) Push(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.push(v)
}

// WaitPushWhile appends v, waiting for space while the queue is full.
//
// Each wait lasts at most timeout (the queue's poll interval if timeout is
// not positive). After every wait, whether it ended by a signal or by expiry,
// cont is consulted; when it returns false the push is abandoned and
// WaitPushWhile returns false without touching the queue. cont is called
// without the queue lock held. A nil cont waits until space is available.
func (q *BlockingQueue[T]) WaitPushWhile(v T, timeout time.Duration, cont func() bool) bool {
	if timeout <= 0 {
		timeout = q.poll
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for q.full() {
		q.hasSpace.WaitTimeout(timeout)
		if !q.proceed(cont) {
			// Hand a wake-up we may have consumed to the next producer.
			if !q.full() {
				q.hasSpace.Signal()
			}
			q.metrics.recordCancel()
			q.log.Debug("queue push cancelled", zap.Int("size", q.items.len()), zap.Stringer("limit", q.limit))
			return false
		}
	}
	q.push(v)
	return true
}

// TryPopFor removes the front item, waiting up to timeout for one to arrive.
// It returns false if the queue is still empty when the deadline passes.
func (q *BlockingQueue[T]) TryPopFor(timeout time.Duration) (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	deadline := time.Now().Add(timeout)
	for q.items.len() == 0 {
		// Another consumer may take the item we were woken for; keep
		// waiting until the deadline.
		if !q.hasData.WaitTimeout(time.Until(deadline)) && q.items.len() == 0 {
			q.metrics.recordTimeout()
			var zero T
			return zero, false
		}
	}
	return q.pop(), true
}

// WaitPopWhile removes the front item, waiting for data while the queue is
// empty. Waiting and cancellation follow the same rules as WaitPushWhile.
func (q *BlockingQueue[T]) WaitPopWhile(timeout time.Duration, cont func() bool) (T, bool) {
	if timeout <= 0 {
		timeout = q.poll
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.len() == 0 {
		q.hasData.WaitTimeout(timeout)
		if !q.proceed(cont) {
			if q.items.len() > 0 {
				q.hasData.Signal()
			}
			q.metrics.recordCancel()
			q.log.Debug("queue pop cancelled", zap.Int("size", q.items.len()))
			var zero T
			return zero, false
		}
	}
	return q.pop(), true
}

// TryPop removes the front item if there is one. It never blocks.
func (q *BlockingQueue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.len() == 0 {
		var zero T
		return zero, false
	}
	return q.pop(), true
}

// WaitAndPop removes the front item, blocking until one is available.
// The wait cannot be cancelled; use WaitPopWhile for that.
func (q *BlockingQueue[T]) WaitAndPop() T {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.len() == 0 {
		q.hasData.Wait()
	}
	return q.pop()
}

// Empty reports whether the queue holds no items.
func (q *BlockingQueue[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.len() == 0
}

// Size returns the number of queued items.
func (q *BlockingQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.len()
}

// Full reports whether the queue is bounded and at or above its maximum.
func (q *BlockingQueue[T]) Full() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.full()
}

// Limit returns the current capacity policy.
func (q *BlockingQueue[T]) Limit() Limit {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.limit
}

// SetLimit replaces the capacity policy. Items already queued are kept even
// when they exceed a smaller maximum; the limit applies from the next insert.
func (q *BlockingQueue[T]) SetLimit(l Limit) {
	q.mu.Lock()
	defer q.mu.Unlock()

	old := q.limit
	q.limit = l
	if !q.full() {
		q.hasSpace.Broadcast()
	}
	q.log.Debug("queue limit changed",
		zap.Stringer("old", old),
		zap.Stringer("new", l),
		zap.Int("size", q.items.len()),
	)
}

func (q *BlockingQueue[T]) full() bool {
	return q.limit.full(q.items.len())
}

// push appends v and wakes one consumer. Caller holds q.mu.
func (q *BlockingQueue[T]) push(v T) {
	q.items.pushBack(v)
	q.metrics.recordPush(q.items.len())
	q.hasData.Signal()
}

// pop removes the front item and wakes one producer. Caller holds q.mu and
// has checked the queue is not empty.
func (q *BlockingQueue[T]) pop() T {
	v, _ := q.items.popFront()
	q.metrics.recordPop(q.items.len())
	q.hasSpace.Signal()
	return v
}

// proceed evaluates cont with q.mu released. Caller holds q.mu.
func (q *BlockingQueue[T]) proceed(cont func() bool) bool {
	if cont == nil {
		return true
	}
	q.mu.Unlock()
	defer q.mu.Lock()
	return cont()
}
