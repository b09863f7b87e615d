package queue

import "strconv"

// Limit is the capacity policy of a BlockingQueue: either a positive
// maximum element count or unbounded. The zero value is unbounded.
type Limit struct {
	max     int
	bounded bool
}

// Bounded returns a Limit of n elements. It panics if n is not positive;
// use Unbounded for a queue without a capacity.
func Bounded(n int) Limit {
	if n <= 0 {
		panic("queue: bounded limit must be positive, got " + strconv.Itoa(n))
	}
	return Limit{max: n, bounded: true}
}

// Unbounded returns a Limit that never reports the queue as full.
func Unbounded() Limit {
	return Limit{}
}

// IsBounded reports whether l enforces a maximum.
func (l Limit) IsBounded() bool {
	return l.bounded
}

// Max returns the maximum element count and whether l is bounded.
func (l Limit) Max() (int, bool) {
	return l.max, l.bounded
}

// String returns "unbounded" or the maximum as a decimal.
func (l Limit) String() string {
	if !l.bounded {
		return "unbounded"
	}
	return strconv.Itoa(l.max)
}

// full reports whether a queue holding size items has no room left.
func (l Limit) full(size int) bool {
	return l.bounded && size >= l.max
}
