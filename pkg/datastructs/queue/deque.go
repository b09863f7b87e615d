package queue

import "github.com/huynhanx03/go-syncbuf/pkg/utils"

const minDequeCap = 16

// deque is a growable circular FIFO. It is NOT thread-safe.
type deque[T any] struct {
	buf  []T
	head int // index of the front element
	n    int // number of stored elements
}

func (d *deque[T]) len() int { return d.n }

// pushBack appends v, doubling the backing slice when it is full.
func (d *deque[T]) pushBack(v T) {
	if d.n == len(d.buf) {
		d.grow()
	}
	d.buf[d.wrap(d.head+d.n)] = v
	d.n++
}

// popFront removes and returns the front element. The vacated slot is
// zeroed so the queue does not pin popped values.
func (d *deque[T]) popFront() (T, bool) {
	var zero T
	if d.n == 0 {
		return zero, false
	}

	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = d.wrap(d.head + 1)
	d.n--
	if d.n == 0 {
		d.head = 0
	}
	return v, true
}

// wrap maps idx into the backing slice; len(d.buf) is a power of two.
func (d *deque[T]) wrap(idx int) int {
	return idx & (len(d.buf) - 1)
}

func (d *deque[T]) grow() {
	newCap := minDequeCap
	if len(d.buf) > 0 {
		newCap = utils.CeilToPowerOfTwo(len(d.buf) * 2)
	}

	buf := make([]T, newCap)
	if d.n > 0 {
		// Unroll the wrapped span into [0, n).
		tail := copy(buf, d.buf[d.head:])
		if tail < d.n {
			copy(buf[tail:], d.buf[:d.n-tail])
		}
	}
	d.buf = buf
	d.head = 0
}
