// Package buffer provides a fixed-capacity circular byte buffer shared by
// one writer goroutine and one reader goroutine.
package buffer

import (
	"sync"

	"go.uber.org/zap"

	"github.com/huynhanx03/go-syncbuf/pkg/common/locks"
	"github.com/huynhanx03/go-syncbuf/pkg/pool/arena"
)

// Ring is a circular byte buffer with a fixed capacity.
//
// The writer side and the reader side are serialised by separate mutexes,
// so a goroutine filling the buffer never waits for one draining it. The
// only state both sides touch is the occupied byte count, guarded by a spin
// lock held just for the counter update; byte copies happen outside it.
//
// Ring supports at most one concurrent writer and one concurrent reader.
// Extra writers (or readers) are serialised by the side mutex, but their
// interleaving is unspecified. No operation ever blocks waiting for data or
// space: writes and reads are partial, TryRead is all-or-nothing.
type Ring struct {
	wmu sync.Mutex     // writer side: writePos, arena writes
	rmu sync.Mutex     // reader side: readPos, arena reads
	smu locks.SpinLock // size, and capacity snapshots

	size     int // occupied bytes
	capacity int
	readPos  int // next byte to read
	writePos int // next byte to write
	buf      []byte

	log *zap.Logger
}

// NewRing creates a Ring holding up to capacity bytes. It panics if
// capacity is negative.
func NewRing(capacity int, opts ...RingOption) *Ring {
	if capacity < 0 {
		panic("buffer: negative ring capacity")
	}
	o := applyRingOptions(opts...)
	return &Ring{
		capacity: capacity,
		buf:      arena.Get(capacity),
		log:      o.logger,
	}
}

// Write copies as much of p as fits into the buffer and returns the number
// of bytes written. A short count means the buffer filled up; it is not an
// error and Write never waits for space.
func (r *Ring) Write(p []byte) int {
	return r.write(p, len(p))
}

// WriteZero appends up to n zero bytes, reserving space without a source
// slice. It returns the number of bytes written.
func (r *Ring) WriteZero(n int) int {
	return r.write(nil, n)
}

// WriteForce is reserved for an overwrite-when-full policy that is not
// defined. The argument is ignored; it writes nothing and returns 0.
func (r *Ring) WriteForce(_ []byte) int {
	return 0
}

// Read moves up to len(p) bytes into p and returns the number moved.
// It returns 0 when the buffer is empty and never waits for data.
func (r *Ring) Read(p []byte) int {
	if len(p) == 0 {
		return 0
	}

	r.rmu.Lock()
	defer r.rmu.Unlock()

	toRead := min(len(p), r.occupied())
	if toRead == 0 {
		return 0
	}

	r.readOut(p[:toRead])
	r.consume(toRead)
	return toRead
}

// TryRead fills p completely or not at all. It returns false, leaving the
// buffer untouched, when fewer than len(p) bytes are stored or p is empty.
func (r *Ring) TryRead(p []byte) bool {
	if len(p) == 0 {
		return false
	}

	r.rmu.Lock()
	defer r.rmu.Unlock()

	if r.occupied() < len(p) {
		return false
	}

	r.readOut(p)
	r.consume(len(p))
	return true
}

// Size returns the number of unread bytes.
func (r *Ring) Size() int {
	r.smu.Lock()
	defer r.smu.Unlock()
	return r.size
}

// Available returns the number of bytes that can be written.
func (r *Ring) Available() int {
	r.smu.Lock()
	defer r.smu.Unlock()
	return r.capacity - r.size
}

// Cap returns the capacity of the buffer.
func (r *Ring) Cap() int {
	r.smu.Lock()
	defer r.smu.Unlock()
	return r.capacity
}

// ChangeSize replaces the backing storage with a fresh one of capacity
// bytes. All buffered data is discarded and both cursors restart at zero.
// It waits for in-flight Write and Read calls to finish. It panics if
// capacity is negative.
func (r *Ring) ChangeSize(capacity int) {
	if capacity < 0 {
		panic("buffer: negative ring capacity")
	}
	discarded := r.reset(capacity)
	r.log.Debug("ring resized", zap.Int("capacity", capacity), zap.Int("discarded", discarded))
}

// Release discards buffered data and returns the storage to the pool,
// leaving a Ring of zero capacity. ChangeSize makes it usable again.
func (r *Ring) Release() {
	discarded := r.reset(0)
	r.log.Debug("ring released", zap.Int("discarded", discarded))
}

// reset swaps in a new arena under both side locks and returns the number
// of unread bytes dropped. Write side first, always.
func (r *Ring) reset(capacity int) int {
	r.wmu.Lock()
	defer r.wmu.Unlock()
	r.rmu.Lock()
	defer r.rmu.Unlock()

	old := r.buf
	r.buf = arena.Get(capacity)
	arena.Put(old)
	r.readPos, r.writePos = 0, 0

	r.smu.Lock()
	discarded := r.size
	r.size = 0
	r.capacity = capacity
	r.smu.Unlock()

	return discarded
}

// write stores n bytes taken from p, or zeros when p is nil.
func (r *Ring) write(p []byte, n int) int {
	if n <= 0 {
		return 0
	}

	r.wmu.Lock()
	defer r.wmu.Unlock()

	r.smu.Lock()
	free := r.capacity - r.size
	r.smu.Unlock()

	toWrite := min(n, free)
	if toWrite == 0 {
		return 0
	}

	// One copy when the span fits before the end of the arena, otherwise the
	// tail segment then the wrapped head segment.
	if first := r.capacity - r.writePos; toWrite <= first {
		put(r.buf[r.writePos:r.writePos+toWrite], p, 0)
		r.writePos += toWrite
		if r.writePos == r.capacity {
			r.writePos = 0
		}
	} else {
		put(r.buf[r.writePos:], p, 0)
		put(r.buf[:toWrite-first], p, first)
		r.writePos = toWrite - first
	}

	r.smu.Lock()
	r.size += toWrite
	r.smu.Unlock()
	return toWrite
}

// readOut copies len(p) stored bytes into p and advances readPos. Caller
// holds rmu and has checked that len(p) bytes are stored.
func (r *Ring) readOut(p []byte) {
	n := len(p)
	if first := r.capacity - r.readPos; n <= first {
		copy(p, r.buf[r.readPos:r.readPos+n])
		r.readPos += n
		if r.readPos == r.capacity {
			r.readPos = 0
		}
		return
	}

	first := copy(p, r.buf[r.readPos:])
	copy(p[first:], r.buf[:n-first])
	r.readPos = n - first
}

func (r *Ring) occupied() int {
	r.smu.Lock()
	defer r.smu.Unlock()
	return r.size
}

func (r *Ring) consume(n int) {
	r.smu.Lock()
	r.size -= n
	r.smu.Unlock()
}

// put fills dst from src[off:], or with zeros when src is nil.
func put(dst, src []byte, off int) {
	if src == nil {
		clear(dst)
		return
	}
	copy(dst, src[off:])
}
