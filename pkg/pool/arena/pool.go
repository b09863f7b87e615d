// Package arena pools the contiguous byte arenas that back ring buffers.
//
// Arenas are grouped in power-of-two size classes from MinSize to MaxSize.
// Requests above MaxSize bypass the pool and are left to the garbage
// collector when released.
package arena

import (
	"sync"
	"sync/atomic"

	"github.com/huynhanx03/go-syncbuf/pkg/utils"
)

const (
	MinBitSize = 6  // 64 bytes (CPU cache line)
	Steps      = 20 // 64B to 32MB

	MinSize = 1 << MinBitSize
	MaxSize = 1 << (MinBitSize + Steps - 1)
)

// Stats is a snapshot of pool activity.
type Stats struct {
	Gets   uint64 // arenas handed out
	Puts   uint64 // arenas recycled
	Allocs uint64 // arenas freshly allocated (pool miss or oversized)
}

// Pool is a size-classed pool of byte arenas. The zero value is not usable;
// create one with New.
type Pool struct {
	buckets [Steps]sync.Pool

	gets   atomic.Uint64
	puts   atomic.Uint64
	allocs atomic.Uint64
}

var defaultPool = New()

// New creates an empty Pool.
func New() *Pool {
	p := &Pool{}
	for i := range p.buckets {
		size := MinSize << i
		p.buckets[i].New = func() any {
			p.allocs.Add(1)
			b := make([]byte, size)
			return &b
		}
	}
	return p
}

// Get returns a zeroed arena of exactly n bytes. n <= 0 yields nil.
func (p *Pool) Get(n int) []byte {
	if n <= 0 {
		return nil
	}
	p.gets.Add(1)

	idx := SizeToIndex(n)
	if idx >= Steps {
		p.allocs.Add(1)
		return make([]byte, n)
	}

	b := *(p.buckets[idx].Get().(*[]byte))
	b = b[:n]
	clear(b)
	return b
}

// Put recycles an arena obtained from Get. The caller must not touch b
// afterwards. Foreign or oversized slices are dropped.
func (p *Pool) Put(b []byte) {
	c := cap(b)
	if c < MinSize || c > MaxSize || !utils.IsPowerOfTwo(c) {
		return
	}
	p.puts.Add(1)

	b = b[:c]
	p.buckets[SizeToIndex(c)].Put(&b)
}

// Stats returns the pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Gets:   p.gets.Load(),
		Puts:   p.puts.Load(),
		Allocs: p.allocs.Load(),
	}
}

// Get returns a zeroed arena of n bytes from the default pool.
func Get(n int) []byte { return defaultPool.Get(n) }

// Put recycles an arena into the default pool.
func Put(b []byte) { defaultPool.Put(b) }

// SizeToIndex returns the size class holding n bytes.
func SizeToIndex(n int) int {
	if n <= MinSize {
		return 0
	}
	return utils.Log2Ceil(n) - MinBitSize
}

// BucketSize returns the capacity of size class i, or 0 when out of range.
func BucketSize(i int) int {
	if i < 0 || i >= Steps {
		return 0
	}
	return MinSize << i
}
