package buffer

import "github.com/huynhanx03/go-syncbuf/pkg/settings"

// NewRingFromSettings creates a Ring with the configured capacity.
func NewRingFromSettings(s settings.Ring, opts ...RingOption) *Ring {
	return NewRing(s.Capacity, opts...)
}
