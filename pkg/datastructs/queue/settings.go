package queue

import "github.com/huynhanx03/go-syncbuf/pkg/settings"

// LimitFromSettings maps a configured maximum to a Limit. A zero MaxLen in
// the file means no limit.
func LimitFromSettings(s settings.Queue) Limit {
	if s.MaxLen <= 0 {
		return Unbounded()
	}
	return Bounded(s.MaxLen)
}

// NewFromSettings creates a queue with the configured limit and poll
// interval. opts are applied after the configured values.
func NewFromSettings[T any](s settings.Queue, opts ...Option) *BlockingQueue[T] {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, WithPollInterval(s.PollTimeout()))
	all = append(all, opts...)
	return New[T](LimitFromSettings(s), all...)
}
