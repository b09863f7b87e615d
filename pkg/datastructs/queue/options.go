package queue

import (
	"time"

	"go.uber.org/zap"
)

// DefaultPollInterval is the per-attempt wait used by WaitPushWhile and
// WaitPopWhile when they are given a non-positive timeout and no
// WithPollInterval option was applied.
const DefaultPollInterval = 100 * time.Millisecond

// Option configures a BlockingQueue.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	metrics *Metrics
	poll    time.Duration
}

// WithLogger sets the logger used for debug events such as limit changes
// and cancelled waits. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics makes the queue report to m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithPollInterval replaces DefaultPollInterval for this queue. Non-positive
// values are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.poll = d
		}
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{
		logger: zap.NewNop(),
		poll:   DefaultPollInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
