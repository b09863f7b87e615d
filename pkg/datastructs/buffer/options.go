package buffer

import "go.uber.org/zap"

// RingOption configures a Ring.
type RingOption func(*ringOptions)

type ringOptions struct {
	logger *zap.Logger
}

// WithRingLogger sets the logger used for resize and release events.
// A nil logger is ignored.
func WithRingLogger(l *zap.Logger) RingOption {
	return func(o *ringOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyRingOptions(opts ...RingOption) *ringOptions {
	o := &ringOptions{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
