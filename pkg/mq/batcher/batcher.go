// Package batcher drains a queue in batches.
//
// A Drainer runs a fixed set of worker goroutines. Each worker pulls items
// with a cancellable wait, collects them in its own stripe and hands the
// stripe to the Consumer when it is full or when its oldest item has waited
// FlushInterval. On shutdown the workers empty the queue without waiting
// and flush what they hold, so no accepted item is left behind.
//
// When a Consumer call fails, the batch it was given is not retried: it
// reached the Consumer once and its fate is the Consumer's. Every other
// worker stops and pushes the items it had buffered back to the Source, so
// after Run returns each item was either handed to the Consumer or is still
// in the Source.
package batcher

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stats is a snapshot of Drainer activity.
type Stats struct {
	Batches int64 // Consume calls
	Items   int64 // items handed to the Consumer
}

// Drainer moves items from a Source to a Consumer in batches.
type Drainer[T any] struct {
	src  Source[T]
	cons Consumer[T]
	cfg  Config
	log  *zap.Logger

	batches atomic.Int64
	items   atomic.Int64
	failed  atomic.Bool
}

// Option configures a Drainer.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger for flush and failure events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a Drainer. Zero Config fields take the package defaults.
func New[T any](src Source[T], cons Consumer[T], cfg Config, opts ...Option) *Drainer[T] {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return &Drainer[T]{
		src:  src,
		cons: cons,
		cfg:  cfg.withDefaults(),
		log:  o.logger,
	}
}

// Run pulls from the Source until ctx is done, then drains what is left and
// returns. The first Consumer error stops every worker and is returned;
// after a failure the remaining items, including those buffered by the
// other workers, stay in the Source.
func (d *Drainer[T]) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < d.cfg.Workers; i++ {
		worker := i
		g.Go(func() error {
			return d.work(gctx, worker)
		})
	}

	err := g.Wait()
	d.log.Debug("drainer stopped",
		zap.Int64("batches", d.batches.Load()),
		zap.Int64("items", d.items.Load()),
		zap.Error(err),
	)
	return err
}

// Stats returns the counters accumulated so far.
func (d *Drainer[T]) Stats() Stats {
	return Stats{
		Batches: d.batches.Load(),
		Items:   d.items.Load(),
	}
}

func (d *Drainer[T]) work(ctx context.Context, worker int) error {
	s := newStripe(d.cons, d.cfg.BatchSize)

	// Stop waiting on shutdown, or when the partial stripe is due so it can
	// be flushed even if no further item arrives.
	cont := func() bool {
		return ctx.Err() == nil && !s.due(d.cfg.FlushInterval)
	}

	for ctx.Err() == nil {
		if item, ok := d.src.WaitPopWhile(d.cfg.PollInterval, cont); ok {
			if err := d.record(s.push(item)); err != nil {
				return d.fail(worker, err)
			}
		}
		if s.due(d.cfg.FlushInterval) {
			if err := d.record(s.flush()); err != nil {
				return d.fail(worker, err)
			}
		}
	}

	if d.failed.Load() {
		d.requeue(worker, s)
		return nil
	}
	for {
		item, ok := d.src.TryPop()
		if !ok {
			break
		}
		if err := d.record(s.push(item)); err != nil {
			return d.fail(worker, err)
		}
	}
	if err := d.record(s.flush()); err != nil {
		return d.fail(worker, err)
	}
	return nil
}

// requeue returns the items buffered in s to the Source.
func (d *Drainer[T]) requeue(worker int, s *stripe[T]) {
	items := s.take()
	for _, item := range items {
		d.src.Push(item)
	}
	if len(items) > 0 {
		d.log.Debug("stripe requeued", zap.Int("worker", worker), zap.Int("items", len(items)))
	}
}

// record counts a flush of n items.
func (d *Drainer[T]) record(n int, err error) error {
	if n > 0 && err == nil {
		d.batches.Add(1)
		d.items.Add(int64(n))
		d.log.Debug("batch flushed", zap.Int("items", n))
	}
	return err
}

func (d *Drainer[T]) fail(worker int, err error) error {
	d.failed.Store(true)
	d.log.Error("drainer worker failed", zap.Int("worker", worker), zap.Error(err))
	return err
}
