// Package kafka publishes drained batches to a Kafka topic.
package kafka

import (
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-syncbuf/pkg/settings"
)

var (
	ErrNoBrokers = errors.New("kafka: no brokers configured")
	ErrNoTopic   = errors.New("kafka: no topic configured")
)

// Producer sends each batch as one SendMessages call. It satisfies
// batcher.Consumer[[]byte].
type Producer struct {
	sp    sarama.SyncProducer
	topic string
	log   *zap.Logger
}

// Option configures a Producer.
type Option func(*Producer)

// WithLogger sets the logger for delivery failures.
func WithLogger(l *zap.Logger) Option {
	return func(p *Producer) {
		if l != nil {
			p.log = l
		}
	}
}

// NewConfig builds a sarama config from settings. Zero values keep sarama's
// defaults.
func NewConfig(s settings.Kafka) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll

	if s.FlushFrequency > 0 {
		cfg.Producer.Flush.Frequency = settings.Millis(s.FlushFrequency)
	}
	if s.FlushBytes > 0 {
		cfg.Producer.Flush.Bytes = s.FlushBytes
	}
	if s.MaxMessageBytes > 0 {
		cfg.Producer.MaxMessageBytes = s.MaxMessageBytes
	}
	if s.Timeout > 0 {
		timeout := time.Duration(s.Timeout) * time.Second
		cfg.Producer.Timeout = timeout
		cfg.Net.DialTimeout = timeout
	}
	if s.MaxRetries > 0 {
		cfg.Producer.Retry.Max = s.MaxRetries
	}
	if s.RetryBackoff > 0 {
		cfg.Producer.Retry.Backoff = settings.Millis(s.RetryBackoff)
	}
	return cfg
}

// NewProducer connects a synchronous producer to the configured brokers.
func NewProducer(s settings.Kafka, opts ...Option) (*Producer, error) {
	if len(s.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if s.Topic == "" {
		return nil, ErrNoTopic
	}

	sp, err := sarama.NewSyncProducer(s.Brokers, NewConfig(s))
	if err != nil {
		return nil, errors.Wrap(err, "create kafka producer")
	}
	return NewProducerWith(sp, s.Topic, opts...), nil
}

// NewProducerWith wraps an existing producer.
func NewProducerWith(sp sarama.SyncProducer, topic string, opts ...Option) *Producer {
	p := &Producer{
		sp:    sp,
		topic: topic,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Consume publishes batch to the topic. An empty batch is a no-op.
func (p *Producer) Consume(batch [][]byte) error {
	if len(batch) == 0 {
		return nil
	}

	msgs := make([]*sarama.ProducerMessage, len(batch))
	for i, b := range batch {
		msgs[i] = &sarama.ProducerMessage{
			Topic: p.topic,
			Value: sarama.ByteEncoder(b),
		}
	}

	if err := p.sp.SendMessages(msgs); err != nil {
		failed := len(batch)
		var perrs sarama.ProducerErrors
		if errors.As(err, &perrs) {
			failed = len(perrs)
		}
		p.log.Error("kafka send failed",
			zap.String("topic", p.topic),
			zap.Int("batch", len(batch)),
			zap.Int("failed", failed),
			zap.Error(err),
		)
		return errors.Wrapf(err, "send %d messages to %s", len(batch), p.topic)
	}
	return nil
}

// Close flushes and closes the underlying producer.
func (p *Producer) Close() error {
	return errors.Wrap(p.sp.Close(), "close kafka producer")
}
