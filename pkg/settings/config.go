package settings

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logger  Logger  `mapstructure:"logger" yaml:"logger"`
	Queue   Queue   `mapstructure:"queue" yaml:"queue"`
	Ring    Ring    `mapstructure:"ring" yaml:"ring"`
	Batcher Batcher `mapstructure:"batcher" yaml:"batcher"`
	Kafka   Kafka   `mapstructure:"kafka" yaml:"kafka"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FileLogName string `mapstructure:"file_log_name" yaml:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age" validate:"gte=0"`   // Days
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size" validate:"gte=0"` // Megabytes
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// Queue is the configuration for a blocking queue
type Queue struct {
	MaxLen       int `mapstructure:"max_len" yaml:"max_len" validate:"gte=0"`             // 0 disables the limit
	PollInterval int `mapstructure:"poll_interval" yaml:"poll_interval" validate:"gte=0"` // Milliseconds
}

// Ring is the configuration for a circular byte buffer
type Ring struct {
	Capacity int `mapstructure:"capacity" yaml:"capacity" validate:"gte=0"` // Bytes
}

// Batcher is the configuration for draining a queue in batches
type Batcher struct {
	BatchSize     int `mapstructure:"batch_size" yaml:"batch_size" validate:"gte=0"`         // Number of items
	Workers       int `mapstructure:"workers" yaml:"workers" validate:"gte=0"`               // Number of goroutines
	FlushInterval int `mapstructure:"flush_interval" yaml:"flush_interval" validate:"gte=0"` // Milliseconds
	PollInterval  int `mapstructure:"poll_interval" yaml:"poll_interval" validate:"gte=0"`   // Milliseconds
}

// Kafka is the configuration for Kafka
type Kafka struct {
	Brokers         []string `mapstructure:"brokers" yaml:"brokers" validate:"omitempty,dive,hostname_port"`
	Topic           string   `mapstructure:"topic" yaml:"topic"`
	FlushFrequency  int      `mapstructure:"flush_frequency" yaml:"flush_frequency" validate:"gte=0"`     // Milliseconds
	FlushBytes      int      `mapstructure:"flush_bytes" yaml:"flush_bytes" validate:"gte=0"`             // Bytes
	MaxMessageBytes int      `mapstructure:"max_message_bytes" yaml:"max_message_bytes" validate:"gte=0"` // Bytes
	Timeout         int      `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"`                     // Seconds
	MaxRetries      int      `mapstructure:"max_retries" yaml:"max_retries" validate:"gte=0"`             // Number of retries
	RetryBackoff    int      `mapstructure:"retry_backoff" yaml:"retry_backoff" validate:"gte=0"`         // Milliseconds
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a YAML configuration file and validates it.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(raw)
}

// Parse decodes a YAML document and validates it.
func Parse(raw []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return errors.Wrap(validate.Struct(c), "invalid config")
}

// PollTimeout returns the per-attempt wait, or zero when unset.
func (q Queue) PollTimeout() time.Duration {
	return Millis(q.PollInterval)
}

// Millis converts a millisecond count to a time.Duration.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
