package gostreams

import (
	"log/slog"
	"runtime"
)

// Config holds the configuration of an EntryStream.
type Config struct {
	// Parallelism is the maximum number of callbacks a parallel stream runs at the same time.
	Parallelism int

	// Logger receives debug records about short-circuited streams and recovered panics.
	Logger *slog.Logger
}

// Option is a functional option for configuring streams.
type Option func(*Config)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Parallelism: runtime.GOMAXPROCS(0),
		Logger:      slog.Default(),
	}
}

// WithParallelism sets the worker pool size of parallel streams.
// A non-positive n resets it to GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(c *Config) {
		c.Parallelism = sanitizeParallelism(n)
	}
}

// WithLogger sets the logger. A nil logger resets it to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger == nil {
			logger = slog.Default()
		}

		c.Logger = logger
	}
}

// ApplyOptions applies the given options to the default configuration.
func ApplyOptions(opts ...Option) Config {
	return DefaultConfig().with(opts...)
}

func (c Config) with(opts ...Option) Config {
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

func sanitizeParallelism(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return n
}
