package factor

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// DefaultMaxAttempts is the default number of random polynomials
// EqualDegree draws before giving up.
const DefaultMaxAttempts = 256

// Config configures the randomized stages of the factorization.
type Config struct {
	// Rand is the source of the random polynomials drawn by
	// EqualDegree.
	Rand io.Reader

	// MaxAttempts bounds the number of random polynomials
	// EqualDegree draws for a single input. Exceeding it fails
	// with ErrRetryBudget.
	MaxAttempts int

	// Logger receives debug output. A nil Logger discards it.
	Logger *slog.Logger
}

// DefaultConfig returns a Config that reads from crypto/rand.
func DefaultConfig() Config {
	return Config{
		Rand:        rand.Reader,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Rand == nil {
		return errors.New("factor: config: rand must not be nil")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("factor: config: invalid max attempts: %d", c.MaxAttempts)
	}
	return nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func (c *Config) logger() *slog.Logger {
	l := c.Logger
	if l == nil {
		l = discard
	}
	return l.With("module", "factor")
}

// resolve returns cfg, or the default configuration if cfg is
// nil, after validating it.
func resolve(cfg *Config) (*Config, error) {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
