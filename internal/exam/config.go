package exam

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abhisek/quizdeck/internal/timer"
)

// Config holds session defaults.
type Config struct {
	// TimeLimitMinutes is the countdown length. Invalid values fall back
	// to timer.DefaultMinutes.
	TimeLimitMinutes int

	// Mode is the mode used when none is chosen explicitly.
	Mode Mode

	// Strict rejects a batch that contains malformed question blocks.
	Strict bool

	// Seed fixes the shuffle order. Zero draws a random seed.
	Seed uint64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TimeLimitMinutes: timer.DefaultMinutes,
		Mode:             ModeExam,
	}
}

// ConfigFromEnv overlays QUIZDECK_* environment variables on the defaults.
// Unparseable values keep the default.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("QUIZDECK_TIME_LIMIT"); v != "" {
		cfg.TimeLimitMinutes = timer.LimitFromMinutes(v) / 60
	}
	if v := os.Getenv("QUIZDECK_MODE"); v != "" {
		if m, err := ParseMode(v); err == nil {
			cfg.Mode = m
		}
	}
	if v := os.Getenv("QUIZDECK_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Strict = b
		}
	}
	if v := os.Getenv("QUIZDECK_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	return cfg
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TimeLimitSeconds returns the countdown length in seconds.
func (c Config) TimeLimitSeconds() int {
	return timer.LimitFromMinutes(strconv.Itoa(c.TimeLimitMinutes))
}
