package cassowary

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/atelier-ui/cassowary/logger"
)

// Option alters the behavior of a Solver at construction time. See the
// descriptions of functions returning instances of this type for
// implemented options.
type Option func(*config) error

// config is the solver configuration with the options applied.
type config struct {
	logger   zerolog.Logger
	capacity int
}

// WithLogger replaces the package level logger for this solver. To silence
// a single solver pass zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = l
		return nil
	}
}

// WithCapacity pre-sizes the solver's internal tables for the expected
// number of constraints. Solvers grow on demand either way; this only
// avoids rehashing while loading a large system.
func WithCapacity(capacity int) Option {
	return func(cfg *config) error {
		if capacity < 0 {
			return fmt.Errorf("negative capacity %d", capacity)
		}
		cfg.capacity = capacity
		return nil
	}
}

func newConfig(opts ...Option) (config, error) {
	cfg := config{logger: logger.Logger()}
	for _, option := range opts {
		if err := option(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}
