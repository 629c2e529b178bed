package regression

import (
	"log/slog"
	"math/rand/v2"
)

// Option configures a Model.
type Option func(*Model)

// WithSeed fixes the random source used for train/test splitting, making
// splits reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Model) {
		m.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithLogger sets the structured logger the model emits debug records to.
// The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}
