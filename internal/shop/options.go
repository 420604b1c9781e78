package shop

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/present"
)

type options struct {
	logger  zerolog.Logger
	present present.Sink
	buys    func(*item.Item) bool
	seed    int64
}

// Option configures a Ledger.
type Option func(*options)

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithPresenter(p present.Sink) Option {
	return func(o *options) {
		if p != nil {
			o.present = p
		}
	}
}

// WithBuyFilter limits what the shop will take off the player's hands.
func WithBuyFilter(buys func(*item.Item) bool) Option {
	return func(o *options) { o.buys = buys }
}

// WithSeed seeds the restock rolls.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

func buildOptions(opts []Option) options {
	o := options{logger: log.Logger, present: present.Nop(), seed: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
