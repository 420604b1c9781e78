package craft

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/appengine-ltd/bundle-forge/internal/present"
)

type options struct {
	logger  zerolog.Logger
	present present.Sink
}

// Option configures a Transaction.
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

func buildOptions(opts []Option) options {
	o := options{logger: log.Logger, present: present.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
