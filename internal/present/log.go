package present

import (
	"github.com/rs/zerolog"
)

// Log writes presentation requests to a structured logger at debug level.
type Log struct {
	logger zerolog.Logger
}

func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger.With().Str("component", "present").Logger()}
}

func (l *Log) PlaySound(name string) {
	l.logger.Debug().Str("sound", name).Msg("play sound")
}

func (l *Log) SpawnEffect(name string, fields map[string]any) {
	l.logger.Debug().Str("effect", name).Fields(fields).Msg("spawn effect")
}

func (l *Log) ShowMessage(key string, args ...any) {
	l.logger.Info().Str("key", key).Msg(Text(key, args...))
}
