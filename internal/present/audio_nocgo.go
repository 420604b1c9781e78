//go:build !cgo

package present

import "github.com/rs/zerolog"

// Audio is unavailable without cgo; NewAudio always reports false.
type Audio struct{}

func NewAudio(dir string, logger zerolog.Logger) (*Audio, bool) {
	if dir != "" {
		logger.Warn().Msg("audio requires a cgo build, sound cues disabled")
	}
	return nil, false
}

func (a *Audio) PlaySound(string)                   {}
func (a *Audio) SpawnEffect(string, map[string]any) {}
func (a *Audio) ShowMessage(string, ...any)         {}
func (a *Audio) Close()                             {}
