//go:build cgo

package present

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// Audio plays sound cues through raylib, loading "<dir>/<name>.wav" on first use.
// Cues without a file are skipped.
type Audio struct {
	dir     string
	logger  zerolog.Logger
	sounds  map[string]rl.Sound
	missing map[string]bool
}

func NewAudio(dir string, logger zerolog.Logger) (*Audio, bool) {
	if dir == "" {
		return nil, false
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Warn().Str("dir", dir).Msg("sound directory unavailable, audio disabled")
		return nil, false
	}
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		logger.Warn().Msg("audio device not ready, audio disabled")
		return nil, false
	}
	return &Audio{
		dir:     dir,
		logger:  logger,
		sounds:  make(map[string]rl.Sound),
		missing: make(map[string]bool),
	}, true
}

func (a *Audio) PlaySound(name string) {
	if a == nil || a.missing[name] {
		return
	}
	snd, ok := a.sounds[name]
	if !ok {
		path := filepath.Join(a.dir, name+".wav")
		if _, err := os.Stat(path); err != nil {
			a.missing[name] = true
			a.logger.Debug().Str("sound", name).Msg("no sound file")
			return
		}
		snd = rl.LoadSound(path)
		a.sounds[name] = snd
	}
	rl.PlaySound(snd)
}

func (a *Audio) SpawnEffect(string, map[string]any) {}

func (a *Audio) ShowMessage(string, ...any) {}

func (a *Audio) Close() {
	if a == nil {
		return
	}
	for _, snd := range a.sounds {
		rl.UnloadSound(snd)
	}
	rl.CloseAudioDevice()
}
