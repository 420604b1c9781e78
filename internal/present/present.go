// Package present is the fire-and-forget feedback seam between the menu state
// machines and whatever renders or plays them.
package present

import (
	"slices"
	"strings"
)

// Sound cue names.
const (
	SoundCancel       = "cancel"
	SoundNewArtifact  = "newArtifact"
	SoundCoin         = "coin"
	SoundPurchase     = "purchaseClick"
	SoundDwop         = "dwop"
	SoundStep         = "Ship"
	SoundLeafRustle   = "leafrustle"
	SoundBundleDone   = "select"
	SoundAreaDone     = "achievement"
	SoundForgeStart   = "debuffHit"
	SoundForgeDone    = "furnace"
	SoundSewing       = "sewing_loop"
	SoundSewingDone   = "drumkit6"
	SoundCrit         = "crit"
	SoundDyeApplied   = "button_tap"
	SoundMoneyDial    = "moneyDial"
	SoundUnforge      = "coin"
	SoundSmallSelect  = "smallSelect"
	SoundBuyBackEntry = "sell"
)

// Sink receives presentation requests. Implementations must not block.
type Sink interface {
	PlaySound(name string)
	SpawnEffect(name string, fields map[string]any)
	ShowMessage(key string, args ...any)
}

type nopSink struct{}

func (nopSink) PlaySound(string)                   {}
func (nopSink) SpawnEffect(string, map[string]any) {}
func (nopSink) ShowMessage(string, ...any)         {}

// Nop discards everything.
func Nop() Sink { return nopSink{} }

// Multi fans out to every non-nil sink.
type Multi []Sink

func (m Multi) PlaySound(name string) {
	for _, s := range m {
		if s != nil {
			s.PlaySound(name)
		}
	}
}

func (m Multi) SpawnEffect(name string, fields map[string]any) {
	for _, s := range m {
		if s != nil {
			s.SpawnEffect(name, fields)
		}
	}
}

func (m Multi) ShowMessage(key string, args ...any) {
	for _, s := range m {
		if s != nil {
			s.ShowMessage(key, args...)
		}
	}
}

// Recorder keeps every request in order. The terminal host reads the last message
// back as its status line.
type Recorder struct {
	Sounds   []string
	Effects  []string
	Messages []string
}

func (r *Recorder) PlaySound(name string) {
	r.Sounds = append(r.Sounds, name)
}

func (r *Recorder) SpawnEffect(name string, _ map[string]any) {
	r.Effects = append(r.Effects, name)
}

func (r *Recorder) ShowMessage(key string, args ...any) {
	r.Messages = append(r.Messages, Text(key, args...))
}

func (r *Recorder) Played(name string) bool {
	return slices.Contains(r.Sounds, name)
}

func (r *Recorder) LastMessage() string {
	if r == nil || len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1]
}

// SaidContaining reports whether any message contains the fragment.
func (r *Recorder) SaidContaining(fragment string) bool {
	for _, m := range r.Messages {
		if strings.Contains(m, fragment) {
			return true
		}
	}
	return false
}

func (r *Recorder) Reset() {
	r.Sounds = r.Sounds[:0]
	r.Effects = r.Effects[:0]
	r.Messages = r.Messages[:0]
}
