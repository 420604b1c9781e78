package ui

import "github.com/appengine-ltd/bundle-forge/internal/present"

// feed buffers player-facing messages until the next frame renders them.
type feed struct {
	ch chan string
}

func newFeed(size int) *feed {
	if size < 1 {
		size = 16
	}
	return &feed{ch: make(chan string, size)}
}

func (f *feed) PlaySound(string)                   {}
func (f *feed) SpawnEffect(string, map[string]any) {}

func (f *feed) ShowMessage(key string, args ...any) {
	if f == nil {
		return
	}
	select {
	case f.ch <- present.Text(key, args...):
	default:
		// Saturated: the log sink still has it.
	}
}

func (f *feed) Drain() []string {
	if f == nil {
		return nil
	}
	var out []string
	for {
		select {
		case msg := <-f.ch:
			out = append(out, msg)
		default:
			return out
		}
	}
}
