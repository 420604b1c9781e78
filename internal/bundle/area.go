package bundle

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/appengine-ltd/bundle-forge/internal/metrics"
	"github.com/appengine-ltd/bundle-forge/internal/present"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

// FlagStore reads persisted completion state.
type FlagStore interface {
	BundleFlags(bundleIndex int) ([]bool, bool)
	AreaComplete(area string) bool
}

// Area is a room of bundles that unlocks together.
type Area struct {
	Name    string
	Bundles []*Bundle

	complete bool
	sink     world.Sink
	present  present.Sink
	logger   zerolog.Logger
}

func NewArea(name string, bundles []*Bundle, sink world.Sink, alreadyComplete bool, opts ...Option) *Area {
	o := buildOptions(opts)
	a := &Area{
		Name:     name,
		Bundles:  bundles,
		complete: alreadyComplete,
		sink:     sink,
		present:  o.present,
		logger:   o.logger.With().Str("component", "area").Str("area", name).Logger(),
	}
	for _, b := range bundles {
		b.onComplete = func(*Bundle) { a.Check() }
	}
	// Restored flags can leave every bundle done with the area flag unset.
	if !alreadyComplete {
		a.Check()
	}
	return a
}

// Build groups definitions into areas and restores persisted flags. Areas are
// returned sorted by name; bundles keep definition order.
func Build(defs []Definition, store FlagStore, sink world.Sink, opts ...Option) []*Area {
	grouped := make(map[string][]*Bundle)
	var names []string
	for _, def := range defs {
		var flags []bool
		if store != nil {
			flags, _ = store.BundleFlags(def.Index)
		}
		if _, ok := grouped[def.Area]; !ok {
			names = append(names, def.Area)
		}
		grouped[def.Area] = append(grouped[def.Area], New(def, flags, sink, opts...))
	}
	sort.Strings(names)
	areas := make([]*Area, 0, len(names))
	for _, name := range names {
		done := store != nil && store.AreaComplete(name)
		areas = append(areas, NewArea(name, grouped[name], sink, done, opts...))
	}
	return areas
}

func (a *Area) Bundle(index int) *Bundle {
	for _, b := range a.Bundles {
		if b.Index == index {
			return b
		}
	}
	return nil
}

func (a *Area) IsComplete() bool {
	return a.complete
}

// Check marks the area complete once every bundle is complete. The world is told
// exactly once.
func (a *Area) Check() bool {
	if a.complete || len(a.Bundles) == 0 {
		return false
	}
	for _, b := range a.Bundles {
		if !b.IsComplete() {
			return false
		}
	}
	a.complete = true
	if a.sink != nil {
		a.sink.MarkAreaComplete(a.Name)
		a.sink.RequestRewardCutscene(a.Name)
		a.sink.Broadcast("area_complete", map[string]any{"area": a.Name})
	}
	metrics.RecordCompletion("area")
	a.logger.Info().Msg("area complete")
	a.present.PlaySound(present.SoundAreaDone)
	a.present.ShowMessage(present.MsgAreaComplete, a.Name)
	return true
}
