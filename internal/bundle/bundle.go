package bundle

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/appengine-ltd/bundle-forge/internal/ingredient"
	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/metrics"
	"github.com/appengine-ltd/bundle-forge/internal/present"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

// Bundle is one bundle's fixed set of ingredient slots. Requirements are immutable;
// per-slot completion lives alongside them in completed.
type Bundle struct {
	Index           int
	Name            string
	Area            string
	Reward          string
	Ingredients     []ingredient.Requirement
	NumberOfSlots   int
	DepositsAllowed bool

	completed []bool
	slotItems []*item.Item
	complete  bool
	purchased bool

	sink       world.Sink
	present    present.Sink
	logger     zerolog.Logger
	onComplete func(*Bundle)
}

// New builds a bundle from its definition and persisted slot flags. Flags that do
// not line up with the ingredient list are discarded and the bundle starts empty.
func New(def Definition, flags []bool, sink world.Sink, opts ...Option) *Bundle {
	o := buildOptions(opts)
	slots := def.NumberOfSlots
	if slots <= 0 || slots > len(def.Ingredients) {
		slots = len(def.Ingredients)
	}
	b := &Bundle{
		Index:           def.Index,
		Name:            def.Name,
		Area:            def.Area,
		Reward:          def.Reward,
		Ingredients:     slices.Clone(def.Ingredients),
		NumberOfSlots:   slots,
		DepositsAllowed: true,
		completed:       make([]bool, len(def.Ingredients)),
		slotItems:       make([]*item.Item, len(def.Ingredients)),
		sink:            sink,
		present:         o.present,
		logger:          o.logger.With().Str("component", "bundle").Int("bundle", def.Index).Logger(),
	}
	switch {
	case flags == nil:
	case len(flags) != len(def.Ingredients):
		b.logger.Warn().Int("flags", len(flags)).Int("ingredients", len(def.Ingredients)).
			Msg("persisted bundle flags do not match ingredients, treating bundle as not started")
	default:
		copy(b.completed, flags)
	}
	b.complete = b.slotsComplete()
	return b
}

// MoneyCost returns the currency amount of a purchase-style bundle.
func (b *Bundle) MoneyCost() (int, bool) {
	for _, req := range b.Ingredients {
		if req.IsMoney() {
			return req.Stack, true
		}
	}
	return 0, false
}

func (b *Bundle) SlotCompleted(slot int) bool {
	if slot < 0 || slot >= len(b.completed) {
		return false
	}
	return b.completed[slot]
}

// SlotItem is the item shown in a filled slot.
func (b *Bundle) SlotItem(slot int) *item.Item {
	if slot < 0 || slot >= len(b.slotItems) {
		return nil
	}
	return b.slotItems[slot]
}

// Flags returns a copy of the per-slot completion flags.
func (b *Bundle) Flags() []bool {
	return slices.Clone(b.completed)
}

func (b *Bundle) CanAccept(it *item.Item, slot int) bool {
	if b == nil || it == nil || !b.DepositsAllowed || b.complete {
		return false
	}
	if slot < 0 || slot >= len(b.Ingredients) || b.completed[slot] {
		return false
	}
	return ingredient.Matches(b.Ingredients[slot], it)
}

// RequirementIndexFor returns the first open slot it can go into, or -1.
func (b *Bundle) RequirementIndexFor(it *item.Item) int {
	if b == nil || b.complete {
		return -1
	}
	return ingredient.FirstMatch(b.Ingredients, it, func(i int) bool { return b.completed[i] })
}

// Deposit fills slot with exactly the required stack and returns the remainder.
// Smaller stacks are returned untouched; they go through the contribution ledger.
func (b *Bundle) Deposit(it *item.Item, slot int) *item.Item {
	if !b.CanAccept(it, slot) {
		return it
	}
	req := b.Ingredients[slot]
	if it.Stack < req.Stack {
		return it
	}
	b.slotItems[slot] = it.WithStack(req.Stack)
	it.Stack -= req.Stack
	b.completed[slot] = true
	b.persist()
	metrics.RecordSlotFilled()
	b.logger.Info().Int("slot", slot).Str("item", it.ID).Int("stack", req.Stack).Msg("bundle slot filled")
	b.present.PlaySound(present.SoundNewArtifact)
	if it.Stack <= 0 {
		return nil
	}
	return it
}

// IsComplete reports whether every required slot is filled, or the bundle was bought.
func (b *Bundle) IsComplete() bool {
	return b.complete || b.purchased || b.slotsComplete()
}

func (b *Bundle) slotsComplete() bool {
	n := min(b.NumberOfSlots, len(b.completed))
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if !b.completed[i] {
			return false
		}
	}
	return true
}

// CheckCompletion performs the one-way transition to complete. It returns true only
// for the call that made the transition.
func (b *Bundle) CheckCompletion() bool {
	if b == nil || b.complete || !b.IsComplete() {
		return false
	}
	b.complete = true
	if b.sink != nil {
		b.sink.MarkBundleComplete(b.Index)
		b.sink.Broadcast("bundle_complete", map[string]any{"bundle": b.Index, "area": b.Area})
	}
	metrics.RecordCompletion("bundle")
	b.logger.Info().Str("name", b.Name).Msg("bundle complete")
	b.present.PlaySound(present.SoundBundleDone)
	b.present.ShowMessage(present.MsgBundleComplete, b.Name)
	if b.onComplete != nil {
		b.onComplete(b)
	}
	return true
}

// Purchase completes a money bundle by charging its cost directly.
func (b *Bundle) Purchase(p world.Player) bool {
	cost, ok := b.MoneyCost()
	if !ok || b.complete || !b.DepositsAllowed || p == nil {
		return false
	}
	if !p.Spend(cost) {
		b.present.PlaySound(present.SoundCancel)
		b.present.ShowMessage(present.MsgNotEnoughMoney, cost)
		return false
	}
	for i := range b.completed {
		b.completed[i] = true
	}
	b.purchased = true
	b.persist()
	b.present.PlaySound(present.SoundMoneyDial)
	b.logger.Info().Int("cost", cost).Msg("bundle purchased")
	return b.CheckCompletion()
}

func (b *Bundle) persist() {
	if b.sink != nil {
		b.sink.SaveBundleFlags(b.Index, b.completed)
	}
}
