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

// Ledger gathers a requirement from several smaller stacks. Units taken from the
// player sit in contributors until the requirement is met (and deposited) or the
// donation is withdrawn. pending.Stack always equals the sum of contributor stacks.
type Ledger struct {
	bundle *Bundle
	player world.Player

	pending      *item.Item
	contributors []*item.Item
	target       int

	present present.Sink
	logger  zerolog.Logger
}

func NewLedger(b *Bundle, p world.Player, opts ...Option) *Ledger {
	o := buildOptions(opts)
	logger := o.logger
	if b != nil {
		logger = logger.With().Int("bundle", b.Index).Logger()
	}
	return &Ledger{
		bundle:  b,
		player:  p,
		target:  -1,
		present: o.present,
		logger:  logger.With().Str("component", "ledger").Logger(),
	}
}

func (l *Ledger) Active() bool {
	return l != nil && l.pending != nil
}

// Pending is the stand-in item shown in the target slot.
func (l *Ledger) Pending() *item.Item {
	if l == nil {
		return nil
	}
	return l.pending
}

func (l *Ledger) Target() int {
	if l == nil {
		return -1
	}
	return l.target
}

func (l *Ledger) Contributors() []*item.Item {
	if l == nil {
		return nil
	}
	return slices.Clone(l.contributors)
}

// PendingUnits is the number of units currently held by the ledger.
func (l *Ledger) PendingUnits() int {
	if !l.Active() {
		return 0
	}
	return l.pending.Stack
}

func (l *Ledger) indexFor(it *item.Item) int {
	if l.Active() && ingredient.Matches(l.bundle.Ingredients[l.target], it) {
		return l.target
	}
	return l.bundle.RequirementIndexFor(it)
}

// CanContribute reports whether it together with the rest of the player's matching
// stacks could ever fill its requirement. The candidate's own stack is added on top
// of the inventory scan, so a candidate that lives in the inventory counts twice.
func (l *Ledger) CanContribute(it *item.Item) bool {
	if l == nil || l.bundle == nil || it == nil {
		return false
	}
	idx := l.indexFor(it)
	if idx < 0 {
		return false
	}
	req := l.bundle.Ingredients[idx]
	count := 0
	if ingredient.Matches(req, it) {
		count += it.Stack
	}
	if l.player != nil {
		count += l.player.Inventory().CountMatching(func(s *item.Item) bool {
			return ingredient.Matches(req, s)
		})
	}
	if idx == l.target && l.pending != nil {
		count += l.pending.Stack
	}
	return count >= req.Stack
}

// Contribute moves as much of src as the requirement still needs into the ledger.
// src.Stack shrinks by what was taken; the returned leftover is nil once src is
// used up. finalized reports that the requirement was met and deposited.
func (l *Ledger) Contribute(src *item.Item) (leftover *item.Item, finalized bool) {
	if l == nil || l.bundle == nil || src == nil || src.Stack <= 0 {
		return src, false
	}
	if !l.bundle.DepositsAllowed || l.bundle.IsComplete() {
		return src, false
	}
	if !l.Active() {
		idx := l.bundle.RequirementIndexFor(src)
		if idx < 0 || !l.CanContribute(src) {
			return src, false
		}
		l.target = idx
		l.pending = src.WithStack(0)
		metrics.RecordPartial("started")
		l.logger.Debug().Int("slot", idx).Str("item", src.ID).Msg("partial contribution started")
	} else if !ingredient.Matches(l.bundle.Ingredients[l.target], src) {
		return src, false
	}

	req := l.bundle.Ingredients[l.target]
	take := min(src.Stack, req.Stack-l.pending.Stack)
	if take <= 0 {
		return src, false
	}
	l.contributors = append(l.contributors, src.WithStack(take))
	l.pending.Stack += take
	src.Stack -= take
	l.present.PlaySound(present.SoundStep)

	if l.pending.Stack >= req.Stack {
		finalized = l.finalize()
	}
	if src.Stack <= 0 {
		return nil, finalized
	}
	return src, finalized
}

func (l *Ledger) finalize() bool {
	slot := l.target
	if !l.bundle.CanAccept(l.pending, slot) {
		l.logger.Warn().Int("slot", slot).Msg("slot refused completed contribution, returning items")
		l.Withdraw(false)
		return false
	}
	if rest := l.bundle.Deposit(l.pending, slot); rest != nil {
		world.Rescue(l.player, rest)
	}
	l.reset()
	metrics.RecordPartial("finalized")
	l.logger.Info().Int("slot", slot).Msg("partial contribution finalized")
	l.bundle.CheckCompletion()
	return true
}

// Withdraw cancels the pending contribution and gives every contributed stack back:
// to the cursor when toHand is set and the cursor was empty, otherwise to the
// inventory. Anything that does not fit is dropped as debris.
func (l *Ledger) Withdraw(toHand bool) int {
	if !l.Active() {
		return 0
	}
	useHand := toHand && l.player != nil && l.player.Held() == nil
	dropped := 0
	for _, c := range l.contributors {
		if useHand {
			dropped += world.ReturnToHand(l.player, c)
			continue
		}
		dropped += world.Rescue(l.player, c)
	}
	units := l.pending.Stack
	l.reset()
	metrics.RecordPartial("withdrawn")
	l.logger.Info().Int("units", units).Int("dropped", dropped).Bool("to_hand", useHand).Msg("partial contribution withdrawn")
	if dropped > 0 {
		l.present.ShowMessage(present.MsgItemsDropped, dropped)
	}
	return dropped
}

// TakeOneOut moves a single unit from the oldest contributor to the cursor.
func (l *Ledger) TakeOneOut() bool {
	if !l.Active() || len(l.contributors) == 0 {
		return false
	}
	oldest := l.contributors[0]
	one := oldest.WithStack(1)
	oldest.Stack--
	l.pending.Stack--
	if oldest.Stack <= 0 {
		l.contributors = l.contributors[1:]
	}

	held := l.player.Held()
	switch {
	case held == nil:
		l.player.SetHeld(one)
	case held.CanStackWith(one) && held.Stack < held.MaximumStackSize():
		held.Stack++
	default:
		world.Rescue(l.player, one)
	}
	l.present.PlaySound(present.SoundDwop)

	if l.pending.Stack <= 0 || len(l.contributors) == 0 {
		l.reset()
		metrics.RecordPartial("emptied")
	}
	return true
}

func (l *Ledger) reset() {
	l.pending = nil
	l.contributors = nil
	l.target = -1
}
