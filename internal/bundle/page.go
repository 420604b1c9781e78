package bundle

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/appengine-ltd/bundle-forge/internal/ingredient"
	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/logger"
	"github.com/appengine-ltd/bundle-forge/internal/metrics"
	"github.com/appengine-ltd/bundle-forge/internal/present"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

// Page is one open bundle-note session over an area. It routes donations either
// straight into a slot or through the partial contribution ledger, and hands every
// item it still holds back to the player when it closes.
type Page struct {
	id     string
	area   *Area
	player world.Player

	bundle    *Bundle
	ledger    *Ledger
	highlight ingredient.HighlightCache
	closed    bool

	opts    []Option
	present present.Sink
	logger  zerolog.Logger
}

func NewPage(area *Area, p world.Player, opts ...Option) *Page {
	o := buildOptions(opts)
	id := uuid.NewString()
	log := logger.WithSession(o.logger, "page", id)
	if area != nil {
		log = log.With().Str("area", area.Name).Logger()
	}
	pg := &Page{
		id:      id,
		area:    area,
		player:  p,
		present: o.present,
		logger:  log,
	}
	pg.opts = append(append([]Option(nil), opts...), WithLogger(log))
	return pg
}

func (pg *Page) ID() string { return pg.id }

func (pg *Page) Area() *Area { return pg.area }

func (pg *Page) Bundle() *Bundle { return pg.bundle }

func (pg *Page) Ledger() *Ledger { return pg.ledger }

func (pg *Page) Closed() bool { return pg.closed }

// Open switches to the bundle with the given index. A pending contribution on the
// previous bundle is returned to the inventory first.
func (pg *Page) Open(bundleIndex int) bool {
	if pg.closed || pg.area == nil {
		return false
	}
	b := pg.area.Bundle(bundleIndex)
	if b == nil {
		return false
	}
	if pg.ledger != nil {
		pg.ledger.Withdraw(false)
	}
	pg.bundle = b
	pg.ledger = NewLedger(b, pg.player, pg.opts...)
	pg.highlight.Invalidate()
	pg.logger.Debug().Int("bundle", bundleIndex).Msg("bundle opened")
	return true
}

// DonateFromInventory offers the stack in an inventory slot to the open bundle.
func (pg *Page) DonateFromInventory(slot int) bool {
	if pg.closed || pg.player == nil {
		return false
	}
	inv := pg.player.Inventory()
	it := inv.Get(slot)
	if it == nil {
		return false
	}
	left, ok := pg.donate(it)
	inv.Set(slot, left)
	return ok
}

// DonateHeld offers the cursor item to the open bundle.
func (pg *Page) DonateHeld() bool {
	if pg.closed || pg.player == nil {
		return false
	}
	it := pg.player.Held()
	if it == nil {
		return false
	}
	left, ok := pg.donate(it)
	pg.player.SetHeld(left)
	return ok
}

func (pg *Page) donate(it *item.Item) (*item.Item, bool) {
	b := pg.bundle
	if b == nil || b.IsComplete() {
		return it, false
	}
	defer pg.highlight.Invalidate()
	if !b.DepositsAllowed {
		pg.present.PlaySound(present.SoundCancel)
		pg.present.ShowMessage(present.MsgBundleLocked)
		return it, false
	}

	before := it.Stack
	if pg.ledger.Active() && ingredient.Matches(b.Ingredients[pg.ledger.Target()], it) {
		left, _ := pg.ledger.Contribute(it)
		if left == nil || left.Stack != before {
			return left, true
		}
		pg.present.PlaySound(present.SoundCancel)
		return it, false
	}

	idx := b.RequirementIndexFor(it)
	if idx < 0 {
		pg.present.PlaySound(present.SoundCancel)
		return it, false
	}
	if it.Stack >= b.Ingredients[idx].Stack {
		left := b.Deposit(it, idx)
		b.CheckCompletion()
		return left, true
	}
	if !pg.ledger.Active() && pg.ledger.CanContribute(it) {
		left, _ := pg.ledger.Contribute(it)
		return left, left == nil || left.Stack != before
	}
	pg.present.PlaySound(present.SoundCancel)
	return it, false
}

// WithdrawPartial returns a pending contribution to the cursor.
func (pg *Page) WithdrawPartial() bool {
	if pg.closed || !pg.ledger.Active() {
		return false
	}
	pg.ledger.Withdraw(true)
	pg.highlight.Invalidate()
	return true
}

// TakeOneFromPartial moves one unit of the pending contribution to the cursor.
func (pg *Page) TakeOneFromPartial() bool {
	if pg.closed || !pg.ledger.Active() {
		return false
	}
	ok := pg.ledger.TakeOneOut()
	pg.highlight.Invalidate()
	return ok
}

// Purchase completes the open money bundle.
func (pg *Page) Purchase() bool {
	if pg.closed || pg.bundle == nil {
		return false
	}
	ok := pg.bundle.Purchase(pg.player)
	pg.highlight.Invalidate()
	return ok
}

// Highlight reports whether it can go anywhere in the open bundle right now.
func (pg *Page) Highlight(it *item.Item) bool {
	if pg.closed || pg.bundle == nil {
		return false
	}
	return pg.highlight.Eligible(it, func(candidate *item.Item) bool {
		if pg.ledger.Active() {
			return ingredient.Matches(pg.bundle.Ingredients[pg.ledger.Target()], candidate)
		}
		return pg.bundle.RequirementIndexFor(candidate) >= 0
	})
}

// HighlightInventory marks eligible inventory slots.
func (pg *Page) HighlightInventory() []bool {
	if pg.player == nil {
		return nil
	}
	return pg.player.Inventory().Highlight(pg.Highlight)
}

// HighlightEquipped marks eligible equipped items.
func (pg *Page) HighlightEquipped() []bool {
	if pg.player == nil {
		return nil
	}
	eq := pg.player.Equipped()
	out := make([]bool, len(eq))
	for i, it := range eq {
		out[i] = it != nil && pg.Highlight(it)
	}
	return out
}

// Close returns the pending contribution and the cursor item to the player.
func (pg *Page) Close() {
	pg.shutdown("close")
}

// EmergencyShutdown is Close for forced exits. It never fails; whatever does not
// fit in the inventory is dropped at the player's feet.
func (pg *Page) EmergencyShutdown() {
	pg.shutdown("emergency")
}

func (pg *Page) shutdown(reason string) {
	if pg.closed {
		return
	}
	pg.closed = true
	if pg.player == nil {
		return
	}
	before := pg.player.Inventory().TotalUnits()
	dropped := 0
	held := 0
	if pg.ledger != nil {
		held += pg.ledger.PendingUnits()
		dropped += pg.ledger.Withdraw(false)
	}
	if h := pg.player.Held(); h != nil {
		held += h.Stack
	}
	dropped += world.RescueHeld(pg.player)
	stored := pg.player.Inventory().TotalUnits() - before
	metrics.RecordRescue("inventory", stored)
	metrics.RecordRescue("debris", dropped)

	ev := pg.logger.Info()
	if dropped > 0 {
		ev = pg.logger.Warn()
	}
	ev.Str("reason", reason).Int("units", held).Int("dropped", dropped).Msg("bundle page closed")
}
