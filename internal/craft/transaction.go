package craft

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/appengine-ltd/bundle-forge/internal/ingredient"
	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/logger"
	"github.com/appengine-ltd/bundle-forge/internal/metrics"
	"github.com/appengine-ltd/bundle-forge/internal/present"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

// Transaction is one open crafting station: two ingredient slots, a validation
// state and a countdown that runs between Commit and the craft landing.
// While the countdown runs the slots are locked. Finished results go to the
// player's cursor.
type Transaction struct {
	id       string
	station  Station
	player   world.Player
	duration time.Duration

	left, right *item.Item
	eval        Evaluation
	countdown   time.Duration
	closed      bool

	highlight ingredient.HighlightCache
	present   present.Sink
	logger    zerolog.Logger
}

func New(station Station, p world.Player, duration time.Duration, opts ...Option) *Transaction {
	o := buildOptions(opts)
	id := uuid.NewString()
	t := &Transaction{
		id:       id,
		station:  station,
		player:   p,
		duration: duration,
		present:  o.present,
		logger:   logger.WithSession(o.logger, "craft", id).With().Str("station", station.Name()).Logger(),
	}
	t.revalidate()
	return t
}

func (t *Transaction) ID() string               { return t.id }
func (t *Transaction) Station() Station         { return t.station }
func (t *Transaction) State() State             { return t.eval.State }
func (t *Transaction) Evaluation() Evaluation   { return t.eval }
func (t *Transaction) Preview() *item.Item      { return t.eval.Preview }
func (t *Transaction) Countdown() time.Duration { return t.countdown }
func (t *Transaction) Locked() bool             { return t.countdown > 0 }
func (t *Transaction) Closed() bool             { return t.closed }

func (t *Transaction) Slot(side Side) *item.Item {
	if side == Left {
		return t.left
	}
	return t.right
}

// SetSlot swaps it into the slot and returns what was there. Writes are refused
// while the countdown runs, after Close, or when the station does not take it.
func (t *Transaction) SetSlot(side Side, it *item.Item) (*item.Item, bool) {
	if t.closed || t.Locked() {
		return it, false
	}
	if it != nil && !t.station.Accepts(side, it) {
		t.present.PlaySound(present.SoundCancel)
		return it, false
	}
	prev := t.Slot(side)
	if side == Left {
		t.left = it
	} else {
		t.right = it
	}
	t.revalidate()
	t.highlight.Invalidate()
	if it != nil {
		t.present.PlaySound(present.SoundSmallSelect)
	}
	return prev, true
}

// PlaceHeld swaps the cursor item with the slot.
func (t *Transaction) PlaceHeld(side Side) bool {
	if t.player == nil {
		return false
	}
	prev, ok := t.SetSlot(side, t.player.Held())
	if !ok {
		return false
	}
	t.player.SetHeld(prev)
	return true
}

// PlaceFromInventory swaps an inventory stack with the slot.
func (t *Transaction) PlaceFromInventory(slot int, side Side) bool {
	if t.player == nil {
		return false
	}
	inv := t.player.Inventory()
	it := inv.Get(slot)
	if it == nil {
		return false
	}
	prev, ok := t.SetSlot(side, it)
	if !ok {
		return false
	}
	inv.Set(slot, prev)
	return true
}

// Validate recomputes the state for the current slots.
func (t *Transaction) Validate() State {
	if !t.Locked() {
		t.revalidate()
	}
	return t.eval.State
}

func (t *Transaction) revalidate() {
	if t.left == nil || t.right == nil {
		t.eval = Evaluation{State: MissingIngredients}
		return
	}
	t.eval = t.station.Evaluate(t.player, t.left, t.right)
}

// Commit locks the slots and starts the countdown. It refuses without touching
// anything unless the pair is valid, the result has somewhere to go and the
// player can pay.
func (t *Transaction) Commit() bool {
	if t.closed || t.Locked() {
		return false
	}
	t.revalidate()
	if !t.checkReady() {
		metrics.RecordCraft(t.station.Name(), "rejected")
		return false
	}
	t.countdown = t.duration
	if t.countdown <= 0 {
		t.countdown = time.Millisecond
	}
	start, _ := t.station.Sounds()
	t.present.PlaySound(start)
	t.present.SpawnEffect(t.station.Name()+"_start", map[string]any{"recipe": t.eval.Recipe})
	metrics.RecordCraft(t.station.Name(), "committed")
	t.logger.Info().
		Str("left", t.left.ID).
		Str("right", t.right.ID).
		Str("recipe", t.eval.Recipe).
		Int("cost", t.eval.Cost).
		Dur("countdown", t.countdown).
		Msg("craft committed")
	return true
}

// checkReady reports (and voices) why the current evaluation cannot be crafted.
func (t *Transaction) checkReady() bool {
	switch t.eval.State {
	case Valid:
	case MissingShards:
		t.refuse(present.MsgNotEnoughShards, t.eval.Cost)
		return false
	case NotDyeable:
		t.refuse(present.MsgNotDyeable, t.left.Name)
		return false
	case InvalidRecipe:
		t.refuse(present.MsgInvalidRecipe)
		return false
	default:
		t.present.PlaySound(present.SoundCancel)
		return false
	}
	if !t.hasRoomFor(t.eval.Preview) {
		t.refuse(present.MsgNoRoom)
		return false
	}
	if !t.canPay() {
		t.refuse(present.MsgNotEnoughShards, t.eval.Cost)
		return false
	}
	return true
}

func (t *Transaction) refuse(key string, args ...any) {
	t.present.PlaySound(present.SoundCancel)
	t.present.ShowMessage(key, args...)
}

func (t *Transaction) canPay() bool {
	if t.eval.Cost <= 0 || t.eval.CostID == "" {
		return true
	}
	return t.player != nil && t.player.Inventory().CountID(t.eval.CostID) >= t.eval.Cost
}

// hasRoomFor reports whether result fits on the cursor or, failing that, in the
// inventory.
func (t *Transaction) hasRoomFor(result *item.Item) bool {
	if result == nil {
		return true
	}
	if t.player == nil {
		return false
	}
	held := t.player.Held()
	if held == nil {
		return true
	}
	rest := result.Stack
	if held.CanStackWith(result) {
		rest -= max(0, held.MaximumStackSize()-held.Stack)
		if rest <= 0 {
			return true
		}
	}
	return t.player.Inventory().HasRoomFor(result.WithStack(rest))
}

// Tick advances the countdown. It returns true on the frame the craft lands.
func (t *Transaction) Tick(elapsed time.Duration) bool {
	if !t.Locked() || elapsed <= 0 {
		return false
	}
	t.countdown -= elapsed
	if t.countdown > 0 {
		return false
	}
	t.countdown = 0
	return t.complete()
}

func (t *Transaction) complete() bool {
	name := t.station.Name()
	t.revalidate()
	switch {
	case t.eval.State == MissingShards || (t.eval.State == Valid && !t.canPay()):
		t.abort("shards gone", present.MsgNotEnoughShards, t.eval.Cost)
		return false
	case t.eval.State != Valid:
		t.abort("recipe no longer valid", present.MsgInvalidRecipe)
		return false
	case !t.hasRoomFor(t.eval.Preview):
		t.abort("no room for result", present.MsgNoRoom)
		return false
	}
	out, err := t.station.Craft(t.player, t.left, t.right)
	if err == nil && out.Result == nil {
		err = errNoResult
	}
	if err != nil {
		t.logger.Error().Err(err).Msg("craft failed")
		t.abort("craft failed", present.MsgInvalidRecipe)
		return false
	}
	if t.eval.Cost > 0 && t.eval.CostID != "" {
		t.player.Inventory().Consume(t.eval.CostID, t.eval.Cost)
	}
	t.left, t.right = out.Left, out.Right
	dropped := world.ReturnToHand(t.player, out.Result)
	if dropped > 0 {
		t.logger.Warn().Int("dropped", dropped).Msg("craft result overflowed to debris")
	}

	_, done := t.station.Sounds()
	t.present.PlaySound(done)
	t.present.SpawnEffect(name+"_done", map[string]any{"result": out.Result.ID})
	metrics.RecordCraft(name, "completed")
	t.logger.Info().Str("result", out.Result.ID).Int("stack", out.Result.Stack).Msg("craft completed")

	t.revalidate()
	t.highlight.Invalidate()
	return true
}

// abort drops a committed craft at completion time. Nothing has been consumed.
func (t *Transaction) abort(reason, key string, args ...any) {
	t.countdown = 0
	t.refuse(key, args...)
	metrics.RecordCraft(t.station.Name(), "aborted")
	t.logger.Warn().Str("reason", reason).Str("state", t.eval.State.String()).Msg("craft aborted, ingredients kept")
}

// Unforge reverses the forge state of the left item and refunds shards. It is
// refused while the right slot holds anything.
func (t *Transaction) Unforge() bool {
	u, ok := t.station.(Unforger)
	if !ok || t.closed || t.Locked() || t.left == nil {
		return false
	}
	if t.right != nil {
		t.refuse(present.MsgUnforgeBlocked)
		return false
	}
	refund, ok := u.UnforgeRefund(t.left)
	if !ok {
		t.present.PlaySound(present.SoundCancel)
		return false
	}
	if refund != nil && (t.player == nil || !t.player.Inventory().HasRoomFor(refund)) {
		t.refuse(present.MsgNoRoom)
		return false
	}

	t.left, t.right = u.Unforge(t.left)
	units := 0
	if refund != nil {
		units = refund.Stack
		world.Rescue(t.player, refund)
	}
	t.present.PlaySound(present.SoundUnforge)
	t.present.ShowMessage(present.MsgUnforged, units)
	metrics.RecordCraft(t.station.Name(), "unforged")
	t.logger.Info().Int("refund", units).Msg("item unforged")
	t.revalidate()
	t.highlight.Invalidate()
	return true
}

// Highlight reports whether it could be placed in either slot.
func (t *Transaction) Highlight(it *item.Item) bool {
	if t.closed {
		return false
	}
	return t.highlight.Eligible(it, func(c *item.Item) bool {
		return t.station.Accepts(Left, c) || t.station.Accepts(Right, c)
	})
}

func (t *Transaction) HighlightInventory() []bool {
	if t.player == nil {
		return nil
	}
	return t.player.Inventory().Highlight(t.Highlight)
}

// Close returns both slot items and the cursor item to the player. It is refused
// while a craft is running.
func (t *Transaction) Close() bool {
	if t.closed {
		return true
	}
	if t.Locked() {
		t.present.PlaySound(present.SoundCancel)
		return false
	}
	t.shutdown("close")
	return true
}

// EmergencyShutdown closes unconditionally. A running craft is abandoned with
// its ingredients intact; everything goes to the inventory or the ground.
func (t *Transaction) EmergencyShutdown() {
	if t.closed {
		return
	}
	if t.Locked() {
		t.countdown = 0
		metrics.RecordCraft(t.station.Name(), "aborted")
	}
	t.shutdown("emergency")
}

func (t *Transaction) shutdown(reason string) {
	t.closed = true
	if t.player == nil {
		return
	}
	units := 0
	for _, it := range []*item.Item{t.left, t.right, t.player.Held()} {
		if it != nil {
			units += it.Stack
		}
	}
	before := t.player.Inventory().TotalUnits()
	dropped := world.Rescue(t.player, t.left)
	dropped += world.Rescue(t.player, t.right)
	dropped += world.RescueHeld(t.player)
	t.left, t.right = nil, nil
	t.eval = Evaluation{State: MissingIngredients}
	metrics.RecordRescue("inventory", t.player.Inventory().TotalUnits()-before)
	metrics.RecordRescue("debris", dropped)

	ev := t.logger.Info()
	if dropped > 0 {
		ev = t.logger.Warn()
	}
	ev.Str("reason", reason).Int("units", units).Int("dropped", dropped).Msg("station closed")
}
