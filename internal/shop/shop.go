// Package shop keeps the books for one open shop: purchases against a stock
// table, sales at the shop's sell percentage and the session's buy-back list.
package shop

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/appengine-ltd/bundle-forge/internal/config"
	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/logger"
	"github.com/appengine-ltd/bundle-forge/internal/metrics"
	"github.com/appengine-ltd/bundle-forge/internal/present"
	"github.com/appengine-ltd/bundle-forge/internal/random"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

// Infinite marks stock that never runs out.
const Infinite = math.MaxInt

// StockEntry is one line of the shop's stock table. Price is per unit;
// TradeItemCount trade items are also due per unit.
type StockEntry struct {
	Item           *item.Item `json:"item"`
	Price          int        `json:"price"`
	Stock          int        `json:"stock"`
	TradeItemID    string     `json:"trade_item_id,omitempty"`
	TradeItemName  string     `json:"trade_item_name,omitempty"`
	TradeItemCount int        `json:"trade_item_count,omitempty"`
	IsRecipe       bool       `json:"is_recipe,omitempty"`
	BuyBack        bool       `json:"-"`
}

func (e *StockEntry) Infinite() bool { return e.Stock == Infinite }

var qualityMultipliers = map[int]decimal.Decimal{
	item.QualityNormal:  decimal.NewFromInt(1),
	item.QualitySilver:  decimal.RequireFromString("1.25"),
	item.QualityGold:    decimal.RequireFromString("1.5"),
	item.QualityIridium: decimal.NewFromInt(2),
}

// SalePrice is the per-unit price of it before the shop's percentage.
func SalePrice(it *item.Item) int {
	if it == nil || it.Price <= 0 {
		return 0
	}
	mult, ok := qualityMultipliers[it.Quality]
	if !ok {
		mult = decimal.NewFromInt(1)
	}
	return int(decimal.NewFromInt(int64(it.Price)).Mul(mult).Floor().IntPart())
}

type Ledger struct {
	id     string
	name   string
	player world.Player
	sink   world.Sink

	stock   []*StockEntry
	buyBack []*StockEntry

	safety         time.Duration
	sellPercentage decimal.Decimal
	restockChance  float64
	seed           int64
	sales          int
	closed         bool

	buys    func(*item.Item) bool
	present present.Sink
	logger  zerolog.Logger
}

// New opens a shop session. The safety timer starts running immediately.
func New(name string, stock []*StockEntry, p world.Player, sink world.Sink, cfg config.ShopConfig, opts ...Option) *Ledger {
	o := buildOptions(opts)
	id := uuid.NewString()
	return &Ledger{
		id:             id,
		name:           name,
		player:         p,
		sink:           sink,
		stock:          slices.Clone(stock),
		safety:         cfg.SafetyTimer,
		sellPercentage: cfg.SellPercentage,
		restockChance:  cfg.RestockChance,
		seed:           o.seed,
		buys:           o.buys,
		present:        o.present,
		logger:         logger.WithSession(o.logger, "shop", id).With().Str("shop", name).Logger(),
	}
}

func (l *Ledger) ID() string   { return l.id }
func (l *Ledger) Name() string { return l.name }
func (l *Ledger) Closed() bool { return l.closed }

// Stock returns the regular stock table.
func (l *Ledger) Stock() []*StockEntry { return slices.Clone(l.stock) }

// BuyBack returns what the player sold this session, still up for repurchase.
func (l *Ledger) BuyBack() []*StockEntry { return slices.Clone(l.buyBack) }

// Entries lists everything purchasable: stock first, then buy-back.
func (l *Ledger) Entries() []*StockEntry {
	return append(l.Stock(), l.buyBack...)
}

func (l *Ledger) SafetyActive() bool { return l.safety > 0 }

// Tick runs down the safety timer.
func (l *Ledger) Tick(elapsed time.Duration) {
	if l.safety > 0 && elapsed > 0 {
		l.safety = max(0, l.safety-elapsed)
	}
}

func (l *Ledger) blocked() bool {
	return l.closed || l.SafetyActive() || l.player == nil
}

func (l *Ledger) refuse(kind, key string, args ...any) bool {
	l.present.PlaySound(present.SoundCancel)
	if key != "" {
		l.present.ShowMessage(key, args...)
	}
	metrics.RecordShop(kind, "rejected")
	return false
}

// Purchase buys qty units of entry, capped at one stack of the item. Nothing
// changes unless every check passes.
func (l *Ledger) Purchase(entry *StockEntry, qty int) bool {
	if l.blocked() || entry == nil || entry.Item == nil || qty < 1 {
		return false
	}
	if limit := entry.Item.MaximumStackSize(); !entry.IsRecipe && qty > limit {
		qty = limit
	}
	if !entry.Infinite() && entry.Stock < qty {
		return l.refuse("purchase", present.MsgOutOfStock)
	}
	cost := entry.Price * qty
	if l.player.Money() < cost {
		return l.refuse("purchase", present.MsgNotEnoughMoney, cost)
	}
	inv := l.player.Inventory()
	trade := entry.TradeItemCount * qty
	if entry.TradeItemID != "" && trade > 0 && inv.CountID(entry.TradeItemID) < trade {
		name := entry.TradeItemName
		if name == "" {
			name = entry.TradeItemID
		}
		return l.refuse("purchase", present.MsgMissingTrade, trade, name)
	}

	var bought *item.Item
	if entry.IsRecipe {
		if l.player.KnowsRecipe(entry.Item.Name) {
			return l.refuse("purchase", "")
		}
	} else {
		bought = entry.Item.WithStack(qty)
		if !inv.HasRoomFor(bought) {
			return l.refuse("purchase", present.MsgNoRoom)
		}
	}

	if !l.player.Spend(cost) {
		return l.refuse("purchase", present.MsgNotEnoughMoney, cost)
	}
	if entry.TradeItemID != "" && trade > 0 {
		inv.Consume(entry.TradeItemID, trade)
	}
	if entry.IsRecipe {
		l.player.LearnRecipe(entry.Item.Name)
	} else {
		world.Rescue(l.player, bought)
	}
	if !entry.Infinite() {
		entry.Stock -= qty
		if entry.Stock <= 0 {
			l.removeEntry(entry)
		}
	}

	if l.sink != nil {
		l.sink.Broadcast("item_purchased", map[string]any{
			"shop":     l.name,
			"item":     entry.Item.ID,
			"quantity": qty,
			"price":    cost,
			"buy_back": entry.BuyBack,
		})
	}
	l.present.PlaySound(present.SoundPurchase)
	metrics.RecordShop("purchase", "ok")
	l.logger.Info().
		Str("item", entry.Item.ID).
		Int("quantity", qty).
		Int("cost", cost).
		Int("trade", trade).
		Bool("buy_back", entry.BuyBack).
		Msg("item purchased")
	return true
}

func (l *Ledger) removeEntry(entry *StockEntry) {
	drop := func(e *StockEntry) bool { return e == entry }
	l.stock = slices.DeleteFunc(l.stock, drop)
	l.buyBack = slices.DeleteFunc(l.buyBack, drop)
}

// Payout is what the shop pays for the whole stack.
func (l *Ledger) Payout(it *item.Item) int {
	if it == nil || it.Stack <= 0 {
		return 0
	}
	return l.unitPayout(it) * it.Stack
}

func (l *Ledger) unitPayout(it *item.Item) int {
	unit := decimal.NewFromInt(int64(SalePrice(it))).Mul(l.sellPercentage).Floor()
	return int(unit.IntPart())
}

// CanSell reports whether the shop would take it.
func (l *Ledger) CanSell(it *item.Item) bool {
	if it == nil || it.Stack <= 0 || !it.CanBeTrashed() || SalePrice(it) <= 0 {
		return false
	}
	return l.buys == nil || l.buys(it)
}

// Sell takes the whole of it, pays the player and lists it for buy-back. The
// caller hands over ownership of it.
func (l *Ledger) Sell(it *item.Item) (int, bool) {
	if l.blocked() || it == nil {
		return 0, false
	}
	if !l.CanSell(it) {
		l.refuse("sell", present.MsgCannotSell, it.Name)
		return 0, false
	}
	unit := l.unitPayout(it)
	payment := unit * it.Stack
	l.player.Earn(payment)
	l.addBuyBack(it, unit)
	l.sales++
	restocked := l.rollRestock(it)

	l.present.PlaySound(present.SoundCoin)
	l.present.SpawnEffect("sale", map[string]any{"item": it.ID, "payment": payment})
	if l.sink != nil {
		l.sink.Broadcast("item_sold", map[string]any{"shop": l.name, "item": it.ID, "quantity": it.Stack, "payment": payment})
	}
	metrics.RecordShop("sell", "ok")
	l.logger.Info().
		Str("item", it.ID).
		Int("quantity", it.Stack).
		Int("payment", payment).
		Bool("restock", restocked).
		Msg("item sold")
	return payment, true
}

// SellFromInventory sells the stack in an inventory slot.
func (l *Ledger) SellFromInventory(slot int) (int, bool) {
	if l.player == nil {
		return 0, false
	}
	inv := l.player.Inventory()
	it := inv.Get(slot)
	payment, ok := l.Sell(it)
	if ok {
		inv.Set(slot, nil)
	}
	return payment, ok
}

func (l *Ledger) addBuyBack(it *item.Item, unitPrice int) {
	for _, e := range l.buyBack {
		if e.Price == unitPrice && e.Item.Stackable() && e.Item.CanStackWith(it) {
			e.Stock += it.Stack
			return
		}
	}
	l.buyBack = append(l.buyBack, &StockEntry{
		Item:    it.WithStack(1),
		Price:   unitPrice,
		Stock:   it.Stack,
		BuyBack: true,
	})
	l.present.PlaySound(present.SoundBuyBackEntry)
}

// rollRestock gives edible objects a small chance to come back to the shelf.
func (l *Ledger) rollRestock(it *item.Item) bool {
	if !it.Edible || it.Kind != item.KindObject || l.sink == nil {
		return false
	}
	rng := random.For(l.seed, "restock:%s:%s:%d", l.name, it.ID, l.sales)
	if !random.Chance(rng, l.restockChance) {
		return false
	}
	l.sink.QueueRestock(l.name, it.GetOne())
	return true
}

// Close ends the session. Buy-back offers expire with it.
func (l *Ledger) Close() {
	if l.closed {
		return
	}
	l.closed = true
	expired := len(l.buyBack)
	l.buyBack = nil
	l.logger.Info().Int("buy_back_expired", expired).Int("sales", l.sales).Msg("shop closed")
}
