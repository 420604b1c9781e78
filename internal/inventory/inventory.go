package inventory

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/bundle-forge/internal/item"
)

const DefaultCapacity = 36

// Inventory is a fixed number of ordered slots, each empty or holding one stack.
type Inventory struct {
	slots []*item.Item
}

func New(capacity int) *Inventory {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Inventory{slots: make([]*item.Item, capacity)}
}

// From builds an inventory of the given capacity pre-filled with items in order.
func From(capacity int, items ...*item.Item) *Inventory {
	inv := New(max(capacity, len(items)))
	copy(inv.slots, items)
	return inv
}

func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.slots)
}

func (inv *Inventory) Get(i int) *item.Item {
	if inv == nil || i < 0 || i >= len(inv.slots) {
		return nil
	}
	return inv.slots[i]
}

// Set stores it at slot i and returns what was there before.
func (inv *Inventory) Set(i int, it *item.Item) *item.Item {
	if inv == nil || i < 0 || i >= len(inv.slots) {
		return it
	}
	prev := inv.slots[i]
	if it != nil && it.Stack <= 0 {
		it = nil
	}
	inv.slots[i] = it
	return prev
}

// Items returns the slot slice; nil entries are empty slots.
func (inv *Inventory) Items() []*item.Item {
	if inv == nil {
		return nil
	}
	return append([]*item.Item(nil), inv.slots...)
}

// EmptySlots counts unoccupied slots.
func (inv *Inventory) EmptySlots() int {
	if inv == nil {
		return 0
	}
	n := 0
	for _, s := range inv.slots {
		if s == nil {
			n++
		}
	}
	return n
}

// Add merges it into compatible stacks, then the first empty slot. it.Stack is
// reduced by what was placed; the returned leftover is nil when everything fit.
func (inv *Inventory) Add(it *item.Item) *item.Item {
	if inv == nil {
		return it
	}
	if it == nil || it.Stack <= 0 {
		return nil
	}
	for _, s := range inv.slots {
		if s == nil || !s.CanStackWith(it) {
			continue
		}
		it.Stack = s.AddToStack(it)
		if it.Stack <= 0 {
			return nil
		}
	}
	for i, s := range inv.slots {
		if s != nil {
			continue
		}
		inv.slots[i] = it
		return nil
	}
	return it
}

// HasRoomFor reports whether Add would place every unit of it.
func (inv *Inventory) HasRoomFor(it *item.Item) bool {
	if inv == nil {
		return false
	}
	if it == nil || it.Stack <= 0 {
		return true
	}
	remaining := it.Stack
	for _, s := range inv.slots {
		if s == nil {
			return true
		}
		if s.CanStackWith(it) {
			remaining -= max(0, s.MaximumStackSize()-s.Stack)
			if remaining <= 0 {
				return true
			}
		}
	}
	return false
}

// CountMatching sums stacks accepted by pred.
func (inv *Inventory) CountMatching(pred func(*item.Item) bool) int {
	if inv == nil || pred == nil {
		return 0
	}
	total := 0
	for _, s := range inv.slots {
		if s == nil || !pred(s) {
			continue
		}
		total += max(0, s.Stack)
	}
	return total
}

func (inv *Inventory) CountID(id string) int {
	return inv.CountMatching(func(it *item.Item) bool { return it.HasID(id) })
}

// Consume removes qty units of id across stacks, first slot first. Nothing is
// removed unless the full quantity is available.
func (inv *Inventory) Consume(id string, qty int) bool {
	if inv == nil || strings.TrimSpace(id) == "" {
		return false
	}
	if qty <= 0 {
		return true
	}
	if inv.CountID(id) < qty {
		return false
	}
	remaining := qty
	for i, s := range inv.slots {
		if remaining <= 0 {
			break
		}
		if s == nil || !s.HasID(id) {
			continue
		}
		take := min(s.Stack, remaining)
		s.Stack -= take
		remaining -= take
		if s.Stack <= 0 {
			inv.slots[i] = nil
		}
	}
	return remaining <= 0
}

// Highlight evaluates pred for every occupied slot; empty slots are false.
func (inv *Inventory) Highlight(pred func(*item.Item) bool) []bool {
	if inv == nil {
		return nil
	}
	out := make([]bool, len(inv.slots))
	if pred == nil {
		return out
	}
	for i, s := range inv.slots {
		out[i] = s != nil && pred(s)
	}
	return out
}

// TotalUnits counts every unit across all stacks.
func (inv *Inventory) TotalUnits() int {
	return inv.CountMatching(func(*item.Item) bool { return true })
}

// Summary lists occupied slots as index:label for logs.
func (inv *Inventory) Summary() string {
	if inv == nil {
		return "inventory unavailable"
	}
	parts := make([]string, 0, len(inv.slots))
	for i, s := range inv.slots {
		if s == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:%s", i, s))
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, ", ")
}
