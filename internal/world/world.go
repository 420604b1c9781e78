// Package world holds the collaborators the menus mutate: the player (inventory,
// cursor, currency, ground debris) and the long-lived world state (bundle and area
// completion, multiplayer broadcasts, shop restock queue).
package world

import (
	"github.com/appengine-ltd/bundle-forge/internal/inventory"
	"github.com/appengine-ltd/bundle-forge/internal/item"
)

// Player is the state a menu session reads and writes on behalf of the local player.
type Player interface {
	Inventory() *inventory.Inventory
	// Held is the item attached to the cursor, if any.
	Held() *item.Item
	SetHeld(it *item.Item)
	Equipped() []*item.Item

	Money() int
	Spend(amount int) bool
	Earn(amount int)

	// DropDebris places it on the ground at the player's position.
	DropDebris(it *item.Item)

	LearnRecipe(name string)
	KnowsRecipe(name string) bool
}

// Sink receives world-state updates. Every call is fire-and-forget.
type Sink interface {
	SaveBundleFlags(bundleIndex int, flags []bool)
	MarkBundleComplete(bundleIndex int)
	MarkAreaComplete(area string)
	RequestRewardCutscene(area string)
	Broadcast(event string, fields map[string]any)
	QueueRestock(shop string, it *item.Item)
}

// Rescue moves it into the player's inventory, dropping whatever does not fit as
// debris. Returns the number of units that hit the ground.
func Rescue(p Player, it *item.Item) int {
	if p == nil || it == nil || it.Stack <= 0 {
		return 0
	}
	left := p.Inventory().Add(it)
	if left == nil {
		return 0
	}
	dropped := left.Stack
	p.DropDebris(left)
	return dropped
}

// ReturnToHand puts it on the cursor when the cursor is empty or holds a compatible
// stack; the remainder is rescued into the inventory. Returns units dropped.
func ReturnToHand(p Player, it *item.Item) int {
	if p == nil || it == nil || it.Stack <= 0 {
		return 0
	}
	held := p.Held()
	if held == nil {
		p.SetHeld(it)
		return 0
	}
	if held.CanStackWith(it) {
		it.Stack = held.AddToStack(it)
		if it.Stack <= 0 {
			return 0
		}
	}
	return Rescue(p, it)
}

// RescueHeld empties the cursor into the inventory or onto the ground and returns
// the units dropped.
func RescueHeld(p Player) int {
	if p == nil {
		return 0
	}
	held := p.Held()
	if held == nil {
		return 0
	}
	p.SetHeld(nil)
	return Rescue(p, held)
}
