// Package craft implements the two-slot crafting stations: a shared timed
// transaction and the forge and tailoring rules that plug into it.
package craft

import (
	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// State is the validation result for the current pair of slot items.
type State int

const (
	MissingIngredients State = iota
	Valid
	InvalidRecipe
	MissingShards
	NotDyeable
)

func (s State) String() string {
	switch s {
	case MissingIngredients:
		return "missing_ingredients"
	case Valid:
		return "valid"
	case InvalidRecipe:
		return "invalid_recipe"
	case MissingShards:
		return "missing_shards"
	case NotDyeable:
		return "not_dyeable"
	default:
		return "unknown"
	}
}

// Evaluation describes what committing the current slots would produce.
// Preview is built from clones and is never one of the slot items.
type Evaluation struct {
	State   State
	Preview *item.Item
	Cost    int
	CostID  string
	Recipe  string
}

// Outcome is the result of a finished craft together with what is left in
// each slot afterwards.
type Outcome struct {
	Result *item.Item
	Left   *item.Item
	Right  *item.Item
}

// Station supplies the rules of one crafting station.
type Station interface {
	Name() string
	Accepts(side Side, it *item.Item) bool
	Evaluate(p world.Player, left, right *item.Item) Evaluation
	// Craft applies the recipe to the real slot items. It must not mutate
	// anything when it returns an error.
	Craft(p world.Player, left, right *item.Item) (Outcome, error)
	Sounds() (start, done string)
}

// Unforger is implemented by stations that can reverse their crafts.
type Unforger interface {
	// UnforgeRefund reports the refund for reversing left; ok is false when there
	// is nothing to reverse. refund is nil when nothing is paid back.
	UnforgeRefund(left *item.Item) (refund *item.Item, ok bool)
	Unforge(left *item.Item) (newLeft, newRight *item.Item)
}

// consumeOne removes a single unit from it, returning nil once it is used up.
func consumeOne(it *item.Item) *item.Item {
	if it == nil || it.Stack <= 1 {
		return nil
	}
	it.Stack--
	return it
}
