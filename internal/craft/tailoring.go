package craft

import (
	"fmt"

	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/present"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

// Recipe is one tag-matched tailoring entry. Every tag in FirstItemTags must be
// on the left item and every tag in SecondItemTags on the right; "!tag" requires
// the tag to be absent. Empty tag lists match anything.
type Recipe struct {
	Name           string   `json:"name"`
	FirstItemTags  []string `json:"first_item_tags,omitempty"`
	SecondItemTags []string `json:"second_item_tags,omitempty"`
	SpendRightItem bool     `json:"spend_right_item"`
	CraftedItemID  string   `json:"crafted_item_id"`
}

func (r Recipe) Matches(left, right *item.Item) bool {
	if left == nil || right == nil {
		return false
	}
	return hasTags(left, r.FirstItemTags) && hasTags(right, r.SecondItemTags)
}

func hasTags(it *item.Item, tags []string) bool {
	for _, tag := range tags {
		if !it.HasContextTag(tag) {
			return false
		}
	}
	return true
}

// Tailoring sews cloth into clothing, dyes clothes and swaps boot looks.
type Tailoring struct {
	items   *item.Registry
	recipes []Recipe
}

func NewTailoring(items *item.Registry, recipes []Recipe) *Tailoring {
	return &Tailoring{items: items, recipes: append([]Recipe(nil), recipes...)}
}

func (t *Tailoring) Name() string { return "tailoring" }

func (t *Tailoring) Sounds() (string, string) {
	return present.SoundSewing, present.SoundSewingDone
}

func (t *Tailoring) Recipes() []Recipe {
	return append([]Recipe(nil), t.recipes...)
}

// RecipeFor returns the first table entry matching the pair. Table order decides
// between overlapping recipes.
func (t *Tailoring) RecipeFor(left, right *item.Item) (Recipe, bool) {
	for _, r := range t.recipes {
		if r.Matches(left, right) {
			return r, true
		}
	}
	return Recipe{}, false
}

func (t *Tailoring) Accepts(side Side, it *item.Item) bool {
	if it == nil {
		return false
	}
	if it.IsBoots() {
		return true
	}
	if side == Left {
		if it.IsClothing() {
			return true
		}
		for _, r := range t.recipes {
			if hasTags(it, r.FirstItemTags) {
				return true
			}
		}
		return false
	}
	if _, ok := it.DyeColor(); ok {
		return true
	}
	for _, r := range t.recipes {
		if hasTags(it, r.SecondItemTags) {
			return true
		}
	}
	return false
}

type tailorKind int

const (
	tailorNone tailorKind = iota
	tailorBoots
	tailorDye
	tailorRecipe
	tailorNotDyeable
)

func (t *Tailoring) classify(left, right *item.Item) (tailorKind, Recipe) {
	color, isDye := right.DyeColor()
	switch {
	case left.IsBoots() && right.IsBoots():
		if item.SameID(left.ID, right.ID) || item.SameID(left.AppliedBootsID, right.ID) {
			return tailorNone, Recipe{}
		}
		return tailorBoots, Recipe{}
	case left.IsClothing() && left.Dyeable && isDye && color != left.Color:
		return tailorDye, Recipe{}
	}
	if r, ok := t.RecipeFor(left, right); ok {
		return tailorRecipe, r
	}
	if left.IsClothing() && !left.Dyeable && isDye {
		return tailorNotDyeable, Recipe{}
	}
	return tailorNone, Recipe{}
}

func (t *Tailoring) Evaluate(_ world.Player, left, right *item.Item) Evaluation {
	if left == nil || right == nil {
		return Evaluation{State: MissingIngredients}
	}
	kind, recipe := t.classify(left, right)
	switch kind {
	case tailorBoots:
		preview := left.Clone()
		preview.AppliedBootsID = right.ID
		return Evaluation{State: Valid, Preview: preview, Recipe: "boots"}
	case tailorDye:
		preview := left.Clone()
		preview.Color, _ = right.DyeColor()
		return Evaluation{State: Valid, Preview: preview, Recipe: "dye"}
	case tailorRecipe:
		preview, err := t.sew(recipe, right)
		if err != nil {
			return Evaluation{State: InvalidRecipe, Recipe: recipe.Name}
		}
		return Evaluation{State: Valid, Preview: preview, Recipe: recipe.Name}
	case tailorNotDyeable:
		return Evaluation{State: NotDyeable}
	}
	return Evaluation{State: InvalidRecipe}
}

// sew creates the recipe's item; dyeable results take the right item's color.
func (t *Tailoring) sew(r Recipe, right *item.Item) (*item.Item, error) {
	out, err := t.items.Create(r.CraftedItemID, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: recipe %q: %v", ErrUnknownResult, r.Name, err)
	}
	if out.IsClothing() && out.Dyeable {
		if color, ok := right.DyeColor(); ok {
			out.Color = color
		}
	}
	return out, nil
}

// Craft applies the pair. Boots and dye jobs change the left item in place and
// hand it back as the result; table recipes use up one left unit.
func (t *Tailoring) Craft(_ world.Player, left, right *item.Item) (Outcome, error) {
	kind, recipe := t.classify(left, right)
	switch kind {
	case tailorBoots:
		left.AppliedBootsID = right.ID
		return Outcome{Result: left, Right: consumeOne(right)}, nil
	case tailorDye:
		left.Color, _ = right.DyeColor()
		return Outcome{Result: left, Right: consumeOne(right)}, nil
	case tailorRecipe:
		out, err := t.sew(recipe, right)
		if err != nil {
			return Outcome{}, err
		}
		rest := right
		if recipe.SpendRightItem {
			rest = consumeOne(right)
		}
		return Outcome{Result: out, Left: consumeOne(left), Right: rest}, nil
	}
	return Outcome{}, fmt.Errorf("tailor %s with %s: no recipe", left, right)
}
