package craft

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/present"
	"github.com/appengine-ltd/bundle-forge/internal/random"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

const (
	ShardID          = "(O)848"
	GalaxySoulID     = "(O)896"
	PrismaticShardID = "(O)74"
	DiamondID        = "(O)72"
	CombinedRingID   = "(O)880"

	// MaxForgeLevels caps gem forging on a single weapon.
	MaxForgeLevels = 3

	galaxySoulsToInfinity = 3
	appearanceUnforgeCost = 10
)

// gemEnchantments maps forge gems to the enchantment they add, in lookup order.
var gemEnchantments = []struct {
	id   string
	name string
}{
	{"(O)60", "Emerald"},
	{"(O)62", "Aquamarine"},
	{"(O)64", "Ruby"},
	{"(O)66", "Amethyst"},
	{"(O)68", "Topaz"},
	{"(O)70", "Jade"},
}

// infinityUpgrades maps each galaxy weapon to what it becomes after enough souls.
var infinityUpgrades = map[string]string{
	"(W)4":  "(W)62",
	"(W)29": "(W)63",
	"(W)23": "(W)64",
}

var weaponEnchantments = []string{"Artful", "BugKiller", "Crusader", "Haymaker", "Vampiric"}

var toolEnchantments = []struct {
	name    string
	classes []string
}{
	{"Archaeologist", []string{"hoe"}},
	{"AutoHook", []string{"fishing_rod"}},
	{"Bottomless", []string{"watering_can"}},
	{"Efficient", []string{"axe", "pickaxe", "hoe", "watering_can"}},
	{"Generous", []string{"hoe"}},
	{"Master", []string{"fishing_rod"}},
	{"Powerful", []string{"axe", "pickaxe"}},
	{"Preserving", []string{"fishing_rod"}},
	{"Reaching", []string{"hoe", "watering_can"}},
	{"Shaving", []string{"axe"}},
	{"Swift", []string{"axe", "pickaxe", "hoe"}},
}

// GetForgeCost is the shard price of forging right into left.
func GetForgeCost(left, right *item.Item) int {
	switch {
	case right.HasID(GalaxySoulID):
		return 20
	case right.HasID(PrismaticShardID):
		return 20
	case right.HasID(DiamondID):
		return 10
	case left.IsWeapon() && right.IsWeapon():
		return 10
	case left.IsTool():
		return forgeCostAtLevel(left.TotalForgeLevels())
	case left.IsRing() && right.IsRing():
		return 20
	}
	return 1
}

func forgeCostAtLevel(level int) int {
	return 10 + level*5
}

// forgeRule is one entry of the forge recipe table. apply receives either the
// real slot items or clones for a preview; rng is nil for previews.
type forgeRule struct {
	name  string
	match func(left, right *item.Item) bool
	apply func(f *Forge, left, right *item.Item, rng *rand.Rand) (*item.Item, error)
}

// forgeRules is consulted in order; the first match wins.
var forgeRules = []forgeRule{
	{name: "gem", match: matchGem, apply: applyGem},
	{name: "diamond", match: matchDiamond, apply: applyDiamond},
	{name: "galaxy_soul", match: matchGalaxySoul, apply: applyGalaxySoul},
	{name: "prismatic", match: matchPrismatic, apply: applyPrismatic},
	{name: "appearance", match: matchAppearance, apply: applyAppearance},
	{name: "ring_combine", match: matchRings, apply: applyRings},
}

func gemFor(it *item.Item) string {
	for _, g := range gemEnchantments {
		if it.HasID(g.id) {
			return g.name
		}
	}
	return ""
}

func matchGem(left, right *item.Item) bool {
	return left.IsWeapon() && left.TotalForgeLevels() < MaxForgeLevels && gemFor(right) != ""
}

func applyGem(_ *Forge, left, right *item.Item, _ *rand.Rand) (*item.Item, error) {
	left.AddForgeLevel(gemFor(right))
	return left, nil
}

func matchDiamond(left, right *item.Item) bool {
	return left.IsWeapon() && left.TotalForgeLevels() < MaxForgeLevels && right.HasID(DiamondID)
}

// applyDiamond fills every remaining forge level with random gems.
func applyDiamond(_ *Forge, left, _ *item.Item, rng *rand.Rand) (*item.Item, error) {
	if rng == nil {
		return left, nil
	}
	for left.TotalForgeLevels() < MaxForgeLevels {
		g, _ := random.Pick(rng, gemEnchantments)
		left.AddForgeLevel(g.name)
	}
	return left, nil
}

func galaxySouls(it *item.Item) int {
	e, ok := it.Enchantment(item.GalaxySoul)
	if !ok {
		return 0
	}
	return e.Level
}

func setGalaxySouls(it *item.Item, n int) {
	kept := it.Enchantments[:0]
	for _, e := range it.Enchantments {
		if e.Name != item.GalaxySoul {
			kept = append(kept, e)
		}
	}
	if n > 0 {
		kept = append(kept, item.Enchantment{Name: item.GalaxySoul, Level: n})
	}
	if len(kept) == 0 {
		kept = nil
	}
	it.Enchantments = kept
}

func matchGalaxySoul(left, right *item.Item) bool {
	if !left.IsWeapon() || !right.HasID(GalaxySoulID) {
		return false
	}
	_, ok := infinityUpgrades[item.Qualify(left.ID)]
	return ok
}

func applyGalaxySoul(f *Forge, left, _ *item.Item, _ *rand.Rand) (*item.Item, error) {
	souls := galaxySouls(left) + 1
	if souls < galaxySoulsToInfinity {
		setGalaxySouls(left, souls)
		return left, nil
	}
	target := infinityUpgrades[item.Qualify(left.ID)]
	upgraded, err := f.items.Create(target, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownResult, err)
	}
	upgraded.Enchantments = slices.Clone(left.Enchantments)
	setGalaxySouls(upgraded, 0)
	upgraded.AppearanceID = left.AppearanceID
	upgraded.Quality = left.Quality
	return upgraded, nil
}

func prismaticChoices(it *item.Item) []string {
	var pool []string
	if it.IsWeapon() {
		pool = weaponEnchantments
	} else {
		for _, e := range toolEnchantments {
			if slices.Contains(e.classes, it.ToolClass) {
				pool = append(pool, e.name)
			}
		}
	}
	out := make([]string, 0, len(pool))
	for _, name := range pool {
		if _, has := it.Enchantment(name); !has {
			out = append(out, name)
		}
	}
	return out
}

func matchPrismatic(left, right *item.Item) bool {
	return left.IsTool() && right.HasID(PrismaticShardID) && len(prismaticChoices(left)) > 0
}

func applyPrismatic(_ *Forge, left, _ *item.Item, rng *rand.Rand) (*item.Item, error) {
	if rng == nil {
		return left, nil
	}
	name, ok := random.Pick(rng, prismaticChoices(left))
	if ok {
		left.SetEnchantment(item.Enchantment{Name: name, Level: 1})
	}
	return left, nil
}

func matchAppearance(left, right *item.Item) bool {
	return left.IsWeapon() && right.IsWeapon() &&
		left.WeaponType == right.WeaponType &&
		!item.SameID(left.ID, right.ID) &&
		!item.SameID(left.AppearanceID, right.ID)
}

func applyAppearance(_ *Forge, left, right *item.Item, _ *rand.Rand) (*item.Item, error) {
	left.AppearanceID = right.ID
	return left, nil
}

func matchRings(left, right *item.Item) bool {
	return left.Kind == item.KindRing && right.Kind == item.KindRing && !item.SameID(left.ID, right.ID)
}

func applyRings(_ *Forge, left, right *item.Item, _ *rand.Rand) (*item.Item, error) {
	return &item.Item{
		ID:            CombinedRingID,
		Name:          "Combined Ring",
		Kind:          item.KindCombinedRing,
		Stack:         1,
		Price:         (left.Price + right.Price) / 2,
		CombinedRings: []*item.Item{left, right.GetOne()},
	}, nil
}

// Forge merges gems, souls, shards, weapons and rings into tools and rings,
// paid for in cinder shards.
type Forge struct {
	items *item.Registry
	seed  int64
	rolls int
}

func NewForge(items *item.Registry, seed int64) *Forge {
	return &Forge{items: items, seed: seed}
}

func (f *Forge) Name() string { return "forge" }

func (f *Forge) Sounds() (string, string) {
	return present.SoundForgeStart, present.SoundForgeDone
}

func isForgeMaterial(it *item.Item) bool {
	return gemFor(it) != "" ||
		it.HasID(DiamondID) ||
		it.HasID(GalaxySoulID) ||
		it.HasID(PrismaticShardID)
}

func (f *Forge) Accepts(side Side, it *item.Item) bool {
	if it == nil {
		return false
	}
	if side == Left {
		return it.IsTool() || it.IsRing()
	}
	return it.IsWeapon() || it.Kind == item.KindRing || isForgeMaterial(it)
}

func ruleFor(left, right *item.Item) *forgeRule {
	for i := range forgeRules {
		if forgeRules[i].match(left, right) {
			return &forgeRules[i]
		}
	}
	return nil
}

func (f *Forge) Evaluate(p world.Player, left, right *item.Item) Evaluation {
	if left == nil || right == nil {
		return Evaluation{State: MissingIngredients}
	}
	rule := ruleFor(left, right)
	if rule == nil {
		return Evaluation{State: InvalidRecipe}
	}
	preview, err := rule.apply(f, left.Clone(), right.Clone(), nil)
	if err != nil {
		return Evaluation{State: InvalidRecipe, Recipe: rule.name}
	}
	ev := Evaluation{
		State:   Valid,
		Preview: preview,
		Cost:    GetForgeCost(left, right),
		CostID:  ShardID,
		Recipe:  rule.name,
	}
	if p == nil || p.Inventory().CountID(ShardID) < ev.Cost {
		ev.State = MissingShards
	}
	return ev
}

// Craft forges right into left. Left is always used up; right loses one unit.
func (f *Forge) Craft(_ world.Player, left, right *item.Item) (Outcome, error) {
	rule := ruleFor(left, right)
	if rule == nil {
		return Outcome{}, fmt.Errorf("forge %s with %s: no recipe", left, right)
	}
	f.rolls++
	rng := random.For(f.seed, "forge:%s:%s:%d", left.ID, right.ID, f.rolls)
	result, err := rule.apply(f, left, right, rng)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Result: result, Right: consumeOne(right)}, nil
}

// UnforgeRefund prices the reversal: every forge level at the cost it was bought
// for, every galaxy soul, plus a flat fee per appearance override; half of it
// comes back, truncated.
func (f *Forge) UnforgeRefund(left *item.Item) (*item.Item, bool) {
	if left == nil {
		return nil, false
	}
	if left.Kind == item.KindCombinedRing {
		return nil, len(left.CombinedRings) == 2
	}
	levels := left.TotalForgeLevels()
	souls := galaxySouls(left)
	if !left.HasForgeState() && souls == 0 {
		return nil, false
	}
	cost := 0
	for i := 0; i < levels; i++ {
		cost += forgeCostAtLevel(i)
	}
	cost += souls * GetForgeCost(left, &item.Item{ID: GalaxySoulID})
	if left.AppearanceID != "" {
		cost += appearanceUnforgeCost
	}
	refund := cost / 2
	if refund <= 0 {
		return nil, true
	}
	return f.shards(refund), true
}

// Unforge strips left back to its plain form. Combined rings come apart into
// the two slots.
func (f *Forge) Unforge(left *item.Item) (*item.Item, *item.Item) {
	if left.Kind == item.KindCombinedRing && len(left.CombinedRings) == 2 {
		return left.CombinedRings[0], left.CombinedRings[1]
	}
	left.StripForge()
	setGalaxySouls(left, 0)
	return left, nil
}

func (f *Forge) shards(n int) *item.Item {
	if it, err := f.items.Create(ShardID, n); err == nil && it.Stack == n {
		return it
	}
	return &item.Item{ID: ShardID, Name: "Cinder Shard", Stack: n, MaxStack: max(n, 999)}
}
