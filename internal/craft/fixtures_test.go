package craft

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/bundle-forge/internal/inventory"
	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

func testRegistry(t *testing.T) *item.Registry {
	t.Helper()
	r := item.NewRegistry()
	defs := []item.Definition{
		{ID: ShardID, Name: "Cinder Shard", Price: 50},
		{ID: "(O)64", Name: "Ruby", Category: -2, Price: 250},
		{ID: "(O)70", Name: "Jade", Category: -2, Price: 200},
		{ID: DiamondID, Name: "Diamond", Category: -2, Price: 750},
		{ID: PrismaticShardID, Name: "Prismatic Shard", Category: -2, Price: 2000},
		{ID: GalaxySoulID, Name: "Galaxy Soul", Price: 5000},
		{ID: "(O)24", Name: "Parsnip", Category: -75, Price: 35},
		{ID: "(W)0", Name: "Rusty Sword", Kind: item.KindWeapon, WeaponType: 3},
		{ID: "(W)1", Name: "Silver Saber", Kind: item.KindWeapon, WeaponType: 3},
		{ID: "(W)16", Name: "Carving Knife", Kind: item.KindWeapon, WeaponType: 1},
		{ID: "(W)4", Name: "Galaxy Sword", Kind: item.KindWeapon, WeaponType: 3},
		{ID: "(W)62", Name: "Infinity Blade", Kind: item.KindWeapon, WeaponType: 3},
		{ID: "(T)IridiumPickaxe", Name: "Iridium Pickaxe", Kind: item.KindTool, ToolClass: "pickaxe"},
		{ID: "(T)Scythe", Name: "Scythe", Kind: item.KindTool, ToolClass: "scythe"},
		{ID: "(O)516", Name: "Small Glow Ring", Kind: item.KindRing, Price: 100},
		{ID: "(O)529", Name: "Amethyst Ring", Kind: item.KindRing, Price: 200},
		{ID: "(O)428", Name: "Cloth", Category: -26, Price: 470},
		{ID: "(O)766", Name: "Slime", Category: -28, Price: 5, Tags: []string{"color_green"}},
		{ID: "(C)1000", Name: "Shirt", Kind: item.KindClothing, Dyeable: true},
		{ID: "(C)1001", Name: "Sailor Shirt", Kind: item.KindClothing},
		{ID: "(C)1002", Name: "Slime Shirt", Kind: item.KindClothing, Dyeable: true},
		{ID: "(B)504", Name: "Sneakers", Kind: item.KindBoots},
		{ID: "(B)505", Name: "Rubber Boots", Kind: item.KindBoots},
	}
	for _, def := range defs {
		require.NoError(t, r.Register(def))
	}
	return r
}

// newPlayer returns a player whose inventory holds items and capacity-len(items)
// empty slots.
func newPlayer(capacity int, items ...*item.Item) *world.State {
	return world.NewState(inventory.From(capacity, items...), 0)
}

func forgeLevels(it *item.Item, names ...string) *item.Item {
	for _, n := range names {
		it.AddForgeLevel(n)
	}
	return it
}
