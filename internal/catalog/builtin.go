package catalog

import (
	"github.com/appengine-ltd/bundle-forge/internal/craft"
	"github.com/appengine-ltd/bundle-forge/internal/item"
)

func builtinItems() []item.Definition {
	return []item.Definition{
		// crops and forage
		{ID: "(O)16", Name: "Wild Horseradish", Category: -81, Price: 50, Edible: true},
		{ID: "(O)18", Name: "Daffodil", Category: -81, Price: 30, Edible: true},
		{ID: "(O)20", Name: "Leek", Category: -81, Price: 60, Edible: true},
		{ID: "(O)22", Name: "Dandelion", Category: -81, Price: 40, Edible: true},
		{ID: "(O)24", Name: "Parsnip", Category: -75, Price: 35, Edible: true},
		{ID: "(O)188", Name: "Green Bean", Category: -75, Price: 40, Edible: true},
		{ID: "(O)190", Name: "Cauliflower", Category: -75, Price: 175, Edible: true},
		{ID: "(O)192", Name: "Potato", Category: -75, Price: 80, Edible: true},
		{ID: "(O)398", Name: "Grape", Category: -79, Price: 80, Edible: true},
		{ID: "(O)400", Name: "Strawberry", Category: -79, Price: 120, Edible: true},
		{ID: "(O)613", Name: "Apple", Category: -79, Price: 100, Edible: true},
		{ID: "(O)344", Name: "Jelly", Category: -26, Price: 160, Edible: true},
		{ID: "(O)201", Name: "Complete Breakfast", Category: -7, Price: 350, Edible: true},
		{ID: "(O)128", Name: "Pufferfish", Category: -4, Price: 200, Edible: true},
		{ID: "(O)145", Name: "Sunfish", Category: -4, Price: 30, Edible: true},
		{ID: "(O)136", Name: "Largemouth Bass", Category: -4, Price: 100, Edible: true},

		// seeds
		{ID: "(O)472", Name: "Parsnip Seeds", Category: -74, Price: 10},
		{ID: "(O)473", Name: "Bean Starter", Category: -74, Price: 30},
		{ID: "(O)474", Name: "Cauliflower Seeds", Category: -74, Price: 40},
		{ID: "(O)475", Name: "Potato Seeds", Category: -74, Price: 25},
		{ID: "(O)465", Name: "Speed-Gro", Category: -19, Price: 20},

		// minerals and forge materials
		{ID: "(O)60", Name: "Emerald", Category: -2, Price: 250},
		{ID: "(O)62", Name: "Aquamarine", Category: -2, Price: 180},
		{ID: "(O)64", Name: "Ruby", Category: -2, Price: 250},
		{ID: "(O)66", Name: "Amethyst", Category: -2, Price: 100},
		{ID: "(O)68", Name: "Topaz", Category: -2, Price: 80},
		{ID: "(O)70", Name: "Jade", Category: -2, Price: 200},
		{ID: craft.DiamondID, Name: "Diamond", Category: -2, Price: 750},
		{ID: craft.PrismaticShardID, Name: "Prismatic Shard", Category: -2, Price: 2000},
		{ID: craft.GalaxySoulID, Name: "Galaxy Soul", Price: 5000, NoTrash: true},
		{ID: craft.ShardID, Name: "Cinder Shard", Category: -15, Price: 50},
		{ID: "(O)334", Name: "Copper Bar", Category: -15, Price: 60},
		{ID: "(O)335", Name: "Iron Bar", Category: -15, Price: 120},
		{ID: "(O)336", Name: "Gold Bar", Category: -15, Price: 250},
		{ID: "(O)388", Name: "Wood", Category: -16, Price: 2},
		{ID: "(O)390", Name: "Stone", Category: -16, Price: 2},
		{ID: "(O)220", Name: "Chocolate Cake", Category: -7, Price: 200, Edible: true},

		// tailoring inputs
		{ID: "(O)428", Name: "Cloth", Category: -26, Price: 470},
		{ID: "(O)766", Name: "Slime", Category: -28, Price: 5, Tags: []string{"color_green"}},
		{ID: "(O)382", Name: "Coal", Category: -15, Price: 15, Tags: []string{"color_black"}},
		{ID: "(O)421", Name: "Sunflower", Category: -80, Price: 80, Edible: true, Tags: []string{"color_yellow"}},

		// weapons
		{ID: "(W)0", Name: "Rusty Sword", Kind: item.KindWeapon, Price: 50, WeaponType: 3},
		{ID: "(W)1", Name: "Silver Saber", Kind: item.KindWeapon, Price: 250, WeaponType: 3},
		{ID: "(W)16", Name: "Carving Knife", Kind: item.KindWeapon, Price: 100, WeaponType: 1},
		{ID: "(W)4", Name: "Galaxy Sword", Kind: item.KindWeapon, Price: 1500, WeaponType: 3},
		{ID: "(W)23", Name: "Galaxy Dagger", Kind: item.KindWeapon, Price: 1500, WeaponType: 1},
		{ID: "(W)29", Name: "Galaxy Hammer", Kind: item.KindWeapon, Price: 1500, WeaponType: 2},
		{ID: "(W)62", Name: "Infinity Blade", Kind: item.KindWeapon, Price: 3000, WeaponType: 3},
		{ID: "(W)63", Name: "Infinity Gavel", Kind: item.KindWeapon, Price: 3000, WeaponType: 2},
		{ID: "(W)64", Name: "Infinity Dagger", Kind: item.KindWeapon, Price: 3000, WeaponType: 1},

		// tools
		{ID: "(T)CopperPickaxe", Name: "Copper Pickaxe", Kind: item.KindTool, Price: 2000, ToolClass: "pickaxe"},
		{ID: "(T)IridiumPickaxe", Name: "Iridium Pickaxe", Kind: item.KindTool, Price: 25000, ToolClass: "pickaxe"},
		{ID: "(T)IridiumAxe", Name: "Iridium Axe", Kind: item.KindTool, Price: 25000, ToolClass: "axe"},
		{ID: "(T)IridiumHoe", Name: "Iridium Hoe", Kind: item.KindTool, Price: 25000, ToolClass: "hoe"},
		{ID: "(T)IridiumWateringCan", Name: "Iridium Watering Can", Kind: item.KindTool, Price: 25000, ToolClass: "watering_can"},
		{ID: "(T)IridiumRod", Name: "Iridium Rod", Kind: item.KindTool, Price: 7500, ToolClass: "fishing_rod"},

		// rings
		{ID: "(O)516", Name: "Small Glow Ring", Kind: item.KindRing, Price: 100},
		{ID: "(O)517", Name: "Glow Ring", Kind: item.KindRing, Price: 200},
		{ID: "(O)529", Name: "Amethyst Ring", Kind: item.KindRing, Price: 200},
		{ID: "(O)531", Name: "Aquamarine Ring", Kind: item.KindRing, Price: 400},
		{ID: "(O)533", Name: "Jade Ring", Kind: item.KindRing, Price: 400},
		{ID: craft.CombinedRingID, Name: "Combined Ring", Kind: item.KindCombinedRing, Price: 100},

		// clothing
		{ID: "(C)1000", Name: "Shirt", Kind: item.KindClothing, Price: 50, Dyeable: true},
		{ID: "(C)1001", Name: "Sailor Shirt", Kind: item.KindClothing, Price: 50},
		{ID: "(C)1002", Name: "Slime Shirt", Kind: item.KindClothing, Price: 50, Dyeable: true},
		{ID: "(C)1003", Name: "Fancy Shirt", Kind: item.KindClothing, Price: 50},
		{ID: "(P)0", Name: "Farmer Pants", Kind: item.KindClothing, Price: 50, Dyeable: true},

		// boots
		{ID: "(B)504", Name: "Sneakers", Kind: item.KindBoots, Price: 500},
		{ID: "(B)505", Name: "Rubber Boots", Kind: item.KindBoots, Price: 500},
		{ID: "(B)506", Name: "Leather Boots", Kind: item.KindBoots, Price: 500},
		{ID: "(B)853", Name: "Cinderclown Shoes", Kind: item.KindBoots, Price: 1000},
	}
}

// Bundle records use the "Name/Reward/ingredients/color/slots" layout read by
// bundle.ParseDefinition.
func builtinBundles() map[string]string {
	return map[string]string{
		"Pantry/0":         "Spring Crops/O 465 20/24 1 0 188 1 0 190 1 0 192 1 0/0",
		"Pantry/1":         "Quality Crops/O 621 1/24 5 2 190 5 2 192 5 2/1/2",
		"Pantry/2":         "Artisan/O 613 1/344:398 1 0 344:400 1 0 344:613 1 0/6/2",
		"Crafts Room/3":    "Spring Foraging/O 495 30/16 1 0 18 1 0 20 1 0 22 1 0/0/3",
		"Crafts Room/4":    "Construction/BO 114 1/388 99 0 388 99 0 390 99 0 334 10 0/4",
		"Fish Tank/5":      "River Fish/O 685 30/145 1 0 136 1 0 -4 3 0/6/2",
		"Boiler Room/6":    "Blacksmith's/O 41 1/334 1 0 335 1 0 336 1 0/2",
		"Bulletin Board/7": "Chef's/O 221 3/201 1 0 128 1 0 -7 1 0/4",
		"Vault/23":         "2,500g/O 220 3/-1 2500 2500/4",
	}
}

func builtinRecipes() []craft.Recipe {
	return []craft.Recipe{
		{Name: "slime_shirt", FirstItemTags: []string{"item_cloth"}, SecondItemTags: []string{"item_slime"}, SpendRightItem: true, CraftedItemID: "(C)1002"},
		{Name: "fancy_shirt", FirstItemTags: []string{"item_cloth"}, SecondItemTags: []string{"category_-2"}, SpendRightItem: true, CraftedItemID: "(C)1003"},
		{Name: "sailor_shirt", FirstItemTags: []string{"item_cloth"}, SecondItemTags: []string{"category_-4"}, SpendRightItem: false, CraftedItemID: "(C)1001"},
		{Name: "farmer_pants", FirstItemTags: []string{"item_cloth"}, SecondItemTags: []string{"item_wood"}, SpendRightItem: true, CraftedItemID: "(P)0"},
		{Name: "shirt", FirstItemTags: []string{"item_cloth"}, SpendRightItem: true, CraftedItemID: "(C)1000"},
	}
}

func builtinShops() map[string][]ShopLine {
	return map[string][]ShopLine{
		"SeedShop": {
			{ItemID: "(O)472", Price: 20},
			{ItemID: "(O)473", Price: 60},
			{ItemID: "(O)474", Price: 80},
			{ItemID: "(O)475", Price: 50},
			{ItemID: "(O)465", Price: 100, Stock: 20},
			{ItemID: "(O)201", Price: 500, Stock: 1, IsRecipe: true},
		},
		"Blacksmith": {
			{ItemID: "(O)334", Price: 150},
			{ItemID: "(O)335", Price: 250},
			{ItemID: "(O)336", Price: 400},
			{ItemID: "(O)382", Price: 150},
		},
		"DesertTrader": {
			{ItemID: "(O)70", TradeItemID: "(O)64", TradeItemCount: 1, Stock: 5},
			{ItemID: "(B)853", TradeItemID: craft.ShardID, TradeItemCount: 50, Stock: 1},
			{ItemID: "(O)766", Price: 10, TradeItemID: "(O)390", TradeItemCount: 5},
		},
	}
}
