package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/bundle-forge/internal/craft"
	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/shop"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	require.Len(t, c.Bundles, 9)
	assert.Empty(t, c.Skipped)
	for i := 1; i < len(c.Bundles); i++ {
		assert.Less(t, c.Bundles[i-1].Index, c.Bundles[i].Index)
	}

	vault := c.Bundles[len(c.Bundles)-1]
	assert.Equal(t, "Vault", vault.Area)
	require.Len(t, vault.Ingredients, 1)
	assert.True(t, vault.Ingredients[0].IsMoney())
	assert.Equal(t, 2500, vault.Ingredients[0].Stack)

	artisan := c.Bundles[2]
	assert.Equal(t, "398", artisan.Ingredients[0].PreservesID)
	assert.Equal(t, 2, artisan.NumberOfSlots)

	ring, err := c.Items.Create(craft.CombinedRingID, 1)
	require.NoError(t, err)
	assert.Equal(t, item.KindCombinedRing, ring.Kind)

	assert.Equal(t, []string{"Blacksmith", "DesertTrader", "SeedShop"}, c.ShopNames())
}

func TestStock(t *testing.T) {
	c := Default()

	entries, err := c.Stock("SeedShop")
	require.NoError(t, err)
	require.Len(t, entries, 6)

	assert.Equal(t, "Parsnip Seeds", entries[0].Item.Name)
	assert.True(t, entries[0].Infinite())
	assert.Equal(t, 20, entries[4].Stock)
	assert.True(t, entries[5].IsRecipe)

	trader, err := c.Stock("DesertTrader")
	require.NoError(t, err)
	assert.Equal(t, 0, trader[0].Price)
	assert.Equal(t, "Ruby", trader[0].TradeItemName)
	assert.Equal(t, 10, trader[2].Price)

	_, err = c.Stock("Saloon")
	assert.ErrorIs(t, err, ErrUnknownShop)
}

func TestStockIsFreshPerCall(t *testing.T) {
	c := Default()
	a, err := c.Stock("SeedShop")
	require.NoError(t, err)
	a[4].Stock = 1
	a[0].Item.Stack = 50

	b, err := c.Stock("SeedShop")
	require.NoError(t, err)
	assert.Equal(t, 20, b[4].Stock)
	assert.Equal(t, 1, b[0].Item.Stack)
}

func TestStockDefaultsPriceFromItem(t *testing.T) {
	c := Default()
	c.Shops["Test"] = []ShopLine{{ItemID: "24"}}

	entries, err := c.Stock("Test")
	require.NoError(t, err)
	assert.Equal(t, 70, entries[0].Price)
	assert.Equal(t, shop.Infinite, entries[0].Stock)
}

const sampleCatalog = `{
  "format_version": 1,
  "items": [
    {"id": "24", "name": "Parsnip", "category": -75, "price": 35, "edible": true},
    {"id": "428", "name": "Cloth", "category": -26, "price": 470},
    {"id": "(C)1000", "name": "Shirt", "kind": "clothing", "dyeable": true},
    {"id": "(W)0", "name": "Rusty Sword", "kind": "weapon", "weapon_type": 3}
  ],
  "bundles": {
    "Pantry/0": "Spring Crops/O 465 20/24 1 0/0",
    "Pantry/1": "Broken/O 465 20/24 1",
    "Pantry/2": "Typo/O 465 20/25 1 0/0"
  },
  "tailoring": [
    {"name": "shirt", "first_item_tags": ["item_cloth"], "crafted_item_id": "(C)1000"},
    {"name": "shirt_keep", "first_item_tags": ["item_cloth"], "spend_right_item": false, "crafted_item_id": "(C)1000"}
  ],
  "shops": {
    "SeedShop": [{"item": "24", "price": 50, "stock": 3}]
  }
}`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog), zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, c.Bundles, 1)
	assert.Equal(t, "Spring Crops", c.Bundles[0].Name)
	assert.Equal(t, []string{"Pantry/1", "Pantry/2"}, c.Skipped)

	sword, ok := c.Items.Lookup("(W)0")
	require.True(t, ok)
	assert.Equal(t, item.KindWeapon, sword.Kind)

	require.Len(t, c.Tailoring, 2)
	assert.True(t, c.Tailoring[0].SpendRightItem)
	assert.False(t, c.Tailoring[1].SpendRightItem)

	entries, err := c.Stock("SeedShop")
	require.NoError(t, err)
	assert.Equal(t, 3, entries[0].Stock)
}

func TestParseRejectsBadReferences(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "recipe result",
			json: `{"items":[{"id":"428","name":"Cloth"}],"tailoring":[{"name":"x","crafted_item_id":"(C)1001"}]}`,
			want: `tailoring recipe "x"`,
		},
		{
			name: "shop item suggests",
			json: `{"items":[{"id":"24","name":"Parsnip"}],"shops":{"S":[{"item":"(O)25"}]}}`,
			want: "did you mean",
		},
		{
			name: "trade item",
			json: `{"items":[{"id":"24","name":"Parsnip"}],"shops":{"S":[{"item":"24","trade_item":"zzz"}]}}`,
			want: "trade item",
		},
		{
			name: "duplicate item",
			json: `{"items":[{"id":"24","name":"Parsnip"},{"id":"(O)24","name":"Parsnip"}]}`,
			want: "(O)24",
		},
		{
			name: "unknown kind",
			json: `{"items":[{"id":"24","name":"Parsnip","kind":"hat"}]}`,
			want: "unknown item kind",
		},
		{
			name: "future version",
			json: `{"format_version":2}`,
			want: "newer than supported",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json), zerolog.Nop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("", zerolog.Nop())
	require.NoError(t, err)
	assert.NotEmpty(t, c.Bundles)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))
	c, err = Load(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, c.Bundles, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), zerolog.Nop())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
