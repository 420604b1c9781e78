// Package catalog holds the read-only game data the menus consult: item
// definitions, bundle records, tailoring recipes and shop stock tables.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/appengine-ltd/bundle-forge/internal/bundle"
	"github.com/appengine-ltd/bundle-forge/internal/craft"
	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/shop"
)

const formatVersion = 1

var ErrUnknownShop = errors.New("unknown shop")

// ShopLine is one stock table row as stored. A stock of zero or less never runs out.
type ShopLine struct {
	ItemID         string `json:"item"`
	Price          int    `json:"price,omitempty"`
	Stock          int    `json:"stock,omitempty"`
	TradeItemID    string `json:"trade_item,omitempty"`
	TradeItemCount int    `json:"trade_count,omitempty"`
	IsRecipe       bool   `json:"recipe,omitempty"`
}

type Catalog struct {
	Items     *item.Registry
	Bundles   []bundle.Definition
	Tailoring []craft.Recipe
	Shops     map[string][]ShopLine

	// Skipped lists bundle records that could not be read. Those bundles stay
	// locked instead of failing the whole catalog.
	Skipped []string
}

// recipeRecord defaults SpendRightItem to true when the field is absent.
type recipeRecord struct {
	craft.Recipe
	SpendRightItem *bool `json:"spend_right_item,omitempty"`
}

type library struct {
	FormatVersion int                   `json:"format_version"`
	Items         []item.Definition     `json:"items"`
	Bundles       map[string]string     `json:"bundles"`
	Tailoring     []recipeRecord        `json:"tailoring,omitempty"`
	Shops         map[string][]ShopLine `json:"shops,omitempty"`
}

// Load reads a catalog file. An empty path returns the built-in catalog.
func Load(path string, logger zerolog.Logger) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data, logger)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a JSON catalog and checks every item reference.
func Parse(data []byte, logger zerolog.Logger) (*Catalog, error) {
	var lib library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, err
	}
	if lib.FormatVersion > formatVersion {
		return nil, fmt.Errorf("format version %d is newer than supported %d", lib.FormatVersion, formatVersion)
	}
	recipes := make([]craft.Recipe, 0, len(lib.Tailoring))
	for _, rec := range lib.Tailoring {
		r := rec.Recipe
		r.SpendRightItem = rec.SpendRightItem == nil || *rec.SpendRightItem
		recipes = append(recipes, r)
	}
	return build(lib.Items, lib.Bundles, recipes, lib.Shops, logger)
}

func build(items []item.Definition, bundles map[string]string, recipes []craft.Recipe, shops map[string][]ShopLine, logger zerolog.Logger) (*Catalog, error) {
	c := &Catalog{
		Items:     item.NewRegistry(),
		Tailoring: recipes,
		Shops:     shops,
	}
	for _, def := range items {
		if err := c.Items.Register(def); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(bundles))
	for k := range bundles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		def, err := bundle.ParseDefinition(key, bundles[key])
		if err == nil {
			err = c.checkBundle(def)
		}
		if err != nil {
			logger.Warn().Err(err).Str("bundle", key).Msg("skipping malformed bundle")
			c.Skipped = append(c.Skipped, key)
			continue
		}
		c.Bundles = append(c.Bundles, def)
	}
	sort.SliceStable(c.Bundles, func(i, j int) bool { return c.Bundles[i].Index < c.Bundles[j].Index })

	if err := c.checkRecipes(); err != nil {
		return nil, err
	}
	if err := c.checkShops(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := build(builtinItems(), builtinBundles(), builtinRecipes(), builtinShops(), log.Logger)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

func (c *Catalog) known(id string) error {
	if _, ok := c.Items.Lookup(id); ok {
		return nil
	}
	_, err := c.Items.Create(id, 1)
	return err
}

func (c *Catalog) checkBundle(def bundle.Definition) error {
	for _, req := range def.Ingredients {
		if req.IsCategory() {
			continue
		}
		if err := c.known(req.ID); err != nil {
			return fmt.Errorf("bundle %q: %w", def.Name, err)
		}
		if req.PreservesID != "" {
			if err := c.known(req.PreservesID); err != nil {
				return fmt.Errorf("bundle %q: %w", def.Name, err)
			}
		}
	}
	return nil
}

func (c *Catalog) checkRecipes() error {
	for _, r := range c.Tailoring {
		if err := c.known(r.CraftedItemID); err != nil {
			return fmt.Errorf("tailoring recipe %q: %w", r.Name, err)
		}
	}
	return nil
}

func (c *Catalog) checkShops() error {
	for name, lines := range c.Shops {
		for _, line := range lines {
			if err := c.known(line.ItemID); err != nil {
				return fmt.Errorf("shop %q: %w", name, err)
			}
			if line.TradeItemID != "" {
				if err := c.known(line.TradeItemID); err != nil {
					return fmt.Errorf("shop %q trade item: %w", name, err)
				}
			}
		}
	}
	return nil
}

// ShopNames returns the shops in name order.
func (c *Catalog) ShopNames() []string {
	names := make([]string, 0, len(c.Shops))
	for name := range c.Shops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stock builds a fresh stock table for a shop session. Rows without a price sell
// at twice the item's base price.
func (c *Catalog) Stock(shopName string) ([]*shop.StockEntry, error) {
	lines, ok := c.Shops[shopName]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownShop, shopName)
	}
	entries := make([]*shop.StockEntry, 0, len(lines))
	for _, line := range lines {
		it, err := c.Items.Create(line.ItemID, 1)
		if err != nil {
			return nil, err
		}
		e := &shop.StockEntry{
			Item:           it,
			Price:          line.Price,
			Stock:          line.Stock,
			TradeItemID:    line.TradeItemID,
			TradeItemCount: line.TradeItemCount,
			IsRecipe:       line.IsRecipe,
		}
		if e.Price <= 0 && line.TradeItemID == "" {
			e.Price = it.Price * 2
		}
		if e.Stock <= 0 {
			e.Stock = shop.Infinite
		}
		if line.TradeItemID != "" {
			if def, ok := c.Items.Lookup(line.TradeItemID); ok {
				e.TradeItemName = def.Name
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
