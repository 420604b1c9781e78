package present

import "fmt"

// Message keys shown to the player.
const (
	MsgNoRoom          = "menu.no_room"
	MsgNotEnoughMoney  = "menu.not_enough_money"
	MsgNotEnoughShards = "forge.not_enough_shards"
	MsgInvalidRecipe   = "craft.invalid_recipe"
	MsgNotDyeable      = "tailoring.not_dyeable"
	MsgUnforgeBlocked  = "forge.unforge_blocked"
	MsgUnforged        = "forge.unforged"
	MsgBundleComplete  = "bundle.complete"
	MsgAreaComplete    = "bundle.area_complete"
	MsgMissingTrade    = "shop.missing_trade_item"
	MsgOutOfStock      = "shop.out_of_stock"
	MsgCannotSell      = "shop.cannot_sell"
	MsgItemsDropped    = "menu.items_dropped"
	MsgBundleLocked    = "bundle.deposits_locked"
)

var messages = map[string]string{
	MsgNoRoom:          "Inventory full",
	MsgNotEnoughMoney:  "You don't have enough money (need %dg)",
	MsgNotEnoughShards: "Not enough Cinder Shards (need %d)",
	MsgInvalidRecipe:   "Those items can't be combined",
	MsgNotDyeable:      "%s can't be dyed",
	MsgUnforgeBlocked:  "Clear the right slot before unforging",
	MsgUnforged:        "Unforged: refunded %d Cinder Shards",
	MsgBundleComplete:  "%s Bundle complete!",
	MsgAreaComplete:    "The %s is complete!",
	MsgMissingTrade:    "You need %d %s",
	MsgOutOfStock:      "Out of stock",
	MsgCannotSell:      "%s can't be sold here",
	MsgItemsDropped:    "%d item(s) dropped to the ground",
	MsgBundleLocked:    "This bundle isn't accepting donations",
}

// Text renders a message key with its arguments. Unknown keys render as the key.
func Text(key string, args ...any) string {
	format, ok := messages[key]
	if !ok {
		if len(args) == 0 {
			return key
		}
		return fmt.Sprint(append([]any{key + ": "}, args...)...)
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
