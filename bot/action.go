package bot

import "strings"

// ActionKind enumerates the closed inbound action vocabulary.
type ActionKind int

const (
	ActionStart ActionKind = iota
	ActionMenu
	ActionCancel
	ActionOrder
	ActionAllOrders
	ActionChange
	ActionAddItem    // payload: menu item name
	ActionRemoveItem // payload: order item name
)

// Action is an inbound user action, decoded once at the transport boundary
// and never re-parsed downstream.
type Action struct {
	Kind ActionKind
	Item string
}

// ParseCallback decodes Telegram callback data into an Action. Item payloads
// keep everything after the prefix, so names containing underscores survive
// intact.
func ParseCallback(data string) (Action, bool) {
	switch data {
	case "menu":
		return Action{Kind: ActionMenu}, true
	case "cancel":
		return Action{Kind: ActionCancel}, true
	case "order":
		return Action{Kind: ActionOrder}, true
	case "allorders":
		return Action{Kind: ActionAllOrders}, true
	case "change":
		return Action{Kind: ActionChange}, true
	}
	if item, ok := strings.CutPrefix(data, "item_"); ok && item != "" {
		return Action{Kind: ActionAddItem, Item: item}, true
	}
	if item, ok := strings.CutPrefix(data, "approvechange_"); ok && item != "" {
		return Action{Kind: ActionRemoveItem, Item: item}, true
	}
	return Action{}, false
}
