package bot

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/0levin/shawerma-bot/models"
	"github.com/0levin/shawerma-bot/services"

	"github.com/rs/zerolog"
)

// Button is one labeled action offered to the user.
type Button struct {
	Label string
	Data  string
}

// Prompt is the outbound reply: text (simple HTML emphasis only) plus the
// next valid set of actions, one button per row.
type Prompt struct {
	Text    string
	Buttons []Button
}

// Controller drives the menu → cart → order → edit conversation. It owns no
// transport: every inbound Action maps to exactly one outbound Prompt, with
// all effects going through the injected stores.
type Controller struct {
	menu     []models.MenuItem
	sessions *services.SessionStore
	orders   services.OrderStore
	randInt  func(n int) int
	logger   zerolog.Logger
}

// NewController wires the state machine to its collaborators. randInt picks
// greeting/farewell lines; pass nil for math/rand, or a fixed func in tests.
func NewController(menu []models.MenuItem, sessions *services.SessionStore, orders services.OrderStore, randInt func(int) int, logger zerolog.Logger) *Controller {
	if randInt == nil {
		randInt = rand.Intn
	}
	return &Controller{
		menu:     menu,
		sessions: sessions,
		orders:   orders,
		randInt:  randInt,
		logger:   logger,
	}
}

// Handle runs one inbound action through the state machine and returns the
// reply to send. displayName is used by start only; afterwards the name
// recorded in the session is authoritative. Any action arriving without a
// session resolves to a prompt to send /start first.
func (c *Controller) Handle(userKey int64, displayName string, a Action) Prompt {
	if a.Kind == ActionStart {
		return c.handleStart(userKey, displayName)
	}

	name, ok := c.sessions.DisplayName(userKey)
	if !ok {
		return Prompt{Text: textPressStart}
	}

	switch a.Kind {
	case ActionMenu:
		return c.handleMenu()
	case ActionCancel:
		return c.handleCancel(userKey, name)
	case ActionAddItem:
		return c.handleAddItem(userKey, a.Item)
	case ActionOrder:
		return c.handleOrder(userKey, name)
	case ActionAllOrders:
		return c.handleAllOrders(name)
	case ActionChange:
		return c.handleChange(name)
	case ActionRemoveItem:
		return c.handleRemoveItem(name, a.Item)
	}
	return Prompt{Text: textPressStart}
}

func (c *Controller) handleStart(userKey int64, displayName string) Prompt {
	c.sessions.Start(userKey, displayName)
	c.logger.Info().Int64("user", userKey).Str("name", displayName).Msg("session started")

	greeting := greetings[c.randInt(len(greetings))]
	return Prompt{
		Text: fmt.Sprintf("%s, <b>%s</b>. Выберите позиции из меню.", greeting, displayName),
		Buttons: []Button{
			{Label: labelChoose, Data: "menu"},
			{Label: labelCancel, Data: "cancel"},
		},
	}
}

func (c *Controller) handleMenu() Prompt {
	return Prompt{
		Text:    textChooseFromMenu,
		Buttons: c.menuButtons(Button{Label: labelCancel, Data: "cancel"}),
	}
}

func (c *Controller) handleCancel(userKey int64, name string) Prompt {
	c.sessions.ClearCart(userKey)

	farewell := farewells[c.randInt(len(farewells))]
	return Prompt{
		Text:    fmt.Sprintf("%s, <b>%s</b>.", farewell, name),
		Buttons: []Button{{Label: labelChoose, Data: "menu"}},
	}
}

func (c *Controller) handleAddItem(userKey int64, item string) Prompt {
	if !c.sessions.AddItem(userKey, item) {
		return Prompt{Text: textPressStart}
	}

	cart := c.sessions.Cart(userKey)
	return Prompt{
		Text: fmt.Sprintf("Ваш заказ:\n<b>%s</b>\n\nЧто-то еще?", strings.Join(cart, ", ")),
		Buttons: c.menuButtons(
			Button{Label: labelCancel, Data: "cancel"},
			Button{Label: labelMakeOrder, Data: "order"},
		),
	}
}

func (c *Controller) handleOrder(userKey int64, name string) Prompt {
	cart := c.sessions.Cart(userKey)
	if len(cart) == 0 {
		return Prompt{Text: textEmptyCart}
	}

	if err := c.orders.Append(models.Order{User: name, Items: cart}); err != nil {
		// Write failures are logged, not retried; the user still gets the
		// confirmation, matching the availability-over-correctness policy.
		c.logger.Error().Err(err).Str("user", name).Msg("persist order")
	}
	c.sessions.ClearCart(userKey)

	return Prompt{
		Text: fmt.Sprintf("Ваш заказ принят. 🙂 Состав заказа: <b>%s</b>", strings.Join(cart, ", ")),
		Buttons: []Button{
			{Label: labelChange, Data: "change"},
			{Label: labelAllOrders, Data: "allorders"},
		},
	}
}

func (c *Controller) handleAllOrders(name string) Prompt {
	orders := c.orders.LoadAll()

	ordersText := textNoOrdersYet
	if len(orders) > 0 {
		lines := make([]string, len(orders))
		for i, o := range orders {
			lines[i] = fmt.Sprintf("<b>%s</b>: %s", o.User, strings.Join(o.Items, ", "))
		}
		ordersText = strings.Join(lines, "\n")
	}

	var totals []string
	for _, tc := range c.orders.AggregateCounts() {
		totals = append(totals, fmt.Sprintf("<b>%s</b>: %d", tc.Name, tc.Count))
	}

	hasOwn := false
	for _, o := range orders {
		if o.User == name {
			hasOwn = true
			break
		}
	}
	button := Button{Label: labelMenu, Data: "menu"}
	if hasOwn {
		button = Button{Label: labelChange, Data: "change"}
	}

	return Prompt{
		Text: fmt.Sprintf("<b>Заказы:</b>\n\n%s\n_\n\n<b>Итог:</b>\n\n%s",
			ordersText, strings.Join(totals, "\n")),
		Buttons: []Button{button},
	}
}

func (c *Controller) handleChange(name string) Prompt {
	o, ok := c.orders.FindFirstByUser(name)
	if !ok || len(o.Items) == 0 {
		return Prompt{Text: textNoActiveOrder}
	}

	// One button per distinct item; duplicates are removed one press at a time.
	var buttons []Button
	seen := make(map[string]bool)
	for _, it := range o.Items {
		if seen[it] {
			continue
		}
		seen[it] = true
		buttons = append(buttons, Button{Label: it, Data: "approvechange_" + it})
	}
	buttons = append(buttons, Button{Label: labelCancel, Data: "allorders"})

	return Prompt{Text: textChooseRemoval, Buttons: buttons}
}

func (c *Controller) handleRemoveItem(name, item string) Prompt {
	outcome := c.orders.RemoveItem(name, item)
	if outcome == services.OrderNotFound {
		return Prompt{Text: textNoActiveOrder}
	}

	buttons := []Button{{Label: labelAllOrders, Data: "allorders"}}
	if outcome == services.Removed || outcome == services.ItemNotFound {
		// The order still has items, so editing can continue.
		buttons = append(buttons, Button{Label: labelChange, Data: "change"})
	}
	return Prompt{
		Text:    fmt.Sprintf("Позиция <b>%s</b> удалена.", item),
		Buttons: buttons,
	}
}

// menuButtons renders the catalog one button per row with price labels, plus
// any extra rows appended.
func (c *Controller) menuButtons(extra ...Button) []Button {
	buttons := make([]Button, 0, len(c.menu)+len(extra))
	for _, item := range c.menu {
		buttons = append(buttons, Button{
			Label: fmt.Sprintf("%s - %d ₽", item.Name, item.Price),
			Data:  "item_" + item.Name,
		})
	}
	return append(buttons, extra...)
}
