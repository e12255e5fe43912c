package bot

import (
	"path/filepath"
	"testing"

	"github.com/0levin/shawerma-bot/models"
	"github.com/0levin/shawerma-bot/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMenu = []models.MenuItem{
	{Name: "Falafel", Price: 250},
	{Name: "Cola", Price: 90},
}

type fixture struct {
	controller *Controller
	sessions   *services.SessionStore
	orders     services.OrderStore
}

// newFixture builds a controller over a temp file store with a pinned random
// source, so greeting/farewell lines are deterministic.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	sessions := services.NewSessionStore()
	orders := services.NewFileStore(filepath.Join(t.TempDir(), "orders.json"), zerolog.Nop())
	randFirst := func(int) int { return 0 }
	return &fixture{
		controller: NewController(testMenu, sessions, orders, randFirst, zerolog.Nop()),
		sessions:   sessions,
		orders:     orders,
	}
}

func buttonData(p Prompt) []string {
	data := make([]string, len(p.Buttons))
	for i, b := range p.Buttons {
		data[i] = b.Data
	}
	return data
}

func TestStartGreeting(t *testing.T) {
	f := newFixture(t)

	p := f.controller.Handle(1, "Alice", Action{Kind: ActionStart})
	assert.Contains(t, p.Text, greetings[0])
	assert.Contains(t, p.Text, "<b>Alice</b>")
	assert.Equal(t, []string{"menu", "cancel"}, buttonData(p))
}

func TestSessionRequiredBeforeOtherActions(t *testing.T) {
	f := newFixture(t)

	for _, a := range []Action{
		{Kind: ActionMenu},
		{Kind: ActionCancel},
		{Kind: ActionOrder},
		{Kind: ActionAddItem, Item: "Falafel"},
	} {
		p := f.controller.Handle(42, "Ghost", a)
		assert.Equal(t, textPressStart, p.Text)
		assert.Empty(t, p.Buttons)
	}
}

func TestMenuListsCatalog(t *testing.T) {
	f := newFixture(t)
	f.controller.Handle(1, "Alice", Action{Kind: ActionStart})

	p := f.controller.Handle(1, "Alice", Action{Kind: ActionMenu})
	require.Len(t, p.Buttons, 3)
	assert.Equal(t, "Falafel - 250 ₽", p.Buttons[0].Label)
	assert.Equal(t, "item_Falafel", p.Buttons[0].Data)
	assert.Equal(t, "item_Cola", p.Buttons[1].Data)
	assert.Equal(t, "cancel", p.Buttons[2].Data)
}

func TestAliceOrderScenario(t *testing.T) {
	f := newFixture(t)

	f.controller.Handle(1, "Alice", Action{Kind: ActionStart})
	f.controller.Handle(1, "Alice", Action{Kind: ActionMenu})
	f.controller.Handle(1, "Alice", Action{Kind: ActionAddItem, Item: "Falafel"})
	p := f.controller.Handle(1, "Alice", Action{Kind: ActionAddItem, Item: "Cola"})
	assert.Contains(t, p.Text, "Falafel, Cola")

	p = f.controller.Handle(1, "Alice", Action{Kind: ActionOrder})
	assert.Contains(t, p.Text, "Falafel, Cola")
	assert.Equal(t, []string{"change", "allorders"}, buttonData(p))

	orders := f.orders.LoadAll()
	require.Len(t, orders, 1)
	assert.Equal(t, models.Order{User: "Alice", Items: []string{"Falafel", "Cola"}}, orders[0])
	assert.Empty(t, f.sessions.Cart(1), "cart must be cleared after submit")
}

func TestOrderConservesDuplicatesAndOrder(t *testing.T) {
	f := newFixture(t)
	f.controller.Handle(1, "Alice", Action{Kind: ActionStart})
	for _, item := range []string{"Falafel", "Cola", "Falafel"} {
		f.controller.Handle(1, "Alice", Action{Kind: ActionAddItem, Item: item})
	}

	f.controller.Handle(1, "Alice", Action{Kind: ActionOrder})

	orders := f.orders.LoadAll()
	require.Len(t, orders, 1)
	assert.Equal(t, []string{"Falafel", "Cola", "Falafel"}, orders[0].Items)
}

func TestEmptyCartGuard(t *testing.T) {
	f := newFixture(t)
	f.controller.Handle(1, "Alice", Action{Kind: ActionStart})

	p := f.controller.Handle(1, "Alice", Action{Kind: ActionOrder})
	assert.Equal(t, textEmptyCart, p.Text)
	assert.Empty(t, p.Buttons)
	assert.Empty(t, f.orders.LoadAll(), "empty-cart submit must not touch the store")
}

func TestCancelClearsCart(t *testing.T) {
	f := newFixture(t)
	f.controller.Handle(1, "Alice", Action{Kind: ActionStart})
	f.controller.Handle(1, "Alice", Action{Kind: ActionAddItem, Item: "Cola"})

	p := f.controller.Handle(1, "Alice", Action{Kind: ActionCancel})
	assert.Contains(t, p.Text, farewells[0])
	assert.Equal(t, []string{"menu"}, buttonData(p))
	assert.Empty(t, f.sessions.Cart(1))
}

func TestAllOrdersAggregation(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.orders.Append(models.Order{User: "A", Items: []string{"X", "Y"}}))
	require.NoError(t, f.orders.Append(models.Order{User: "B", Items: []string{"X"}}))

	f.controller.Handle(2, "B", Action{Kind: ActionStart})
	p := f.controller.Handle(2, "B", Action{Kind: ActionAllOrders})

	assert.Contains(t, p.Text, "<b>A</b>: X, Y")
	assert.Contains(t, p.Text, "<b>B</b>: X")
	assert.Contains(t, p.Text, "<b>X</b>: 2")
	assert.Contains(t, p.Text, "<b>Y</b>: 1")
	assert.Equal(t, []string{"change"}, buttonData(p), "user with an order gets the change button")
}

func TestAllOrdersWithoutOwnOrderOffersMenu(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.orders.Append(models.Order{User: "A", Items: []string{"X"}}))

	f.controller.Handle(3, "C", Action{Kind: ActionStart})
	p := f.controller.Handle(3, "C", Action{Kind: ActionAllOrders})
	assert.Equal(t, []string{"menu"}, buttonData(p))
}

func TestAllOrdersEmptyStore(t *testing.T) {
	f := newFixture(t)
	f.controller.Handle(1, "Alice", Action{Kind: ActionStart})

	p := f.controller.Handle(1, "Alice", Action{Kind: ActionAllOrders})
	assert.Contains(t, p.Text, textNoOrdersYet)
	assert.Equal(t, []string{"menu"}, buttonData(p))
}

func TestChangeOffersDistinctItems(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.orders.Append(models.Order{User: "Alice", Items: []string{"X", "X", "Y"}}))
	f.controller.Handle(1, "Alice", Action{Kind: ActionStart})

	p := f.controller.Handle(1, "Alice", Action{Kind: ActionChange})
	assert.Equal(t, textChooseRemoval, p.Text)
	assert.Equal(t, []string{"approvechange_X", "approvechange_Y", "allorders"}, buttonData(p))
}

func TestChangeWithoutOrder(t *testing.T) {
	f := newFixture(t)
	f.controller.Handle(1, "Alice", Action{Kind: ActionStart})

	p := f.controller.Handle(1, "Alice", Action{Kind: ActionChange})
	assert.Equal(t, textNoActiveOrder, p.Text)
	assert.Empty(t, p.Buttons)
}

func TestRemoveItemFlow(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.orders.Append(models.Order{User: "Alice", Items: []string{"X", "Y"}}))
	f.controller.Handle(1, "Alice", Action{Kind: ActionStart})

	p := f.controller.Handle(1, "Alice", Action{Kind: ActionRemoveItem, Item: "X"})
	assert.Contains(t, p.Text, "<b>X</b>")
	assert.Equal(t, []string{"allorders", "change"}, buttonData(p), "remaining items keep editing open")

	p = f.controller.Handle(1, "Alice", Action{Kind: ActionRemoveItem, Item: "Y"})
	assert.Equal(t, []string{"allorders"}, buttonData(p), "emptied order closes the edit loop")

	_, ok := f.orders.FindFirstByUser("Alice")
	assert.False(t, ok, "order emptied by removal must be gone")

	p = f.controller.Handle(1, "Alice", Action{Kind: ActionChange})
	assert.Equal(t, textNoActiveOrder, p.Text)
}

func TestStartResetsExistingCart(t *testing.T) {
	f := newFixture(t)
	f.controller.Handle(1, "Alice", Action{Kind: ActionStart})
	f.controller.Handle(1, "Alice", Action{Kind: ActionAddItem, Item: "Cola"})

	f.controller.Handle(1, "Alice", Action{Kind: ActionStart})
	assert.Empty(t, f.sessions.Cart(1))
}
