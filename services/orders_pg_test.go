package services

import (
	"context"
	"os"
	"testing"

	"github.com/0levin/shawerma-bot/config"
	"github.com/0levin/shawerma-bot/db"
	"github.com/0levin/shawerma-bot/models"

	"github.com/rs/zerolog"
)

// Integration test for the postgres backend. Needs a reachable database;
// skipped unless PG_TEST=1 and never run in -short mode.
func TestPGStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	if os.Getenv("PG_TEST") == "" {
		t.Skip("skipping postgres integration test: set PG_TEST=1 to enable")
	}

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		t.Skipf("skipping: cannot connect to postgres: %v", err)
	}
	defer pool.Close()

	s := NewPGStore(pool, zerolog.Nop())
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	const user = "pgstore-test-user"
	cleanup := func() {
		_, _ = pool.Exec(ctx, `DELETE FROM orders WHERE username = $1`, user)
	}
	cleanup()
	defer cleanup()

	if err := s.Append(models.Order{User: user, Items: []string{"Фалафель", "Кола"}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	o, ok := s.FindFirstByUser(user)
	if !ok {
		t.Fatal("FindFirstByUser: order not found after append")
	}
	if len(o.Items) != 2 || o.Items[0] != "Фалафель" || o.Items[1] != "Кола" {
		t.Errorf("items = %v, want [Фалафель Кола]", o.Items)
	}

	if got := s.RemoveItem(user, "Фалафель"); got != Removed {
		t.Errorf("RemoveItem first = %v, want Removed", got)
	}
	if got := s.RemoveItem(user, "Кола"); got != OrderDeleted {
		t.Errorf("RemoveItem last = %v, want OrderDeleted", got)
	}
	if _, ok := s.FindFirstByUser(user); ok {
		t.Error("order should be deleted after last item removed")
	}
}
