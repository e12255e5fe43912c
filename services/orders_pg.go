package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/0levin/shawerma-bot/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PGStore is the postgres-backed order store. Same contract as FileStore:
// insertion-ordered collection, first-match lookup by display name, removal
// of the last item deletes the row.
type PGStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPGStore(pool *pgxpool.Pool, logger zerolog.Logger) *PGStore {
	return &PGStore{pool: pool, logger: logger}
}

// EnsureSchema creates the orders table when it does not exist yet.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id       BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			items    JSONB NOT NULL
		)`)
	return err
}

func (s *PGStore) LoadAll() []models.Order {
	rows, err := s.pool.Query(context.Background(), `
		SELECT username, items FROM orders ORDER BY id`)
	if err != nil {
		s.logger.Error().Err(err).Msg("query orders")
		return []models.Order{}
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var user string
		var itemsJSON []byte
		if err := rows.Scan(&user, &itemsJSON); err != nil {
			s.logger.Error().Err(err).Msg("scan order row")
			return []models.Order{}
		}
		var items []string
		if err := json.Unmarshal(itemsJSON, &items); err != nil {
			s.logger.Error().Err(err).Msg("decode order items")
			return []models.Order{}
		}
		orders = append(orders, models.Order{User: user, Items: items})
	}
	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("iterate orders")
		return []models.Order{}
	}
	return orders
}

func (s *PGStore) Append(o models.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	_, err = s.pool.Exec(context.Background(), `
		INSERT INTO orders (username, items) VALUES ($1, $2::jsonb)`,
		o.User, itemsJSON,
	)
	return err
}

func (s *PGStore) FindFirstByUser(user string) (models.Order, bool) {
	var itemsJSON []byte
	err := s.pool.QueryRow(context.Background(), `
		SELECT items FROM orders WHERE username = $1 ORDER BY id LIMIT 1`,
		user,
	).Scan(&itemsJSON)
	if err != nil {
		return models.Order{}, false
	}

	var items []string
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		s.logger.Error().Err(err).Str("user", user).Msg("decode order items")
		return models.Order{}, false
	}
	return models.Order{User: user, Items: items}, true
}

func (s *PGStore) RemoveItem(user, item string) RemovalOutcome {
	ctx := context.Background()

	var id int64
	var itemsJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT id, items FROM orders WHERE username = $1 ORDER BY id LIMIT 1`,
		user,
	).Scan(&id, &itemsJSON)
	if err != nil {
		return OrderNotFound
	}
	var items []string
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("decode order items")
		return OrderNotFound
	}

	idx := -1
	for i, it := range items {
		if it == item {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ItemNotFound
	}
	items = append(items[:idx], items[idx+1:]...)

	if len(items) == 0 {
		if _, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
			s.logger.Error().Err(err).Int64("id", id).Msg("delete emptied order")
		}
		return OrderDeleted
	}

	updated, _ := json.Marshal(items)
	if _, err := s.pool.Exec(ctx, `UPDATE orders SET items = $1::jsonb WHERE id = $2`, updated, id); err != nil {
		s.logger.Error().Err(err).Int64("id", id).Msg("update order items")
	}
	return Removed
}

func (s *PGStore) AggregateCounts() []models.ItemCount {
	return aggregateCounts(s.LoadAll())
}
