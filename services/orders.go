package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/0levin/shawerma-bot/models"

	"github.com/rs/zerolog"
)

// RemovalOutcome reports what RemoveItem did to the stored order.
type RemovalOutcome int

const (
	Removed       RemovalOutcome = iota // item removed, order still has items
	OrderDeleted                        // last item removed, whole record deleted
	OrderNotFound                       // no order for that user
	ItemNotFound                        // order found, item not in it
)

// OrderStore is the durable record of submitted orders. The collection is
// insertion-ordered; lookups take the first record matching the display name.
type OrderStore interface {
	LoadAll() []models.Order
	Append(o models.Order) error
	FindFirstByUser(user string) (models.Order, bool)
	RemoveItem(user, item string) RemovalOutcome
	AggregateCounts() []models.ItemCount
}

// FileStore keeps all orders in a single JSON document, read in full on every
// call and rewritten in full on every mutation. The mutex serializes the
// read-modify-write cycles, so concurrent submissions within one process
// cannot overwrite each other's append; across processes the file stays
// last-writer-wins.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
}

func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) LoadAll() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// load reads the whole document. A missing, empty or corrupt file degrades to
// an empty collection; decode failures are logged, never surfaced to the user.
// Callers must hold s.mu.
func (s *FileStore) load() []models.Order {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error().Err(err).Str("file", s.path).Msg("read orders file")
		}
		return []models.Order{}
	}
	if len(data) == 0 {
		return []models.Order{}
	}

	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		s.logger.Error().Err(err).Str("file", s.path).Msg("decode orders file")
		return []models.Order{}
	}
	return orders
}

// save rewrites the whole document through a temp file and rename, so a
// failed write never truncates the store. Callers must hold s.mu.
func (s *FileStore) save(orders []models.Order) error {
	data, err := json.MarshalIndent(orders, "", "    ")
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write orders: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace orders file: %w", err)
	}
	s.logger.Info().Str("file", s.path).Int("orders", len(orders)).Msg("orders saved")
	return nil
}

func (s *FileStore) Append(o models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := append(s.load(), o)
	return s.save(orders)
}

func (s *FileStore) FindFirstByUser(user string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.load() {
		if o.User == user {
			return o, true
		}
	}
	return models.Order{}, false
}

func (s *FileStore) RemoveItem(user, item string) RemovalOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, outcome := removeFromOrders(s.load(), user, item)
	if outcome == Removed || outcome == OrderDeleted {
		if err := s.save(orders); err != nil {
			s.logger.Error().Err(err).Str("user", user).Str("item", item).Msg("persist removal")
		}
	}
	return outcome
}

func (s *FileStore) AggregateCounts() []models.ItemCount {
	return aggregateCounts(s.LoadAll())
}

// removeFromOrders drops the first occurrence of item from the first order
// matching user. An order emptied by the removal is deleted from the
// collection, not left as an empty shell. Returns the collection to persist.
func removeFromOrders(orders []models.Order, user, item string) ([]models.Order, RemovalOutcome) {
	for i := range orders {
		if orders[i].User != user {
			continue
		}
		for j, it := range orders[i].Items {
			if it != item {
				continue
			}
			orders[i].Items = append(orders[i].Items[:j], orders[i].Items[j+1:]...)
			if len(orders[i].Items) == 0 {
				return append(orders[:i], orders[i+1:]...), OrderDeleted
			}
			return orders, Removed
		}
		return orders, ItemNotFound
	}
	return orders, OrderNotFound
}

// aggregateCounts tallies item occurrences across all orders. Names keep
// their first-seen order so the totals render deterministically.
func aggregateCounts(orders []models.Order) []models.ItemCount {
	counts := make(map[string]int)
	var names []string
	for _, o := range orders {
		for _, it := range o.Items {
			if _, seen := counts[it]; !seen {
				names = append(names, it)
			}
			counts[it]++
		}
	}

	out := make([]models.ItemCount, 0, len(names))
	for _, n := range names {
		out = append(out, models.ItemCount{Name: n, Count: counts[n]})
	}
	return out
}
