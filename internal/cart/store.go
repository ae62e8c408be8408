package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// DefaultTTL bounds how long an abandoned cart is kept.
const DefaultTTL = 24 * time.Hour

// StorageKey scopes a cart to one restaurant table.
func StorageKey(resID, qrID string) string {
	return fmt.Sprintf("qr_cart_%s_%s", resID, qrID)
}

// Store persists carts. Load returns an empty cart for unknown keys.
type Store interface {
	Load(ctx context.Context, key string) (*Cart, error)
	Save(ctx context.Context, key string, c *Cart) error
	Delete(ctx context.Context, key string) error
}

type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (*Cart, error) {
	s.mu.RLock()
	raw, ok := s.carts[key]
	s.mu.RUnlock()

	if !ok {
		return New(), nil
	}
	return decode(raw)
}

func (s *MemoryStore) Save(_ context.Context, key string, c *Cart) error {
	raw, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	s.mu.Lock()
	s.carts[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.carts, key)
	s.mu.Unlock()
	return nil
}

// BadgerStore keeps carts in an embedded Badger database with a TTL.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadger opens a Badger database at dir. An empty dir keeps it in memory.
func OpenBadger(dir string, ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cart store: %w", err)
	}

	return NewBadgerStore(db, ttl), nil
}

func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BadgerStore{db: db, ttl: ttl}
}

func (s *BadgerStore) Load(_ context.Context, key string) (*Cart, error) {
	var raw []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get cart: %w", err)
		}

		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	if raw == nil {
		return New(), nil
	}
	return decode(raw)
}

func (s *BadgerStore) Save(_ context.Context, key string, c *Cart) error {
	raw, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), raw).WithTTL(s.ttl)
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("set cart: %w", err)
		}
		return nil
	})
}

func (s *BadgerStore) Delete(_ context.Context, key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete cart: %w", err)
		}
		return nil
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func decode(raw []byte) (*Cart, error) {
	c := New()
	if err := json.Unmarshal(raw, &c.Items); err != nil {
		return New(), fmt.Errorf("unmarshal cart: %w", err)
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return c, nil
}
