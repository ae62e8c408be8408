package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItemRepository struct {
	mu   sync.RWMutex
	data map[primitive.ObjectID]domain.MenuItem
}

func NewMenuItemRepository() *MenuItemRepository {
	return &MenuItemRepository{data: make(map[primitive.ObjectID]domain.MenuItem)}
}

func (r *MenuItemRepository) Create(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insert(item)
	return nil
}

func (r *MenuItemRepository) CreateMany(_ context.Context, items []domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range items {
		r.insert(&items[i])
	}
	return nil
}

func (r *MenuItemRepository) insert(item *domain.MenuItem) {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	r.data[item.ID] = cloneMenuItem(*item)
}

func (r *MenuItemRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("menu item %w", domain.ErrNotFound)
	}
	item = cloneMenuItem(item)
	return &item, nil
}

func (r *MenuItemRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.MenuItem{}
	for _, id := range ids {
		if item, ok := r.data[id]; ok {
			out = append(out, cloneMenuItem(item))
		}
	}
	return out, nil
}

func (r *MenuItemRepository) ListByRestaurant(_ context.Context, restaurantID primitive.ObjectID, availableOnly bool) ([]domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.MenuItem{}
	for _, item := range r.data {
		if item.RestaurantID != restaurantID || (availableOnly && !item.IsAvailable) {
			continue
		}
		out = append(out, cloneMenuItem(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MenuItemRepository) Update(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[item.ID]; !ok {
		return fmt.Errorf("menu item %w", domain.ErrNotFound)
	}
	item.UpdatedAt = time.Now()
	r.data[item.ID] = cloneMenuItem(*item)
	return nil
}

func (r *MenuItemRepository) SetAvailability(_ context.Context, id primitive.ObjectID, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.data[id]
	if !ok {
		return fmt.Errorf("menu item %w", domain.ErrNotFound)
	}
	item.IsAvailable = available
	item.UpdatedAt = time.Now()
	r.data[id] = item
	return nil
}

func (r *MenuItemRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return fmt.Errorf("menu item %w", domain.ErrNotFound)
	}
	delete(r.data, id)
	return nil
}

func (r *MenuItemRepository) CountByRestaurant(_ context.Context, restaurantID primitive.ObjectID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, item := range r.data {
		if item.RestaurantID == restaurantID {
			n++
		}
	}
	return n, nil
}

func cloneMenuItem(item domain.MenuItem) domain.MenuItem {
	item.Variants = append([]domain.Variant(nil), item.Variants...)
	if item.TaxPercentage != nil {
		tax := *item.TaxPercentage
		item.TaxPercentage = &tax
	}
	return item
}
