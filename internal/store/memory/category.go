package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryRepository struct {
	mu   sync.RWMutex
	data map[primitive.ObjectID]domain.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{data: make(map[primitive.ObjectID]domain.Category)}
}

func (r *CategoryRepository) Create(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(category) {
		return fmt.Errorf("category %w", domain.ErrConflict)
	}
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	r.data[category.ID] = *category
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("category %w", domain.ErrNotFound)
	}
	return &category, nil
}

func (r *CategoryRepository) ListByRestaurant(_ context.Context, restaurantID primitive.ObjectID, activeOnly bool) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Category{}
	for _, category := range r.data {
		if category.RestaurantID != restaurantID || (activeOnly && !category.IsActive) {
			continue
		}
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *CategoryRepository) Update(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[category.ID]; !ok {
		return fmt.Errorf("category %w", domain.ErrNotFound)
	}
	if r.nameTaken(category) {
		return fmt.Errorf("category %w", domain.ErrConflict)
	}
	category.UpdatedAt = time.Now()
	r.data[category.ID] = *category
	return nil
}

func (r *CategoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return fmt.Errorf("category %w", domain.ErrNotFound)
	}
	delete(r.data, id)
	return nil
}

func (r *CategoryRepository) nameTaken(category *domain.Category) bool {
	for id, existing := range r.data {
		if id != category.ID && existing.RestaurantID == category.RestaurantID &&
			strings.EqualFold(existing.Name, category.Name) {
			return true
		}
	}
	return false
}
