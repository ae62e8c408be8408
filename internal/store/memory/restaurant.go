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

type RestaurantRepository struct {
	mu   sync.RWMutex
	data map[primitive.ObjectID]domain.Restaurant
}

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{data: make(map[primitive.ObjectID]domain.Restaurant)}
}

func (r *RestaurantRepository) Create(_ context.Context, restaurant *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	restaurant.CreatedAt = time.Now()
	restaurant.UpdatedAt = restaurant.CreatedAt
	r.data[restaurant.ID] = *restaurant
	return nil
}

func (r *RestaurantRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	restaurant, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("restaurant %w", domain.ErrNotFound)
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) List(_ context.Context) ([]domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Restaurant, 0, len(r.data))
	for _, restaurant := range r.data {
		out = append(out, restaurant)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *RestaurantRepository) Update(_ context.Context, restaurant *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[restaurant.ID]; !ok {
		return fmt.Errorf("restaurant %w", domain.ErrNotFound)
	}
	restaurant.UpdatedAt = time.Now()
	r.data[restaurant.ID] = *restaurant
	return nil
}

func (r *RestaurantRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return fmt.Errorf("restaurant %w", domain.ErrNotFound)
	}
	delete(r.data, id)
	return nil
}

func (r *RestaurantRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.data)), nil
}
