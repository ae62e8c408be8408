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

type BannerRepository struct {
	mu   sync.RWMutex
	data map[primitive.ObjectID]domain.Banner
}

func NewBannerRepository() *BannerRepository {
	return &BannerRepository{data: make(map[primitive.ObjectID]domain.Banner)}
}

func (r *BannerRepository) Create(_ context.Context, banner *domain.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if banner.ID.IsZero() {
		banner.ID = primitive.NewObjectID()
	}
	banner.CreatedAt = time.Now()
	banner.UpdatedAt = banner.CreatedAt
	r.data[banner.ID] = *banner
	return nil
}

func (r *BannerRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	banner, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("banner %w", domain.ErrNotFound)
	}
	return &banner, nil
}

func (r *BannerRepository) ListByRestaurant(_ context.Context, restaurantID primitive.ObjectID, activeOnly bool) ([]domain.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Banner{}
	for _, banner := range r.data {
		if banner.RestaurantID != restaurantID || (activeOnly && !banner.IsActive) {
			continue
		}
		out = append(out, banner)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *BannerRepository) Update(_ context.Context, banner *domain.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[banner.ID]; !ok {
		return fmt.Errorf("banner %w", domain.ErrNotFound)
	}
	banner.UpdatedAt = time.Now()
	r.data[banner.ID] = *banner
	return nil
}

func (r *BannerRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return fmt.Errorf("banner %w", domain.ErrNotFound)
	}
	delete(r.data, id)
	return nil
}
