package repo

import (
	"context"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BannerRepository interface {
	Create(ctx context.Context, banner *domain.Banner) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Banner, error)
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID, activeOnly bool) ([]domain.Banner, error)
	Update(ctx context.Context, banner *domain.Banner) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
