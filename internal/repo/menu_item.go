package repo

import (
	"context"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItemRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	CreateMany(ctx context.Context, items []domain.MenuItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID, availableOnly bool) ([]domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) (int64, error)
}
