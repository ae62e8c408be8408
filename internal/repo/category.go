package repo

import (
	"context"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID, activeOnly bool) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
