package repo

import (
	"context"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error
	Stats(ctx context.Context, restaurantID *primitive.ObjectID, since time.Time) (*domain.OrderStats, error)
}

type OrderStatusAuditRepository interface {
	Create(ctx context.Context, audit *domain.OrderStatusAudit) error
	GetByOrderID(ctx context.Context, orderID primitive.ObjectID, limit int) ([]domain.OrderStatusAudit, error)
}
