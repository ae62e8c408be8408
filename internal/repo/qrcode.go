package repo

import (
	"context"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QRCodeRepository interface {
	Create(ctx context.Context, qr *domain.QRCode) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.QRCode, error)
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.QRCode, error)
	Update(ctx context.Context, qr *domain.QRCode) error
	RecordScan(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
