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

type QRCodeRepository struct {
	mu   sync.RWMutex
	data map[primitive.ObjectID]domain.QRCode
}

func NewQRCodeRepository() *QRCodeRepository {
	return &QRCodeRepository{data: make(map[primitive.ObjectID]domain.QRCode)}
}

func (r *QRCodeRepository) Create(_ context.Context, qr *domain.QRCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if qr.ID.IsZero() {
		qr.ID = primitive.NewObjectID()
	}
	qr.CreatedAt = time.Now()
	qr.UpdatedAt = qr.CreatedAt
	r.data[qr.ID] = *qr
	return nil
}

func (r *QRCodeRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.QRCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	qr, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("qr code %w", domain.ErrNotFound)
	}
	return &qr, nil
}

func (r *QRCodeRepository) ListByRestaurant(_ context.Context, restaurantID primitive.ObjectID) ([]domain.QRCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.QRCode{}
	for _, qr := range r.data {
		if qr.RestaurantID == restaurantID {
			out = append(out, qr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableNumber < out[j].TableNumber })
	return out, nil
}

func (r *QRCodeRepository) Update(_ context.Context, qr *domain.QRCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[qr.ID]; !ok {
		return fmt.Errorf("qr code %w", domain.ErrNotFound)
	}
	qr.UpdatedAt = time.Now()
	r.data[qr.ID] = *qr
	return nil
}

func (r *QRCodeRepository) RecordScan(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	qr, ok := r.data[id]
	if !ok {
		return fmt.Errorf("qr code %w", domain.ErrNotFound)
	}
	now := time.Now()
	qr.ScanCount++
	qr.LastScannedAt = &now
	qr.UpdatedAt = now
	r.data[id] = qr
	return nil
}

func (r *QRCodeRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return fmt.Errorf("qr code %w", domain.ErrNotFound)
	}
	delete(r.data, id)
	return nil
}
