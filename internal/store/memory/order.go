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

type OrderRepository struct {
	mu   sync.RWMutex
	data map[primitive.ObjectID]domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{data: make(map[primitive.ObjectID]domain.Order)}
}

func (r *OrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.data {
		if existing.OrderID == order.OrderID {
			return fmt.Errorf("order %w", domain.ErrConflict)
		}
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.data[order.ID] = cloneOrder(*order)
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("order %w", domain.ErrNotFound)
	}
	order = cloneOrder(order)
	return &order, nil
}

func (r *OrderRepository) GetByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.data {
		if order.OrderID == orderID {
			order = cloneOrder(order)
			return &order, nil
		}
	}
	return nil, fmt.Errorf("order %w", domain.ErrNotFound)
}

func (r *OrderRepository) List(_ context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []domain.Order{}
	for _, order := range r.data {
		if matches(filter, order) {
			matched = append(matched, order)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	page, limit := filter.Bounds()
	start := (page - 1) * limit
	if start >= len(matched) {
		return []domain.Order{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]domain.Order, 0, end-start)
	for _, order := range matched[start:end] {
		out = append(out, cloneOrder(order))
	}
	return out, total, nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.data[id]
	if !ok {
		return fmt.Errorf("order %w", domain.ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.data[id] = order
	return nil
}

func (r *OrderRepository) Stats(_ context.Context, restaurantID *primitive.ObjectID, since time.Time) (*domain.OrderStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &domain.OrderStats{}
	for _, order := range r.data {
		if restaurantID != nil && order.RestaurantID != *restaurantID {
			continue
		}
		if !since.IsZero() && order.CreatedAt.Before(since) {
			continue
		}
		stats.Orders++
		if order.Status == domain.OrderPending {
			stats.PendingOrders++
		}
		if order.Status != domain.OrderCancelled {
			stats.Revenue += order.Total
		}
	}
	return stats, nil
}

func matches(filter domain.OrderFilter, order domain.Order) bool {
	if filter.RestaurantID != nil && order.RestaurantID != *filter.RestaurantID {
		return false
	}
	if filter.Status != "" && order.Status != filter.Status {
		return false
	}
	if !filter.From.IsZero() && order.CreatedAt.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && order.CreatedAt.After(filter.To) {
		return false
	}
	return true
}

func cloneOrder(order domain.Order) domain.Order {
	order.Items = append([]domain.OrderItem(nil), order.Items...)
	return order
}

type OrderStatusAuditRepository struct {
	mu   sync.RWMutex
	data []domain.OrderStatusAudit
}

func NewOrderStatusAuditRepository() *OrderStatusAuditRepository {
	return &OrderStatusAuditRepository{}
}

func (r *OrderStatusAuditRepository) Create(_ context.Context, audit *domain.OrderStatusAudit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}
	r.data = append(r.data, *audit)
	return nil
}

// GetByOrderID returns the audit trail newest first.
func (r *OrderStatusAuditRepository) GetByOrderID(_ context.Context, orderID primitive.ObjectID, limit int) ([]domain.OrderStatusAudit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.OrderStatusAudit{}
	for i := len(r.data) - 1; i >= 0; i-- {
		if r.data[i].OrderID != orderID {
			continue
		}
		out = append(out, r.data[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
