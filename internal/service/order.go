package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/cart"
	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/metrics"
	"github.com/Zyntrix-company/Qruzine/internal/queue"
	"github.com/Zyntrix-company/Qruzine/internal/repo"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	extraLineMinutes   = 5
	maxEstimatedTime   = 90
	orderIDAttempts    = 3
	defaultHistorySize = 50
)

type OrderService struct {
	orders      repo.OrderRepository
	audits      repo.OrderStatusAuditRepository
	items       repo.MenuItemRepository
	restaurants repo.RestaurantRepository
	qrCodes     repo.QRCodeRepository
	tx          repo.Transactor
	broker      queue.Broker
	logger      *zap.SugaredLogger
	now         func() time.Time
}

func NewOrderService(
	orders repo.OrderRepository,
	audits repo.OrderStatusAuditRepository,
	items repo.MenuItemRepository,
	restaurants repo.RestaurantRepository,
	qrCodes repo.QRCodeRepository,
	tx repo.Transactor,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		audits:      audits,
		items:       items,
		restaurants: restaurants,
		qrCodes:     qrCodes,
		tx:          tx,
		broker:      broker,
		logger:      logger,
		now:         time.Now,
	}
}

type PlaceOrderItem struct {
	MenuID              string `json:"menuID" validate:"required"`
	Quantity            int    `json:"quantity" validate:"required,gte=1,lte=100"`
	VariantName         string `json:"variantName,omitempty"`
	SpecialInstructions string `json:"specialInstructions" validate:"max=500"`
}

type PlaceOrderCustomer struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"required,max=20"`
	Email string `json:"email" validate:"omitempty,email"`
}

// PlaceOrderInput mirrors cart.OrderRequest on the wire.
type PlaceOrderInput struct {
	ResID          string             `json:"resID" validate:"required"`
	QRID           string             `json:"qrID" validate:"required"`
	Customer       PlaceOrderCustomer `json:"customer" validate:"required"`
	Items          []PlaceOrderItem   `json:"items" validate:"required,min=1,dive"`
	SpecialRequest string             `json:"specialRequest" validate:"max=1000"`
}

// Place prices and stores a guest order. Client-side prices are never trusted.
func (s *OrderService) Place(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if strings.TrimSpace(in.Customer.Name) == "" || strings.TrimSpace(in.Customer.Phone) == "" {
		return nil, invalid("customer name and phone are required")
	}
	if len(in.Items) == 0 {
		return nil, invalid("order must contain at least one item")
	}

	restaurantID, err := ParseID("resID", in.ResID)
	if err != nil {
		return nil, err
	}
	qrID, err := ParseID("qrID", in.QRID)
	if err != nil {
		return nil, err
	}

	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive {
		return nil, invalid("restaurant is not accepting orders")
	}

	qr, err := s.qrCodes.GetByID(ctx, qrID)
	if err != nil {
		return nil, err
	}
	if qr.RestaurantID != restaurantID || !qr.IsActive {
		return nil, invalid("qr code is not valid for this restaurant")
	}

	lines, err := s.priceLines(ctx, restaurantID, in.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		RestaurantID:   restaurantID,
		QRID:           qrID,
		TableNumber:    qr.TableNumber,
		Customer:       domain.Customer(in.Customer),
		Items:          lines.items,
		SpecialRequest: strings.TrimSpace(in.SpecialRequest),
		Subtotal:       cart.Round2(lines.subtotal),
		Tax:            cart.Round2(lines.tax),
		Status:         domain.OrderPending,
		EstimatedTime:  EstimatedTime(lines.prepTimes),
	}
	order.Customer.Name = strings.TrimSpace(order.Customer.Name)
	order.Customer.Phone = strings.TrimSpace(order.Customer.Phone)
	order.Total = cart.Round2(order.Subtotal + order.Tax)

	if err := s.create(ctx, order); err != nil {
		return nil, err
	}

	metrics.ObserveOrder(order.Total)
	s.logger.Infow("order placed",
		"order_id", order.OrderID,
		"restaurant_id", restaurantID.Hex(),
		"table", order.TableNumber,
		"total", order.Total,
	)

	s.publish(ctx, domain.OrderEvent{
		EventType:    domain.EventOrderPlaced,
		OrderRef:     order.ID.Hex(),
		OrderID:      order.OrderID,
		RestaurantID: restaurantID.Hex(),
		Restaurant:   restaurant.Name,
		Customer:     order.Customer,
		Total:        order.Total,
		NewStatus:    order.Status,
		Timestamp:    order.CreatedAt,
	})

	return order, nil
}

type pricedLines struct {
	items     []domain.OrderItem
	subtotal  float64
	tax       float64
	prepTimes []int
}

func (s *OrderService) priceLines(ctx context.Context, restaurantID primitive.ObjectID, in []PlaceOrderItem) (*pricedLines, error) {
	ids := make([]primitive.ObjectID, 0, len(in))
	for _, it := range in {
		if it.Quantity < 1 {
			return nil, invalid("quantity must be at least 1")
		}
		id, err := ParseID("menuID", it.MenuID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	found, err := s.items.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]domain.MenuItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	out := &pricedLines{items: make([]domain.OrderItem, 0, len(in))}
	seen := make(map[string]bool, len(in))
	for i, it := range in {
		item, ok := byID[ids[i]]
		if !ok || item.RestaurantID != restaurantID {
			return nil, fmt.Errorf("menu item %s: %w", it.MenuID, domain.ErrNotFound)
		}
		if !item.IsAvailable {
			return nil, invalid(fmt.Sprintf("%s is not available", item.Name))
		}

		name, price := item.Name, item.Price
		if it.VariantName != "" {
			variant, ok := item.FindVariant(it.VariantName)
			if !ok || !variant.IsAvailable {
				return nil, invalid(fmt.Sprintf("%s (%s) is not available", item.Name, it.VariantName))
			}
			name = item.Name + " - " + variant.Name
			price = variant.Price
		} else if item.Price == 0 && len(item.Variants) > 0 {
			return nil, invalid(fmt.Sprintf("%s requires a variant", item.Name))
		}

		rate := cart.TaxRate(item.TaxPercentage)
		line := price * float64(it.Quantity)
		tax := cart.LineTax(price, it.Quantity, rate)

		out.items = append(out.items, domain.OrderItem{
			MenuID:              item.ID,
			Name:                name,
			VariantName:         it.VariantName,
			Quantity:            it.Quantity,
			UnitPrice:           price,
			TaxPercentage:       rate,
			LineTotal:           cart.Round2(line),
			Tax:                 cart.Round2(tax),
			SpecialInstructions: strings.TrimSpace(it.SpecialInstructions),
		})
		out.subtotal += line
		out.tax += tax

		key := cart.Key(item.ID.Hex(), it.VariantName)
		if !seen[key] {
			seen[key] = true
			out.prepTimes = append(out.prepTimes, item.PreparationTime)
		}
	}

	return out, nil
}

// EstimatedTime is the slowest line's preparation time plus a few minutes for
// every other distinct line, capped at maxEstimatedTime.
func EstimatedTime(prepTimes []int) int {
	if len(prepTimes) == 0 {
		return domain.DefaultPreparationTime
	}

	slowest := 0
	for _, p := range prepTimes {
		if p <= 0 {
			p = domain.DefaultPreparationTime
		}
		slowest = max(slowest, p)
	}

	return min(slowest+extraLineMinutes*(len(prepTimes)-1), maxEstimatedTime)
}

// create assigns a fresh order number, retrying on the rare collision.
func (s *OrderService) create(ctx context.Context, order *domain.Order) error {
	var err error
	for range orderIDAttempts {
		order.OrderID = NewOrderNumber(s.now())
		if err = s.orders.Create(ctx, order); !errors.Is(err, domain.ErrConflict) {
			return err
		}
		s.logger.Warnw("order number collision", "order_id", order.OrderID)
	}
	return fmt.Errorf("failed to allocate order number: %w", err)
}

// NewOrderNumber formats a guest-facing order number like ORD-250114-3F9A1C.
func NewOrderNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", t.Format("060102"), suffix)
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal order event", "order_id", event.OrderID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderNotifications, payload); err != nil {
		s.logger.Errorw("failed to publish order event",
			"order_id", event.OrderID,
			"event_type", event.EventType,
			"error", err,
		)
	}
}

type TrackedOrder struct {
	OrderID        string             `json:"orderID"`
	Status         domain.OrderStatus `json:"status"`
	TableNumber    string             `json:"tableNumber"`
	Items          []domain.OrderItem `json:"items"`
	SpecialRequest string             `json:"specialRequest,omitempty"`
	Subtotal       float64            `json:"subtotal"`
	Tax            float64            `json:"tax"`
	Total          float64            `json:"total"`
	EstimatedTime  int                `json:"estimatedTime"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// Track is the guest view of an order; customer details are left out.
func (s *OrderService) Track(ctx context.Context, orderID string) (*TrackedOrder, error) {
	order, err := s.orders.GetByOrderID(ctx, strings.TrimSpace(orderID))
	if err != nil {
		return nil, err
	}

	return &TrackedOrder{
		OrderID:        order.OrderID,
		Status:         order.Status,
		TableNumber:    order.TableNumber,
		Items:          order.Items,
		SpecialRequest: order.SpecialRequest,
		Subtotal:       order.Subtotal,
		Tax:            order.Tax,
		Total:          order.Total,
		EstimatedTime:  order.EstimatedTime,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}, nil
}

type OrderPage struct {
	Orders []domain.Order `json:"orders"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Pages  int64          `json:"pages"`
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) (*OrderPage, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalid(fmt.Sprintf("unknown status %q", filter.Status))
	}

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page, limit := filter.Bounds()
	return &OrderPage{
		Orders: orders,
		Total:  total,
		Page:   page,
		Limit:  limit,
		Pages:  (total + int64(limit) - 1) / int64(limit),
	}, nil
}

// Get loads an order. A nil restaurantID skips the ownership check (admins).
func (s *OrderService) Get(ctx context.Context, restaurantID *primitive.ObjectID, id primitive.ObjectID) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurantID != nil && order.RestaurantID != *restaurantID {
		return nil, fmt.Errorf("order %w", domain.ErrNotFound)
	}
	return order, nil
}

type StatusChange struct {
	Status domain.OrderStatus `json:"status" validate:"required"`
	Reason string             `json:"reason" validate:"max=500"`
}

// UpdateStatus moves an order to any status and records the change in the
// audit trail within one transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, restaurantID *primitive.ObjectID, id primitive.ObjectID, change StatusChange, userID string) (*domain.Order, error) {
	if !change.Status.Valid() {
		return nil, invalid(fmt.Sprintf("unknown status %q", change.Status))
	}

	order, err := s.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	oldStatus := order.Status

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.orders.UpdateStatus(ctx, id, change.Status); err != nil {
			return err
		}
		return s.audits.Create(ctx, &domain.OrderStatusAudit{
			OrderID:   id,
			OldStatus: oldStatus,
			NewStatus: change.Status,
			Reason:    strings.TrimSpace(change.Reason),
			UserID:    userID,
			Timestamp: s.now(),
		})
	})
	if err != nil {
		return nil, err
	}

	order.Status = change.Status
	order.UpdatedAt = s.now()

	metrics.OrderStatusChanges.WithLabelValues(string(change.Status)).Inc()
	s.logger.Infow("order status changed",
		"order_id", order.OrderID,
		"old_status", oldStatus,
		"new_status", change.Status,
		"user_id", userID,
	)

	restaurantName := ""
	if r, err := s.restaurants.GetByID(ctx, order.RestaurantID); err == nil {
		restaurantName = r.Name
	}

	s.publish(ctx, domain.OrderEvent{
		EventType:    domain.EventOrderStatusChanged,
		OrderRef:     order.ID.Hex(),
		OrderID:      order.OrderID,
		RestaurantID: order.RestaurantID.Hex(),
		Restaurant:   restaurantName,
		Customer:     order.Customer,
		Total:        order.Total,
		OldStatus:    oldStatus,
		NewStatus:    change.Status,
		Timestamp:    order.UpdatedAt,
	})

	return order, nil
}

func (s *OrderService) History(ctx context.Context, restaurantID *primitive.ObjectID, id primitive.ObjectID) ([]domain.OrderStatusAudit, error) {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return nil, err
	}
	return s.audits.GetByOrderID(ctx, id, defaultHistorySize)
}
