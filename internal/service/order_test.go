package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/queue"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEstimatedTime(t *testing.T) {
	tests := []struct {
		name  string
		preps []int
		want  int
	}{
		{"no lines", nil, 15},
		{"single line", []int{20}, 20},
		{"unset prep time", []int{0}, 15},
		{"extra lines add five minutes", []int{10, 25, 5}, 35},
		{"capped", []int{80, 10, 10, 10}, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimatedTime(tt.preps); got != tt.want {
				t.Errorf("EstimatedTime(%v) = %d, want %d", tt.preps, got, tt.want)
			}
		})
	}
}

func TestNewOrderNumber(t *testing.T) {
	got := NewOrderNumber(time.Date(2025, 1, 14, 9, 0, 0, 0, time.UTC))
	if !regexp.MustCompile(`^ORD-250114-[0-9A-F]{6}$`).MatchString(got) {
		t.Errorf("NewOrderNumber() = %q", got)
	}
}

func TestPlaceOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var events []domain.OrderEvent
	done := make(chan struct{}, 4)
	_ = f.broker.Subscribe(ctx, queue.QueueOrderNotifications, func(_ context.Context, msg []byte) error {
		var e domain.OrderEvent
		if err := json.Unmarshal(msg, &e); err != nil {
			return err
		}
		events = append(events, e)
		done <- struct{}{}
		return nil
	})

	paneer := f.addItem(t, domain.MenuItem{Name: "Paneer Tikka", Category: "Starters", Price: 200, IsAvailable: true, PreparationTime: 20})
	lassi := f.addItem(t, domain.MenuItem{
		Name:            "Lassi",
		Category:        "Drinks",
		IsAvailable:     true,
		TaxPercentage:   ptr(5.0),
		PreparationTime: 5,
		Variants: []domain.Variant{
			{Name: "Small", Price: 60, IsAvailable: true},
			{Name: "Large", Price: 100, IsAvailable: false},
		},
	})

	order, err := f.orders.Place(ctx, PlaceOrderInput{
		ResID:    f.restaurant.ID.Hex(),
		QRID:     f.qr.ID.Hex(),
		Customer: PlaceOrderCustomer{Name: " Asha ", Phone: "9876543210"},
		Items: []PlaceOrderItem{
			{MenuID: paneer.ID.Hex(), Quantity: 2},
			{MenuID: lassi.ID.Hex(), VariantName: "Small", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	// 2*200 + 60 = 460; tax 40 + 3 = 43.
	if order.Subtotal != 460 || order.Tax != 43 || order.Total != 503 {
		t.Errorf("totals = %v/%v/%v, want 460/43/503", order.Subtotal, order.Tax, order.Total)
	}
	if order.Status != domain.OrderPending {
		t.Errorf("Status = %q, want Pending", order.Status)
	}
	if order.EstimatedTime != 25 {
		t.Errorf("EstimatedTime = %d, want 25", order.EstimatedTime)
	}
	if order.TableNumber != "7" || order.Customer.Name != "Asha" {
		t.Errorf("table/customer = %q/%q", order.TableNumber, order.Customer.Name)
	}
	if order.Items[1].Name != "Lassi - Small" || order.Items[1].UnitPrice != 60 {
		t.Errorf("variant line = %+v", order.Items[1])
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("order.placed event not delivered")
	}
	if events[0].EventType != domain.EventOrderPlaced || events[0].OrderID != order.OrderID {
		t.Errorf("event = %+v", events[0])
	}

	tracked, err := f.orders.Track(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if tracked.Total != 503 || len(tracked.Items) != 2 {
		t.Errorf("Track() = %+v", tracked)
	}
}

func TestPlaceOrderRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.addItem(t, domain.MenuItem{
		Name:        "Lassi",
		Category:    "Drinks",
		IsAvailable: true,
		Variants:    []domain.Variant{{Name: "Large", Price: 100, IsAvailable: false}},
	})
	off := f.addItem(t, domain.MenuItem{Name: "Soup", Category: "Starters", Price: 90, IsAvailable: false})

	other := &domain.Restaurant{Name: "Elsewhere", IsActive: true}
	_ = f.store.Restaurants.Create(ctx, other)

	base := func() PlaceOrderInput {
		return PlaceOrderInput{
			ResID:    f.restaurant.ID.Hex(),
			QRID:     f.qr.ID.Hex(),
			Customer: PlaceOrderCustomer{Name: "Asha", Phone: "9876543210"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*PlaceOrderInput)
		wantErr error
	}{
		{"no items", func(in *PlaceOrderInput) {}, domain.ErrInvalidInput},
		{"missing phone", func(in *PlaceOrderInput) {
			in.Customer.Phone = ""
			in.Items = []PlaceOrderItem{{MenuID: off.ID.Hex(), Quantity: 1}}
		}, domain.ErrInvalidInput},
		{"unavailable variant", func(in *PlaceOrderInput) {
			in.Items = []PlaceOrderItem{{MenuID: item.ID.Hex(), VariantName: "Large", Quantity: 1}}
		}, domain.ErrInvalidInput},
		{"variant required", func(in *PlaceOrderInput) {
			in.Items = []PlaceOrderItem{{MenuID: item.ID.Hex(), Quantity: 1}}
		}, domain.ErrInvalidInput},
		{"unavailable item", func(in *PlaceOrderInput) {
			in.Items = []PlaceOrderItem{{MenuID: off.ID.Hex(), Quantity: 1}}
		}, domain.ErrInvalidInput},
		{"zero quantity", func(in *PlaceOrderInput) {
			in.Items = []PlaceOrderItem{{MenuID: off.ID.Hex(), Quantity: 0}}
		}, domain.ErrInvalidInput},
		{"unknown item", func(in *PlaceOrderInput) {
			in.Items = []PlaceOrderItem{{MenuID: primitive.NewObjectID().Hex(), Quantity: 1}}
		}, domain.ErrNotFound},
		{"qr of another restaurant", func(in *PlaceOrderInput) {
			in.ResID = other.ID.Hex()
			in.Items = []PlaceOrderItem{{MenuID: off.ID.Hex(), Quantity: 1}}
		}, domain.ErrInvalidInput},
		{"malformed resID", func(in *PlaceOrderInput) {
			in.ResID = "nope"
			in.Items = []PlaceOrderItem{{MenuID: off.ID.Hex(), Quantity: 1}}
		}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			if _, err := f.orders.Place(ctx, in); !errors.Is(err, tt.wantErr) {
				t.Errorf("Place() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateStatusAudited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.addItem(t, domain.MenuItem{Name: "Dal", Category: "Mains", Price: 150, IsAvailable: true})
	order, err := f.orders.Place(ctx, PlaceOrderInput{
		ResID:    f.restaurant.ID.Hex(),
		QRID:     f.qr.ID.Hex(),
		Customer: PlaceOrderCustomer{Name: "Ravi", Phone: "9000000000"},
		Items:    []PlaceOrderItem{{MenuID: item.ID.Hex(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	rid := f.restaurant.ID
	if _, err := f.orders.UpdateStatus(ctx, &rid, order.ID, StatusChange{Status: "Eaten"}, "u1"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("unknown status error = %v", err)
	}

	stranger := primitive.NewObjectID()
	if _, err := f.orders.UpdateStatus(ctx, &stranger, order.ID, StatusChange{Status: domain.OrderAccepted}, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign restaurant error = %v, want ErrNotFound", err)
	}

	for _, st := range []domain.OrderStatus{domain.OrderAccepted, domain.OrderCancelled} {
		if _, err := f.orders.UpdateStatus(ctx, &rid, order.ID, StatusChange{Status: st, Reason: "kitchen"}, "u1"); err != nil {
			t.Fatalf("UpdateStatus(%s) error = %v", st, err)
		}
	}

	history, err := f.orders.History(ctx, nil, order.ID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	if history[0].OldStatus != domain.OrderAccepted || history[0].NewStatus != domain.OrderCancelled {
		t.Errorf("latest audit = %+v", history[0])
	}

	stored, _ := f.store.Orders.GetByID(ctx, order.ID)
	if stored.Status != domain.OrderCancelled {
		t.Errorf("stored status = %q", stored.Status)
	}
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.List(context.Background(), domain.OrderFilter{Status: "Lost"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("List() error = %v, want ErrInvalidInput", err)
	}

	page, err := f.orders.List(context.Background(), domain.OrderFilter{Limit: 500})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Limit != domain.MaxPageSize || page.Page != 1 || page.Pages != 0 {
		t.Errorf("page = %+v", page)
	}
}
