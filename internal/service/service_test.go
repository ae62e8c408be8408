package service

import (
	"context"
	"testing"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/queue"
	"github.com/Zyntrix-company/Qruzine/internal/store/memory"
	"go.uber.org/zap"
)

type fixture struct {
	store      *memory.Store
	broker     *queue.InlineBroker
	restaurant *domain.Restaurant
	qr         *domain.QRCode
	orders     *OrderService
	menu       *MenuService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	store := memory.New()
	broker := queue.NewInlineBroker(queue.Config{MaxRetries: 1, RetryDelay: 1})
	t.Cleanup(func() { _ = broker.Close() })

	restaurant := &domain.Restaurant{Name: "Spice Route", Currency: domain.DefaultCurrency, IsActive: true}
	if err := store.Restaurants.Create(ctx, restaurant); err != nil {
		t.Fatalf("create restaurant: %v", err)
	}

	qr := &domain.QRCode{RestaurantID: restaurant.ID, TableNumber: "7", Label: "Table 7", IsActive: true}
	if err := store.QRCodes.Create(ctx, qr); err != nil {
		t.Fatalf("create qr code: %v", err)
	}

	return &fixture{
		store:      store,
		broker:     broker,
		restaurant: restaurant,
		qr:         qr,
		orders: NewOrderService(
			store.Orders, store.OrderAudits, store.MenuItems,
			store.Restaurants, store.QRCodes, store, broker, logger,
		),
		menu: NewMenuService(store.MenuItems, store.Categories, store.Restaurants, store.QRCodes, logger),
	}
}

func (f *fixture) addItem(t *testing.T, item domain.MenuItem) domain.MenuItem {
	t.Helper()

	item.RestaurantID = f.restaurant.ID
	if err := f.store.MenuItems.Create(context.Background(), &item); err != nil {
		t.Fatalf("create menu item: %v", err)
	}
	return item
}

func ptr[T any](v T) *T {
	return &v
}
