package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repo.RestaurantRepository       = (*RestaurantRepository)(nil)
	_ repo.MenuItemRepository         = (*MenuItemRepository)(nil)
	_ repo.CategoryRepository         = (*CategoryRepository)(nil)
	_ repo.QRCodeRepository           = (*QRCodeRepository)(nil)
	_ repo.OrderRepository            = (*OrderRepository)(nil)
	_ repo.OrderStatusAuditRepository = (*OrderStatusAuditRepository)(nil)
	_ repo.UserRepository             = (*UserRepository)(nil)
	_ repo.BannerRepository           = (*BannerRepository)(nil)
	_ repo.ImportTaskRepository       = (*ImportTaskRepository)(nil)
	_ repo.Transactor                 = (*Store)(nil)
)

func TestMenuItemIsolation(t *testing.T) {
	ctx := context.Background()
	items := NewMenuItemRepository()

	item := &domain.MenuItem{
		RestaurantID: primitive.NewObjectID(),
		Name:         "Pizza",
		Variants:     []domain.Variant{{Name: "Large", Price: 12, IsAvailable: true}},
	}
	if err := items.Create(ctx, item); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := items.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	got.Variants[0].Price = 99

	again, _ := items.GetByID(ctx, item.ID)
	if again.Variants[0].Price != 12 {
		t.Errorf("stored variant mutated through returned copy: price = %v", again.Variants[0].Price)
	}

	if _, err := items.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() unknown id error = %v, want ErrNotFound", err)
	}
}

func TestCategoryNameUnique(t *testing.T) {
	ctx := context.Background()
	categories := NewCategoryRepository()
	rid := primitive.NewObjectID()

	if err := categories.Create(ctx, &domain.Category{RestaurantID: rid, Name: "Drinks"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := categories.Create(ctx, &domain.Category{RestaurantID: rid, Name: "drinks"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Create() duplicate error = %v, want ErrConflict", err)
	}
	if err := categories.Create(ctx, &domain.Category{RestaurantID: primitive.NewObjectID(), Name: "Drinks"}); err != nil {
		t.Errorf("Create() same name in other restaurant error = %v", err)
	}
}

func TestUserEmailNormalized(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository()

	if err := users.Create(ctx, &domain.User{Email: " Owner@Example.com ", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, err := users.GetByEmail(ctx, "OWNER@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.Email != "owner@example.com" {
		t.Errorf("Email = %q, want lowercased", got.Email)
	}
	if err := users.Create(ctx, &domain.User{Email: "owner@example.com"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Create() duplicate email error = %v, want ErrConflict", err)
	}
	n, _ := users.CountByRole(ctx, domain.RoleAdmin)
	if n != 1 {
		t.Errorf("CountByRole() = %d, want 1", n)
	}
}

func TestOrderListAndStats(t *testing.T) {
	ctx := context.Background()
	orders := NewOrderRepository()
	rid := primitive.NewObjectID()
	other := primitive.NewObjectID()

	seed := []domain.Order{
		{OrderID: "A", RestaurantID: rid, Status: domain.OrderPending, Total: 10},
		{OrderID: "B", RestaurantID: rid, Status: domain.OrderServed, Total: 20},
		{OrderID: "C", RestaurantID: rid, Status: domain.OrderCancelled, Total: 40},
		{OrderID: "D", RestaurantID: other, Status: domain.OrderPending, Total: 80},
	}
	for i := range seed {
		if err := orders.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	list, total, err := orders.List(ctx, domain.OrderFilter{RestaurantID: &rid, Limit: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 || len(list) != 2 {
		t.Fatalf("List() total=%d len=%d, want 3 and 2", total, len(list))
	}
	if list[0].OrderID != "C" {
		t.Errorf("List() first = %s, want newest C", list[0].OrderID)
	}

	page2, _, _ := orders.List(ctx, domain.OrderFilter{RestaurantID: &rid, Page: 2, Limit: 2})
	if len(page2) != 1 || page2[0].OrderID != "A" {
		t.Errorf("List() page 2 = %+v, want only A", page2)
	}

	stats, err := orders.Stats(ctx, &rid, time.Time{})
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Orders != 3 || stats.PendingOrders != 1 || stats.Revenue != 30 {
		t.Errorf("Stats() = %+v, want 3 orders, 1 pending, revenue 30", stats)
	}

	all, _ := orders.Stats(ctx, nil, time.Time{})
	if all.Orders != 4 {
		t.Errorf("Stats(all).Orders = %d, want 4", all.Orders)
	}

	if err := orders.Create(ctx, &domain.Order{OrderID: "A"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Create() duplicate order id error = %v, want ErrConflict", err)
	}
}

func TestAuditNewestFirst(t *testing.T) {
	ctx := context.Background()
	audits := NewOrderStatusAuditRepository()
	orderID := primitive.NewObjectID()

	for _, st := range []domain.OrderStatus{domain.OrderAccepted, domain.OrderPreparing, domain.OrderReady} {
		if err := audits.Create(ctx, &domain.OrderStatusAudit{OrderID: orderID, NewStatus: st}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, _ := audits.GetByOrderID(ctx, orderID, 2)
	if len(got) != 2 || got[0].NewStatus != domain.OrderReady {
		t.Errorf("GetByOrderID() = %+v, want two entries starting with Ready", got)
	}
}

func TestImportTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	tasks := NewImportTaskRepository()

	task := &domain.MenuImportTask{Status: domain.ImportQueued}
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_ = tasks.IncrementRetryCount(ctx, task.ID)
	_ = tasks.Complete(ctx, task.ID, 7)

	got, _ := tasks.GetByID(ctx, task.ID)
	if got.Status != domain.ImportCompleted || got.ItemsImported != 7 || got.RetryCount != 1 {
		t.Errorf("task = %+v, want completed with 7 items and 1 retry", got)
	}
	if err := tasks.Complete(ctx, primitive.NewObjectID(), 1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Complete() unknown id error = %v, want ErrNotFound", err)
	}
}

func TestQRScanCount(t *testing.T) {
	ctx := context.Background()
	qrs := NewQRCodeRepository()

	qr := &domain.QRCode{RestaurantID: primitive.NewObjectID(), TableNumber: "5"}
	_ = qrs.Create(ctx, qr)
	_ = qrs.RecordScan(ctx, qr.ID)
	_ = qrs.RecordScan(ctx, qr.ID)

	got, _ := qrs.GetByID(ctx, qr.ID)
	if got.ScanCount != 2 || got.LastScannedAt == nil {
		t.Errorf("qr = %+v, want 2 scans and a last-scanned time", got)
	}
}
