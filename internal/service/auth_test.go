package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/auth"
	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/store/memory"
	"go.uber.org/zap"
)

func TestLoginAndSeed(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	jwt, err := auth.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	svc := NewAuthService(store.Users, jwt, zap.NewNop().Sugar())

	if err := svc.SeedAdmin(ctx, "Admin", "Admin@Example.com", "secret123"); err != nil {
		t.Fatalf("SeedAdmin() error = %v", err)
	}
	if err := svc.SeedAdmin(ctx, "Admin", "other@example.com", "secret123"); err != nil {
		t.Fatalf("second SeedAdmin() error = %v", err)
	}
	if n, _ := store.Users.CountByRole(ctx, domain.RoleAdmin); n != 1 {
		t.Fatalf("admins = %d, want 1", n)
	}

	if _, err := svc.Login(ctx, "admin@example.com", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Login() bad password error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Login() unknown email error = %v, want ErrUnauthorized", err)
	}

	res, err := svc.Login(ctx, " admin@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	claims, err := jwt.ValidateToken(res.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Role != domain.RoleAdmin || claims.UserID != res.User.ID.Hex() {
		t.Errorf("claims = %+v", claims)
	}
	if res.User.LastLoginAt == nil {
		t.Error("LastLoginAt not recorded")
	}

	if err := svc.ChangePassword(ctx, res.User.ID, "wrong", "newsecret"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("ChangePassword() wrong current error = %v", err)
	}
	if err := svc.ChangePassword(ctx, res.User.ID, "secret123", "newsecret"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if _, err := svc.Login(ctx, "admin@example.com", "newsecret"); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}
}

func TestSubadminLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := NewUserService(f.store.Users, f.store.Restaurants, zap.NewNop().Sugar())

	if _, err := users.CreateSubadmin(ctx, SubadminInput{
		Name:         "Manager",
		Email:        "m@example.com",
		Password:     "secret1",
		RestaurantID: "not-an-id",
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("CreateSubadmin() bad restaurant error = %v", err)
	}

	user, err := users.CreateSubadmin(ctx, SubadminInput{
		Name:         "Manager",
		Email:        "m@example.com",
		Password:     "secret1",
		RestaurantID: f.restaurant.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("CreateSubadmin() error = %v", err)
	}
	if user.Role != domain.RoleSubadmin || *user.RestaurantID != f.restaurant.ID {
		t.Errorf("user = %+v", user)
	}

	if _, err := users.CreateSubadmin(ctx, SubadminInput{
		Name:         "Dup",
		Email:        "M@example.com",
		Password:     "secret1",
		RestaurantID: f.restaurant.ID.Hex(),
	}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate email error = %v, want ErrConflict", err)
	}

	stats := NewStatsService(f.store.Restaurants, f.store.Users, f.store.Orders, f.store.MenuItems, zap.NewNop().Sugar())
	got, err := stats.Admin(ctx)
	if err != nil {
		t.Fatalf("Admin() error = %v", err)
	}
	if got.Restaurants != 1 || got.Subadmins != 1 {
		t.Errorf("stats = %+v", got)
	}

	if err := users.DeleteSubadmin(ctx, user.ID); err != nil {
		t.Fatalf("DeleteSubadmin() error = %v", err)
	}
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.addItem(t, domain.MenuItem{Name: "Dal", Category: "Mains", Price: 100, IsAvailable: true})

	for range 2 {
		if _, err := f.orders.Place(ctx, PlaceOrderInput{
			ResID:    f.restaurant.ID.Hex(),
			QRID:     f.qr.ID.Hex(),
			Customer: PlaceOrderCustomer{Name: "Asha", Phone: "9000000000"},
			Items:    []PlaceOrderItem{{MenuID: item.ID.Hex(), Quantity: 1}},
		}); err != nil {
			t.Fatalf("Place() error = %v", err)
		}
	}

	stats := NewStatsService(f.store.Restaurants, f.store.Users, f.store.Orders, f.store.MenuItems, zap.NewNop().Sugar())
	d, err := stats.Dashboard(ctx, f.restaurant.ID)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if d.OrdersToday != 2 || d.RevenueToday != 220 || d.PendingOrders != 2 || d.MenuItems != 1 {
		t.Errorf("Dashboard() = %+v", d)
	}
}
