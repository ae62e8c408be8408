package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/auth"
	"github.com/Zyntrix-company/Qruzine/internal/cart"
	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/queue"
	"github.com/Zyntrix-company/Qruzine/internal/service"
	"github.com/Zyntrix-company/Qruzine/internal/store/memory"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type testServer struct {
	handler    http.Handler
	jwt        *auth.JWTManager
	store      *memory.Store
	users      *service.UserService
	restaurant *domain.Restaurant
	qr         *domain.QRCode
	item       *domain.MenuItem
	admin      *domain.User
	subadmin   *domain.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	store := memory.New()
	broker := queue.NewInlineBroker(queue.Config{MaxRetries: 1, RetryDelay: time.Millisecond})
	t.Cleanup(func() { _ = broker.Close() })

	jwtManager, err := auth.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("jwt manager: %v", err)
	}

	restaurant := &domain.Restaurant{Name: "Spice Route", Currency: domain.DefaultCurrency, IsActive: true}
	if err := store.Restaurants.Create(ctx, restaurant); err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	qr := &domain.QRCode{RestaurantID: restaurant.ID, TableNumber: "4", Label: "Table 4", IsActive: true}
	if err := store.QRCodes.Create(ctx, qr); err != nil {
		t.Fatalf("create qr code: %v", err)
	}
	item := &domain.MenuItem{
		RestaurantID:    restaurant.ID,
		Name:            "Masala Dosa",
		Category:        "Mains",
		Price:           120,
		IsAvailable:     true,
		PreparationTime: 15,
	}
	if err := store.MenuItems.Create(ctx, item); err != nil {
		t.Fatalf("create menu item: %v", err)
	}

	admin := &domain.User{Name: "Admin", Email: "admin@qruzine.app", Role: domain.RoleAdmin, IsActive: true}
	if err := store.Users.Create(ctx, admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	subadmin := &domain.User{
		Name:         "Manager",
		Email:        "manager@qruzine.app",
		Role:         domain.RoleSubadmin,
		RestaurantID: &restaurant.ID,
		IsActive:     true,
	}
	if err := store.Users.Create(ctx, subadmin); err != nil {
		t.Fatalf("create subadmin: %v", err)
	}

	cfg := config{
		env:           "test",
		frontendURLs:  defaultOrigins,
		storageDriver: "memory",
		upload:        uploadConfig{driver: "s3"},
	}

	app := &application{
		config:    cfg,
		logger:    logger,
		startedAt: time.Now(),
		db:        store,
		broker:    broker,
		jwt:       jwtManager,
		services: services{
			auth:        service.NewAuthService(store.Users, jwtManager, logger),
			restaurants: service.NewRestaurantService(store.Restaurants, logger),
			users:       service.NewUserService(store.Users, store.Restaurants, logger),
			menu:        service.NewMenuService(store.MenuItems, store.Categories, store.Restaurants, store.QRCodes, logger),
			categories:  service.NewCategoryService(store.Categories, logger),
			qrCodes:     service.NewQRCodeService(store.QRCodes, store.Restaurants, defaultOrigins[0], logger),
			banners:     service.NewBannerService(store.Banners, logger),
			orders: service.NewOrderService(
				store.Orders, store.OrderAudits, store.MenuItems,
				store.Restaurants, store.QRCodes, store, broker, logger,
			),
			stats: service.NewStatsService(store.Restaurants, store.Users, store.Orders, store.MenuItems, logger),
		},
	}

	return &testServer{
		handler:    app.mount(),
		jwt:        jwtManager,
		store:      store,
		users:      app.services.users,
		restaurant: restaurant,
		qr:         qr,
		item:       item,
		admin:      admin,
		subadmin:   subadmin,
	}
}

// token signs claims as they were at login; later account changes are not
// reflected in them.
func (s *testServer) token(t *testing.T, user *domain.User) string {
	t.Helper()

	restaurantID := ""
	if user.RestaurantID != nil {
		restaurantID = user.RestaurantID.Hex()
	}
	token, err := s.jwt.GenerateToken(user.ID.Hex(), user.Role, restaurantID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func TestPlaceOrder(t *testing.T) {
	srv := newTestServer(t)

	c := cart.New()
	c.SetQuantity(cart.Item{ID: srv.item.ID.Hex(), MenuID: srv.item.ID.Hex(), Name: srv.item.Name, Price: 1}, 2)
	body, err := json.Marshal(c.OrderRequest(
		srv.restaurant.ID.Hex(),
		srv.qr.ID.Hex(),
		cart.Customer{Name: "Asha", Phone: "+919800000000"},
		"",
	))
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := srv.do(req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var resp struct {
		Success bool               `json:"success"`
		Data    cart.OrderResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Data.OrderID == "" {
		t.Fatalf("response = %+v, want success with orderID", resp)
	}
	// client prices are ignored
	if resp.Data.Subtotal != 240 {
		t.Errorf("subtotal = %v, want 240", resp.Data.Subtotal)
	}
	if resp.Data.Total != 264 {
		t.Errorf("total = %v, want 264", resp.Data.Total)
	}

	track := srv.do(httptest.NewRequest(http.MethodGet, "/api/orders/track/"+resp.Data.OrderID, nil))
	if track.Code != http.StatusOK {
		t.Errorf("track status = %d, want %d", track.Code, http.StatusOK)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"resID":`, http.StatusBadRequest},
		{"missing items", `{"resID":"` + srv.restaurant.ID.Hex() + `","qrID":"` + srv.qr.ID.Hex() + `","customer":{"name":"A","phone":"1"},"items":[]}`, http.StatusBadRequest},
		{"missing customer name", `{"resID":"` + srv.restaurant.ID.Hex() + `","qrID":"` + srv.qr.ID.Hex() + `","customer":{"phone":"1"},"items":[{"menuID":"` + srv.item.ID.Hex() + `","quantity":1}]}`, http.StatusBadRequest},
		{"unknown restaurant", `{"resID":"64b7f0c2a1b2c3d4e5f60718","qrID":"` + srv.qr.ID.Hex() + `","customer":{"name":"A","phone":"1"},"items":[{"menuID":"` + srv.item.ID.Hex() + `","quantity":1}]}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			if rr := srv.do(req); rr.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		origin string
		want   int
	}{
		{"no origin", "", http.StatusOK},
		{"allowed origin", "http://localhost:3000", http.StatusOK},
		{"unlisted origin", "http://evil.example", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			rr := srv.do(req)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusForbidden && !strings.Contains(rr.Body.String(), "CORS blocked for origin: "+tt.origin) {
				t.Errorf("body = %s, want CORS message", rr.Body.String())
			}
			if tt.origin == "http://localhost:3000" && rr.Header().Get("Access-Control-Allow-Origin") != tt.origin {
				t.Errorf("Access-Control-Allow-Origin = %q", rr.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestRouteNotFound(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "Route not found" {
		t.Errorf("message = %q, want %q", body["message"], "Route not found")
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"subadmin token", srv.token(t, srv.subadmin), http.StatusForbidden},
		{"admin token", srv.token(t, srv.admin), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/restaurants", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			if rr := srv.do(req); rr.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestTokenFollowsStoredAccount(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		change func(t *testing.T, srv *testServer)
		want   int
	}{
		{"unchanged account", func(*testing.T, *testServer) {}, http.StatusOK},
		{
			name: "deleted account",
			change: func(t *testing.T, srv *testServer) {
				if err := srv.users.DeleteSubadmin(ctx, srv.subadmin.ID); err != nil {
					t.Fatalf("DeleteSubadmin() error = %v", err)
				}
			},
			want: http.StatusUnauthorized,
		},
		{
			name: "deactivated account",
			change: func(t *testing.T, srv *testServer) {
				inactive := false
				if _, err := srv.users.UpdateSubadmin(ctx, srv.subadmin.ID, service.SubadminUpdate{IsActive: &inactive}); err != nil {
					t.Fatalf("UpdateSubadmin() error = %v", err)
				}
			},
			want: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			token := srv.token(t, srv.subadmin)
			tt.change(t, srv)

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			if rr := srv.do(req); rr.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.want, rr.Body.String())
			}
		})
	}

	t.Run("token for unknown user", func(t *testing.T) {
		srv := newTestServer(t)
		token, err := srv.jwt.GenerateToken("64b7f0c2a1b2c3d4e5f60718", domain.RoleAdmin, "")
		if err != nil {
			t.Fatal(err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		if rr := srv.do(req); rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
		}
	})
}

func TestMovedSubadminUsesNewRestaurant(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	token := srv.token(t, srv.subadmin)

	other := &domain.Restaurant{Name: "Harbour Grill", Currency: domain.DefaultCurrency, IsActive: true}
	if err := srv.store.Restaurants.Create(ctx, other); err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	moved := other.ID.Hex()
	if _, err := srv.users.UpdateSubadmin(ctx, srv.subadmin.ID, service.SubadminUpdate{RestaurantID: &moved}); err != nil {
		t.Fatalf("UpdateSubadmin() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/subadmin/restaurant", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := srv.do(req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Harbour Grill") || strings.Contains(rr.Body.String(), "Spice Route") {
		t.Errorf("body = %s, want the new restaurant only", rr.Body.String())
	}
}

func TestRecoveredPanicIsJSON(t *testing.T) {
	app := &application{config: config{env: "development"}, logger: zap.NewNop().Sugar()}

	h := app.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map write")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v (%s)", err, rr.Body.String())
	}
	if body["message"] != "Something went wrong!" {
		t.Errorf("message = %v", body["message"])
	}
	if body["error"] != "panic: nil map write" {
		t.Errorf("error = %v, want panic text in development", body["error"])
	}
}

func TestUploadsHideDirectoryListing(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "restaurant-menu"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "restaurant-menu", "dal.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := &application{
		config: config{frontendURLs: defaultOrigins, upload: uploadConfig{driver: "local", dir: dir}},
		logger: zap.NewNop().Sugar(),
	}
	handler := app.mount()

	tests := []struct {
		path string
		want int
	}{
		{"/uploads/restaurant-menu/dal.png", http.StatusOK},
		{"/uploads/restaurant-menu/", http.StatusNotFound},
		{"/uploads/", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusNotFound && strings.Contains(rr.Body.String(), "dal.png") {
				t.Errorf("listing leaked: %s", rr.Body.String())
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "OK" {
		t.Errorf("status = %q, want OK", resp.Status)
	}
	if resp.Services["queue"] != "inline" {
		t.Errorf("queue = %q, want inline", resp.Services["queue"])
	}
}

func TestPublicMenu(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(httptest.NewRequest(http.MethodGet,
		"/api/menu/public/"+srv.restaurant.ID.Hex()+"/"+srv.qr.ID.Hex(), nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Masala Dosa") {
		t.Errorf("body = %s, want menu item", rr.Body.String())
	}
}
