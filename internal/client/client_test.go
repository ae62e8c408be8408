package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Zyntrix-company/Qruzine/internal/cart"
	"github.com/goccy/go-json"
)

const menuResponse = `{
  "success": true,
  "data": {
    "restaurant": {"resID": "64b7f0c2a1b2c3d4e5f60718", "name": "Spice Route", "isActive": true},
    "qrCode": {"qrID": "64b7f0c2a1b2c3d4e5f60719", "tableNumber": "4", "label": "Table 4"},
    "menu": {
      "Mains": [
        {"menuID": "m1", "name": "paneer tikka", "basePrice": 220, "isAvailable": true, "isVegetarian": true},
        {"menuID": "m2", "name": "Butter Chicken", "basePrice": 320, "isAvailable": true, "isSpecialItem": true}
      ],
      "Drinks": [
        {"menuID": "d1", "name": "Lassi", "price": 80, "isAvailable": true, "isVegetarian": true}
      ]
    },
    "categories": ["Mains", "Drinks"]
  }
}`

func TestGetPublicMenu(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/menu/public/res1/qr1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, menuResponse)
	}))
	defer ts.Close()

	menu, err := New(ts.URL+"/api", ts.Client()).GetPublicMenu(context.Background(), "res1", "qr1")
	if err != nil {
		t.Fatalf("GetPublicMenu() error = %v", err)
	}

	if menu.Restaurant.Name != "Spice Route" || menu.QRCode.TableNumber != "4" {
		t.Errorf("restaurant/qr = %+v / %+v", menu.Restaurant, menu.QRCode)
	}

	wantCategories := []string{"All", "Mains", "Drinks"}
	if len(menu.Categories) != len(wantCategories) {
		t.Fatalf("categories = %v, want %v", menu.Categories, wantCategories)
	}
	for i := range wantCategories {
		if menu.Categories[i] != wantCategories[i] {
			t.Errorf("categories[%d] = %q, want %q", i, menu.Categories[i], wantCategories[i])
		}
	}

	wantOrder := []string{"Butter Chicken", "Lassi", "paneer tikka"}
	if len(menu.Items) != len(wantOrder) {
		t.Fatalf("got %d items, want %d", len(menu.Items), len(wantOrder))
	}
	for i, name := range wantOrder {
		if menu.Items[i].Name != name {
			t.Errorf("items[%d] = %q, want %q", i, menu.Items[i].Name, name)
		}
	}

	lassi := menu.Items[1]
	if lassi.Price != 80 || lassi.Category != "Drinks" || lassi.ID != "d1" {
		t.Errorf("lassi = %+v, want price fallback and category", lassi)
	}
}

func TestPlaceOrder(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantID  string
		wantErr error
	}{
		{
			name:   "placed",
			status: http.StatusCreated,
			body:   `{"success":true,"message":"Order placed successfully","data":{"orderID":"ORD-261018-ABC123","status":"Pending","total":264}}`,
			wantID: "ORD-261018-ABC123",
		},
		{
			name:    "missing order id",
			status:  http.StatusCreated,
			body:    `{"success":true,"data":{}}`,
			wantErr: ErrOrderFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req cart.OrderRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decode request: %v", err)
				}
				if req.Customer.Email != cart.GuestEmail {
					t.Errorf("email = %q, want guest default", req.Customer.Email)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer ts.Close()

			c := cart.New()
			c.Add(cart.Item{MenuID: "m1", Name: "Lassi", Price: 80})
			req := c.OrderRequest("res1", "qr1", cart.Customer{Name: "Asha", Phone: "1"}, "")

			resp, err := New(ts.URL, ts.Client()).PlaceOrder(context.Background(), req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if err.Error() != "failed to place order" {
					t.Errorf("message = %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("PlaceOrder() error = %v", err)
			}
			if resp.OrderID != tt.wantID {
				t.Errorf("orderID = %q, want %q", resp.OrderID, tt.wantID)
			}
		})
	}
}

func TestAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"order not found"}`)
	}))
	defer ts.Close()

	_, err := New(ts.URL, ts.Client()).TrackOrder(context.Background(), "ORD-1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "order not found" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestFilterItems(t *testing.T) {
	items := []cart.Item{
		{Name: "Lassi", Category: "Drinks", IsVegetarian: true},
		{Name: "Butter Chicken", Category: "Mains"},
		{Name: "Paneer Tikka", Category: "Mains", IsVegetarian: true},
	}

	tests := []struct {
		name     string
		category string
		vegOnly  bool
		want     int
	}{
		{"all", AllCategories, false, 3},
		{"empty category means all", "", false, 3},
		{"mains", "Mains", false, 2},
		{"veg mains", "Mains", true, 1},
		{"veg everything", AllCategories, true, 2},
		{"unknown category", "Desserts", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterItems(items, tt.category, tt.vegOnly); len(got) != tt.want {
				t.Errorf("FilterItems() returned %d items, want %d", len(got), tt.want)
			}
		})
	}
}

func TestTableCheckout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req cart.OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Items) != 2 || req.Items[1].VariantName != "Large" {
			t.Errorf("items = %+v", req.Items)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"data":{"orderID":"ORD-261018-XYZ789","status":"Pending","estimatedTime":20,"total":300}}`)
	}))
	defer ts.Close()

	store, err := cart.OpenBadger("", cart.DefaultTTL)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	table := New(ts.URL, ts.Client()).Table(store, "res1", "qr1")

	if _, err := table.Checkout(ctx, cart.Customer{Name: "Asha", Phone: "1"}, ""); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("empty checkout error = %v, want ErrEmptyCart", err)
	}

	_, err = table.Update(ctx, func(c *cart.Cart) {
		c.Add(cart.Item{MenuID: "m1", Name: "Lassi", Price: 80})
		c.SetQuantity(cart.Item{ID: cart.Key("m2", "Large"), MenuID: "m2", Name: "Thali - Large", Price: 200}, 1)
	})
	if err != nil {
		t.Fatalf("update cart: %v", err)
	}

	confirmation, err := table.Checkout(ctx, cart.Customer{Name: "Asha", Phone: "1"}, "no onions")
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if confirmation.OrderID != "ORD-261018-XYZ789" || confirmation.EstimatedTime != "20 mins" || confirmation.Total != 300 {
		t.Errorf("confirmation = %+v", confirmation)
	}
	if confirmation.CustomerInfo.SpecialInstructions != "no onions" {
		t.Errorf("special instructions = %q", confirmation.CustomerInfo.SpecialInstructions)
	}

	c, err := table.Cart(ctx)
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if !c.IsEmpty() {
		t.Errorf("cart has %d lines after checkout, want 0", len(c.Items))
	}
}
