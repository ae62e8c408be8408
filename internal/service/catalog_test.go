package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestQRCodeService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewQRCodeService(f.store.QRCodes, f.store.Restaurants, "http://localhost:3000/", zap.NewNop().Sugar())

	view, err := svc.Create(ctx, f.restaurant.ID, QRCodeInput{TableNumber: ptr("12")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if view.Label != "Table 12" {
		t.Errorf("label = %q, want default %q", view.Label, "Table 12")
	}
	wantURL := "http://localhost:3000/menu/" + f.restaurant.ID.Hex() + "/" + view.ID.Hex()
	if view.MenuURL != wantURL {
		t.Errorf("menu url = %q, want %q", view.MenuURL, wantURL)
	}

	if _, err := svc.Create(ctx, f.restaurant.ID, QRCodeInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Create() without table error = %v, want ErrInvalidInput", err)
	}

	resolved, err := svc.Resolve(ctx, view.ID)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.RestaurantName != f.restaurant.Name || resolved.ResID != f.restaurant.ID {
		t.Errorf("resolved = %+v", resolved)
	}

	if _, err := svc.Update(ctx, f.restaurant.ID, view.ID, QRCodeInput{IsActive: ptr(false)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if _, err := svc.Resolve(ctx, view.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Resolve() of inactive code error = %v, want ErrNotFound", err)
	}

	if _, err := svc.Get(ctx, primitive.NewObjectID(), view.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() from another restaurant error = %v, want ErrNotFound", err)
	}
}

func TestQRCodeImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewQRCodeService(f.store.QRCodes, f.store.Restaurants, "http://localhost:3000", zap.NewNop().Sugar())

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"default size", 0, false},
		{"custom size", 256, false},
		{"too small", 64, true},
		{"too large", 4096, true},
	}

	pngMagic := []byte("\x89PNG\r\n\x1a\n")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := svc.Image(ctx, f.restaurant.ID, f.qr.ID, tt.size)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Fatalf("Image() error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Image() error = %v", err)
			}
			if !bytes.HasPrefix(img, pngMagic) {
				t.Error("Image() did not return a PNG")
			}
		})
	}
}

func TestCategoryService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCategoryService(f.store.Categories, zap.NewNop().Sugar())

	if _, err := svc.Create(ctx, f.restaurant.ID, CategoryInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Create() without name error = %v, want ErrInvalidInput", err)
	}

	active, err := svc.Create(ctx, f.restaurant.ID, CategoryInput{Name: ptr("Mains")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !active.IsActive {
		t.Error("new category should default to active")
	}
	if _, err := svc.Create(ctx, f.restaurant.ID, CategoryInput{Name: ptr("Hidden"), IsActive: ptr(false)}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	public, err := svc.PublicList(ctx, f.restaurant.ID)
	if err != nil {
		t.Fatalf("PublicList() error = %v", err)
	}
	if len(public) != 1 || public[0].Name != "Mains" {
		t.Errorf("PublicList() = %+v, want only Mains", public)
	}

	if _, err := svc.Get(ctx, primitive.NewObjectID(), active.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() from another restaurant error = %v, want ErrNotFound", err)
	}

	if err := svc.Delete(ctx, f.restaurant.ID, active.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, f.restaurant.ID, active.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestBannerService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewBannerService(f.store.Banners, zap.NewNop().Sugar())

	if _, err := svc.Create(ctx, f.restaurant.ID, BannerInput{Title: ptr("No image")}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Create() without image error = %v, want ErrInvalidInput", err)
	}

	second, err := svc.Create(ctx, f.restaurant.ID, BannerInput{Image: ptr("http://img/2.png"), DisplayOrder: ptr(2)})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, f.restaurant.ID, BannerInput{Image: ptr("http://img/1.png"), DisplayOrder: ptr(1)}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, f.restaurant.ID, BannerInput{Image: ptr("http://img/off.png"), IsActive: ptr(false)}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	public, err := svc.PublicList(ctx, f.restaurant.ID)
	if err != nil {
		t.Fatalf("PublicList() error = %v", err)
	}
	if len(public) != 2 {
		t.Fatalf("PublicList() returned %d banners, want 2 active", len(public))
	}
	if public[0].DisplayOrder != 1 || public[1].ID != second.ID {
		t.Errorf("PublicList() order = %d, %d; want ascending displayOrder", public[0].DisplayOrder, public[1].DisplayOrder)
	}
}
