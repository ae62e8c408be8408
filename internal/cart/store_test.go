package cart

import (
	"context"
	"testing"
)

func TestStorageKey(t *testing.T) {
	if got := StorageKey("r1", "q1"); got != "qr_cart_r1_q1" {
		t.Errorf("StorageKey() = %q", got)
	}
}

func TestStores(t *testing.T) {
	badgerStore, err := OpenBadger("", 0)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = badgerStore.Close() })

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"badger": badgerStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := StorageKey("r1", "q1")

			empty, err := store.Load(ctx, key)
			if err != nil || !empty.IsEmpty() {
				t.Fatalf("Load() unknown key = %+v, %v", empty, err)
			}

			c := New()
			c.SetQuantity(Item{MenuID: "m1", Name: "Soup", Price: 4.5}, 2)
			if err := store.Save(ctx, key, c); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			loaded, err := store.Load(ctx, key)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if loaded.TotalItems() != 2 || loaded.Subtotal() != 9 {
				t.Errorf("Load() = %+v", loaded.Items)
			}

			if other, _ := store.Load(ctx, StorageKey("r1", "q2")); !other.IsEmpty() {
				t.Error("cart leaked across tables")
			}

			if err := store.Delete(ctx, key); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if gone, _ := store.Load(ctx, key); !gone.IsEmpty() {
				t.Error("Load() after Delete() not empty")
			}
		})
	}
}
