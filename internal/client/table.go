package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zyntrix-company/Qruzine/internal/cart"
)

var ErrEmptyCart = errors.New("cart is empty")

// Table is a guest session at one restaurant table. The cart survives
// restarts through store, keyed by cart.StorageKey.
type Table struct {
	client *Client
	store  cart.Store
	resID  string
	qrID   string
}

func (c *Client) Table(store cart.Store, resID, qrID string) *Table {
	return &Table{
		client: c,
		store:  store,
		resID:  resID,
		qrID:   qrID,
	}
}

func (t *Table) key() string {
	return cart.StorageKey(t.resID, t.qrID)
}

func (t *Table) Menu(ctx context.Context) (*Menu, error) {
	return t.client.GetPublicMenu(ctx, t.resID, t.qrID)
}

func (t *Table) Cart(ctx context.Context) (*cart.Cart, error) {
	return t.store.Load(ctx, t.key())
}

// Update loads the cart, applies fn and saves the result.
func (t *Table) Update(ctx context.Context, fn func(c *cart.Cart)) (*cart.Cart, error) {
	c, err := t.store.Load(ctx, t.key())
	if err != nil {
		return nil, err
	}

	fn(c)

	if err := t.store.Save(ctx, t.key(), c); err != nil {
		return nil, err
	}
	return c, nil
}

// Checkout places the stored cart as an order. The cart is cleared only after
// the server confirms the order.
func (t *Table) Checkout(ctx context.Context, customer cart.Customer, specialRequest string) (*cart.Confirmation, error) {
	c, err := t.store.Load(ctx, t.key())
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	resp, err := t.client.PlaceOrder(ctx, c.OrderRequest(t.resID, t.qrID, customer, specialRequest))
	if err != nil {
		return nil, err
	}

	confirmation := cart.NewConfirmation(*resp, c, customer, specialRequest)

	if err := t.store.Delete(ctx, t.key()); err != nil {
		return &confirmation, fmt.Errorf("order %s placed but cart was not cleared: %w", resp.OrderID, err)
	}
	return &confirmation, nil
}
