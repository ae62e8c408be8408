// Package client talks to the ordering API on behalf of a guest device.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/cart"
	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/goccy/go-json"
)

// ErrOrderFailed is returned when the server accepts the request but does not
// hand back an order number.
var ErrOrderFailed = errors.New("failed to place order")

// AllCategories is the pseudo-category that matches every item.
const AllCategories = "All"

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL, e.g. http://host:5000/api.
// A nil httpClient gets a 15 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type QRInfo struct {
	QRID        string `json:"qrID"`
	TableNumber string `json:"tableNumber"`
	Label       string `json:"label"`
}

type Menu struct {
	Restaurant domain.Restaurant
	QRCode     QRInfo
	Items      []cart.Item
	Categories []string
}

type menuItem struct {
	MenuID        string           `json:"menuID"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	BasePrice     *float64         `json:"basePrice"`
	Price         *float64         `json:"price"`
	Image         string           `json:"image"`
	IsVegetarian  bool             `json:"isVegetarian"`
	IsSpecialItem bool             `json:"isSpecialItem"`
	IsAvailable   bool             `json:"isAvailable"`
	TaxPercentage *float64         `json:"taxPercentage"`
	Variants      []domain.Variant `json:"variants"`
}

func (it menuItem) price() float64 {
	switch {
	case it.BasePrice != nil:
		return *it.BasePrice
	case it.Price != nil:
		return *it.Price
	default:
		return 0
	}
}

type publicMenu struct {
	Restaurant domain.Restaurant     `json:"restaurant"`
	QRCode     QRInfo                `json:"qrCode"`
	Menu       map[string][]menuItem `json:"menu"`
	Categories []string              `json:"categories"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// GetPublicMenu loads the menu for one table. Items are flattened with their
// category attached, special items first and then by name.
func (c *Client) GetPublicMenu(ctx context.Context, resID, qrID string) (*Menu, error) {
	path := "/menu/public/" + url.PathEscape(resID) + "/" + url.PathEscape(qrID)

	var data publicMenu
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	if data.Menu == nil {
		return nil, errors.New("invalid menu response")
	}

	names := data.Categories
	if len(names) == 0 {
		for name := range data.Menu {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	var items []cart.Item
	for _, category := range names {
		for _, it := range data.Menu[category] {
			items = append(items, cart.Item{
				ID:            it.MenuID,
				MenuID:        it.MenuID,
				Name:          it.Name,
				Description:   it.Description,
				Category:      category,
				Image:         it.Image,
				Price:         it.price(),
				TaxPercentage: it.TaxPercentage,
				IsAvailable:   it.IsAvailable,
				IsVegetarian:  it.IsVegetarian,
				IsSpecialItem: it.IsSpecialItem,
				Variants:      it.Variants,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsSpecialItem != items[j].IsSpecialItem {
			return items[i].IsSpecialItem
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	return &Menu{
		Restaurant: data.Restaurant,
		QRCode:     data.QRCode,
		Items:      items,
		Categories: append([]string{AllCategories}, names...),
	}, nil
}

// PlaceOrder submits a checkout payload.
func (c *Client) PlaceOrder(ctx context.Context, req cart.OrderRequest) (*cart.OrderResponse, error) {
	var resp cart.OrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", req, &resp); err != nil {
		return nil, err
	}
	if resp.OrderID == "" {
		return nil, ErrOrderFailed
	}

	return &resp, nil
}

type TrackedOrder struct {
	OrderID        string             `json:"orderID"`
	Status         string             `json:"status"`
	TableNumber    string             `json:"tableNumber"`
	Items          []domain.OrderItem `json:"items"`
	SpecialRequest string             `json:"specialRequest"`
	Subtotal       float64            `json:"subtotal"`
	Tax            float64            `json:"tax"`
	Total          float64            `json:"total"`
	EstimatedTime  int                `json:"estimatedTime"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func (c *Client) TrackOrder(ctx context.Context, orderID string) (*TrackedOrder, error) {
	var order TrackedOrder
	if err := c.do(ctx, http.MethodGet, "/orders/track/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// FilterItems narrows items to a category and, optionally, vegetarian dishes.
func FilterItems(items []cart.Item, category string, vegOnly bool) []cart.Item {
	out := make([]cart.Item, 0, len(items))
	for _, it := range items {
		if category != "" && category != AllCategories && it.Category != category {
			continue
		}
		if vegOnly && !it.IsVegetarian {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if len(env.Data) == 0 || out == nil {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
