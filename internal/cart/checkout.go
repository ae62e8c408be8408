package cart

import (
	"strconv"
	"time"
)

const GuestEmail = "guest@example.com"

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type OrderRequestItem struct {
	MenuID              string `json:"menuID"`
	Quantity            int    `json:"quantity"`
	VariantName         string `json:"variantName,omitempty"`
	SpecialInstructions string `json:"specialInstructions"`
}

// OrderRequest is the body of POST /api/orders.
type OrderRequest struct {
	ResID          string             `json:"resID"`
	QRID           string             `json:"qrID"`
	Customer       Customer           `json:"customer"`
	Items          []OrderRequestItem `json:"items"`
	SpecialRequest string             `json:"specialRequest"`
}

// OrderResponse is the data object returned for a placed order.
type OrderResponse struct {
	OrderID       string    `json:"orderID"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	EstimatedTime *int      `json:"estimatedTime,omitempty"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	Total         float64   `json:"total"`
}

type CustomerInfo struct {
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// Confirmation is what the guest sees after checkout.
type Confirmation struct {
	OrderID       string       `json:"orderId"`
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	Items         []Item       `json:"items"`
	Total         float64      `json:"total"`
	Timestamp     time.Time    `json:"timestamp"`
	Status        string       `json:"status"`
	EstimatedTime string       `json:"estimatedTime"`
}

// OrderRequest maps cart lines to the checkout payload.
func (c *Cart) OrderRequest(resID, qrID string, customer Customer, specialRequest string) OrderRequest {
	if customer.Email == "" {
		customer.Email = GuestEmail
	}

	items := make([]OrderRequestItem, 0, len(c.Items))
	for _, it := range c.Items {
		menuID, variant := ParseKey(it.key())
		items = append(items, OrderRequestItem{
			MenuID:              menuID,
			Quantity:            it.Quantity,
			VariantName:         variant,
			SpecialInstructions: it.SpecialInstructions,
		})
	}

	return OrderRequest{
		ResID:          resID,
		QRID:           qrID,
		Customer:       customer,
		Items:          items,
		SpecialRequest: specialRequest,
	}
}

// NewConfirmation combines the server response with the submitted cart. The
// server total wins over the locally computed one when present.
func NewConfirmation(resp OrderResponse, c *Cart, customer Customer, instructions string) Confirmation {
	if customer.Email == "" {
		customer.Email = GuestEmail
	}

	total := resp.Total
	if total == 0 {
		total = c.Total()
	}

	timestamp := resp.CreatedAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	status := resp.Status
	if status == "" {
		status = "Pending"
	}

	estimated := "—"
	if resp.EstimatedTime != nil {
		estimated = strconv.Itoa(*resp.EstimatedTime) + " mins"
	}

	return Confirmation{
		OrderID: resp.OrderID,
		CustomerInfo: CustomerInfo{
			Name:                customer.Name,
			Phone:               customer.Phone,
			Email:               customer.Email,
			SpecialInstructions: instructions,
		},
		Items:         append([]Item(nil), c.Items...),
		Total:         total,
		Timestamp:     timestamp,
		Status:        status,
		EstimatedTime: estimated,
	}
}
