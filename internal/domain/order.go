package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderAccepted  OrderStatus = "Accepted"
	OrderPreparing OrderStatus = "Preparing"
	OrderReady     OrderStatus = "Ready"
	OrderServed    OrderStatus = "Served"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every assignable status.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderAccepted,
	OrderPreparing,
	OrderReady,
	OrderServed,
	OrderCompleted,
	OrderCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

type Customer struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

type OrderItem struct {
	MenuID              primitive.ObjectID `bson:"menu_id" json:"menuID"`
	Name                string             `bson:"name" json:"name"`
	VariantName         string             `bson:"variant_name,omitempty" json:"variantName,omitempty"`
	Quantity            int                `bson:"quantity" json:"quantity"`
	UnitPrice           float64            `bson:"unit_price" json:"unitPrice"`
	TaxPercentage       float64            `bson:"tax_percentage" json:"taxPercentage"`
	LineTotal           float64            `bson:"line_total" json:"lineTotal"`
	Tax                 float64            `bson:"tax" json:"tax"`
	SpecialInstructions string             `bson:"special_instructions,omitempty" json:"specialInstructions,omitempty"`
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID        string             `bson:"order_id" json:"orderID"`
	RestaurantID   primitive.ObjectID `bson:"restaurant_id" json:"restaurantID"`
	QRID           primitive.ObjectID `bson:"qr_id" json:"qrID"`
	TableNumber    string             `bson:"table_number" json:"tableNumber"`
	Customer       Customer           `bson:"customer" json:"customer"`
	Items          []OrderItem        `bson:"items" json:"items"`
	SpecialRequest string             `bson:"special_request,omitempty" json:"specialRequest,omitempty"`
	Subtotal       float64            `bson:"subtotal" json:"subtotal"`
	Tax            float64            `bson:"tax" json:"tax"`
	Total          float64            `bson:"total" json:"total"`
	Status         OrderStatus        `bson:"status" json:"status"`
	EstimatedTime  int                `bson:"estimated_time" json:"estimatedTime"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// OrderFilter narrows order listings. Zero values mean "any".
type OrderFilter struct {
	RestaurantID *primitive.ObjectID
	Status       OrderStatus
	From         time.Time
	To           time.Time
	Page         int
	Limit        int
}

type OrderStats struct {
	Orders        int64   `json:"orders"`
	PendingOrders int64   `json:"pendingOrders"`
	Revenue       float64 `json:"revenue"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Bounds returns the 1-based page and the clamped page size.
func (f OrderFilter) Bounds() (page, limit int) {
	page, limit = f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}
