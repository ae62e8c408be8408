package domain

import "time"

// OrderEvent is published to the notification queue whenever an order is
// placed or changes status.
type OrderEvent struct {
	EventType    string      `json:"event_type"`
	OrderRef     string      `json:"order_ref"`
	OrderID      string      `json:"order_id"`
	RestaurantID string      `json:"restaurant_id"`
	Restaurant   string      `json:"restaurant"`
	Customer     Customer    `json:"customer"`
	Total        float64     `json:"total"`
	OldStatus    OrderStatus `json:"old_status,omitempty"`
	NewStatus    OrderStatus `json:"new_status"`
	Timestamp    time.Time   `json:"timestamp"`
}

type MenuImportMessage struct {
	TaskID string `json:"task_id"`
}

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)
