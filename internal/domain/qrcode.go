package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QRCode ties a printed code to a restaurant table.
type QRCode struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"qrID"`
	RestaurantID  primitive.ObjectID `bson:"restaurant_id" json:"restaurantID"`
	TableNumber   string             `bson:"table_number" json:"tableNumber"`
	Label         string             `bson:"label" json:"label"`
	IsActive      bool               `bson:"is_active" json:"isActive"`
	ScanCount     int64              `bson:"scan_count" json:"scanCount"`
	LastScannedAt *time.Time         `bson:"last_scanned_at,omitempty" json:"lastScannedAt,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
