package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatusAudit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   primitive.ObjectID `bson:"order_id" json:"orderRef"`
	OldStatus OrderStatus        `bson:"old_status" json:"oldStatus"`
	NewStatus OrderStatus        `bson:"new_status" json:"newStatus"`
	Reason    string             `bson:"reason" json:"reason"`
	UserID    string             `bson:"user_id" json:"userID"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
