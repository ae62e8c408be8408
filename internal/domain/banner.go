package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Banner struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID primitive.ObjectID `bson:"restaurant_id" json:"restaurantID"`
	Title        string             `bson:"title" json:"title"`
	Image        string             `bson:"image" json:"image"`
	Link         string             `bson:"link" json:"link"`
	DisplayOrder int                `bson:"display_order" json:"displayOrder"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}
