package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleSubadmin = "subadmin"
)

type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Email        string              `bson:"email" json:"email"`
	PasswordHash string              `bson:"password_hash" json:"-"`
	Role         string              `bson:"role" json:"role"`
	RestaurantID *primitive.ObjectID `bson:"restaurant_id,omitempty" json:"restaurantID,omitempty"`
	IsActive     bool                `bson:"is_active" json:"isActive"`
	LastLoginAt  *time.Time          `bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updatedAt"`
}
