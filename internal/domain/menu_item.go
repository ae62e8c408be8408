package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPreparationTime is used when a menu item has no preparation time set.
const DefaultPreparationTime = 15

type MenuItem struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"menuID"`
	RestaurantID    primitive.ObjectID `bson:"restaurant_id" json:"restaurantID"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description" json:"description"`
	Category        string             `bson:"category" json:"category"`
	Price           float64            `bson:"price" json:"price"`
	Image           string             `bson:"image" json:"image"`
	IsVegetarian    bool               `bson:"is_vegetarian" json:"isVegetarian"`
	IsSpecialItem   bool               `bson:"is_special_item" json:"isSpecialItem"`
	IsAvailable     bool               `bson:"is_available" json:"isAvailable"`
	TaxPercentage   *float64           `bson:"tax_percentage,omitempty" json:"taxPercentage,omitempty"`
	PreparationTime int                `bson:"preparation_time" json:"preparationTime"`
	Variants        []Variant          `bson:"variants" json:"variants"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Variant is a priced sub-option of a menu item, such as a size.
type Variant struct {
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	IsAvailable bool    `bson:"is_available" json:"isAvailable"`
}

// FindVariant looks a variant up by name.
func (m *MenuItem) FindVariant(name string) (Variant, bool) {
	for _, v := range m.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// AvailableVariants returns the variants guests can order.
func (m *MenuItem) AvailableVariants() []Variant {
	out := make([]Variant, 0, len(m.Variants))
	for _, v := range m.Variants {
		if v.IsAvailable {
			out = append(out, v)
		}
	}
	return out
}
