package cart

import (
	"strings"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
)

type Item struct {
	ID                  string           `json:"id"`
	MenuID              string           `json:"menuID"`
	Name                string           `json:"name"`
	Description         string           `json:"description,omitempty"`
	Category            string           `json:"category,omitempty"`
	Image               string           `json:"image,omitempty"`
	Price               float64          `json:"price"`
	TaxPercentage       *float64         `json:"taxPercentage,omitempty"`
	Quantity            int              `json:"quantity"`
	SpecialInstructions string           `json:"specialInstructions,omitempty"`
	IsAvailable         bool             `json:"isAvailable"`
	IsVegetarian        bool             `json:"isVegetarian"`
	IsSpecialItem       bool             `json:"isSpecialItem"`
	Variants            []domain.Variant `json:"variants,omitempty"`
}

func (it Item) key() string {
	if it.ID != "" {
		return it.ID
	}
	return Key(it.MenuID, "")
}

// Cart is an ordered list of lines with unique keys.
type Cart struct {
	Items []Item `json:"items"`
}

func New() *Cart {
	return &Cart{Items: []Item{}}
}

func (c *Cart) index(key string) int {
	for i := range c.Items {
		if c.Items[i].ID == key {
			return i
		}
	}
	return -1
}

func (c *Cart) Find(key string) (Item, bool) {
	if i := c.index(key); i >= 0 {
		return c.Items[i], true
	}
	return Item{}, false
}

// Add puts one unit of item in the cart, bumping the quantity of an existing
// line with the same key.
func (c *Cart) Add(item Item) {
	item.ID = item.key()
	if i := c.index(item.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// SetQuantity sets an exact quantity, appending the line when missing.
// A quantity of zero or less removes it.
func (c *Cart) SetQuantity(item Item, quantity int) {
	item.ID = item.key()
	if quantity <= 0 {
		c.Remove(item.ID)
		return
	}
	if i := c.index(item.ID); i >= 0 {
		c.Items[i].Quantity = quantity
		return
	}
	item.Quantity = quantity
	c.Items = append(c.Items, item)
}

// UpdateQuantity changes an existing line. It reports whether the key was
// present.
func (c *Cart) UpdateQuantity(key string, quantity int) bool {
	i := c.index(key)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return true
	}
	c.Items[i].Quantity = quantity
	return true
}

func (c *Cart) Remove(key string) {
	if i := c.index(key); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.Items = []Item{}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return Round2(sum)
}

func (c *Cart) Tax() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += LineTax(it.Price, it.Quantity, TaxRate(it.TaxPercentage))
	}
	return Round2(sum)
}

func (c *Cart) Total() float64 {
	return Round2(c.Subtotal() + c.Tax())
}

// Quantities maps each line key to its quantity.
func (c *Cart) Quantities() map[string]int {
	out := make(map[string]int, len(c.Items))
	for _, it := range c.Items {
		out[it.ID] = it.Quantity
	}
	return out
}

// VariantQuantity sums the quantity of every variant line of menuID.
func (c *Cart) VariantQuantity(menuID string) int {
	prefix := menuID + ":"
	n := 0
	for _, it := range c.Items {
		if strings.HasPrefix(it.ID, prefix) {
			n += it.Quantity
		}
	}
	return n
}

// LowestAvailablePrice is the "from" price shown for items with variants.
func LowestAvailablePrice(item Item) float64 {
	lowest, found := 0.0, false
	for _, v := range item.Variants {
		if !v.IsAvailable {
			continue
		}
		if !found || v.Price < lowest {
			lowest, found = v.Price, true
		}
	}
	if !found {
		return item.Price
	}
	return lowest
}

// ComposeVariant builds the cart line for one variant of parent.
func ComposeVariant(parent Item, variant domain.Variant) Item {
	line := parent
	line.ID = Key(parent.MenuID, variant.Name)
	line.Name = parent.Name + " - " + variant.Name
	line.Price = variant.Price
	line.Quantity = 0
	line.Variants = nil
	return line
}
