package cart

import "time"

// Line is one product entry in a shopper's in-progress selection. Price,
// sale price and stock are snapshots taken when the product was added; they
// are display-only and are re-validated against the catalogue at checkout.
type Line struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	Price     float64  `json:"price"`
	SalePrice *float64 `json:"salePrice,omitempty"`
	Image     string   `json:"image,omitempty"`
	Quantity  int      `json:"quantity"`
	Stock     int      `json:"stock"`
}

// EffectivePrice returns the line's sale price if set, otherwise its price.
func (l *Line) EffectivePrice() float64 {
	if l.SalePrice != nil {
		return *l.SalePrice
	}
	return l.Price
}

// Cart holds a user's working set of selected items. There is exactly one
// writer per cart (the owning user's own requests), so mutations are plain
// synchronous method calls with no locking.
type Cart struct {
	UserID    string    `json:"userId"`
	Items     []Line    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New returns an empty cart for the given user.
func New(userID string) *Cart {
	return &Cart{
		UserID:    userID,
		Items:     []Line{},
		UpdatedAt: time.Now().UTC(),
	}
}

// findIndex returns the index of the line for the given product, or -1.
func (c *Cart) findIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges the given snapshot into the cart. If the product is already
// present its quantity grows by the requested amount, but only when the
// result stays within the line's recorded stock; an add that would exceed
// stock is silently ignored. A new line is inserted with the requested
// quantity (defaulting to 1), capped at the snapshot's stock. A snapshot
// with no stock is not added at all.
func (c *Cart) AddItem(line Line) {
	qty := line.Quantity
	if qty <= 0 {
		qty = 1
	}

	if i := c.findIndex(line.ProductID); i >= 0 {
		newQty := c.Items[i].Quantity + qty
		if newQty <= c.Items[i].Stock {
			c.Items[i].Quantity = newQty
			c.touch()
		}
		return
	}

	if line.Stock <= 0 {
		return
	}
	if qty > line.Stock {
		qty = line.Stock
	}
	line.Quantity = qty
	c.Items = append(c.Items, line)
	c.touch()
}

// RemoveItem deletes the line for the given product. Absent lines are a no-op.
func (c *Cart) RemoveItem(productID string) {
	i := c.findIndex(productID)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.touch()
}

// UpdateQuantity sets the quantity for the given product, clamped to the
// line's recorded stock. A quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}

	i := c.findIndex(productID)
	if i < 0 {
		return
	}
	if quantity > c.Items[i].Stock {
		quantity = c.Items[i].Stock
	}
	c.Items[i].Quantity = quantity
	c.touch()
}

// Clear empties all lines.
func (c *Cart) Clear() {
	c.Items = []Line{}
	c.touch()
}

// Total sums the effective price times quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for i := range c.Items {
		total += c.Items[i].EffectivePrice() * float64(c.Items[i].Quantity)
	}
	return total
}

// ItemCount returns the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	var count int
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}
