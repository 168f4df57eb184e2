package cart

import (
	"github.com/shopspring/decimal"
)

// Item is what the shopper picked: a product snapshot plus the chosen variant.
type Item struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Image     string
	Size      string
	Color     string
}

// Line is one purchasable configuration in the cart. ID is the variant key.
type Line struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Image     string          `json:"image,omitempty"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// VariantKey is the merge identity of a line. Absent size or color count as
// the empty string.
func VariantKey(productID, size, color string) string {
	return productID + "-" + size + "-" + color
}

// Cart holds at most one line per variant key. The zero value is an empty,
// closed cart.
type Cart struct {
	Lines  []Line `json:"items"`
	IsOpen bool   `json:"isOpen"`
}

// AddItem merges quantity into the line for the item's variant, appending a
// new line when none exists, and opens the cart display. A quantity below 1
// is treated as 1.
func (c *Cart) AddItem(item Item, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	c.IsOpen = true

	key := VariantKey(item.ProductID, item.Size, item.Color)
	for i := range c.Lines {
		if c.Lines[i].ID == key {
			c.Lines[i].Quantity += quantity
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		ID:        key,
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Image:     item.Image,
		Size:      item.Size,
		Color:     item.Color,
		Quantity:  quantity,
	})
}

// RemoveItem deletes the line; absent lines are ignored.
func (c *Cart) RemoveItem(lineID string) {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line quantity, removing the line when quantity
// is zero or negative. Stock is not consulted.
func (c *Cart) UpdateQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(lineID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) SetOpen(open bool) {
	c.IsOpen = open
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) TotalItems() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// View is the response shape of every cart endpoint.
type View struct {
	Items      []Line          `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	IsOpen     bool            `json:"isOpen"`
}

func (c Cart) View() View {
	items := c.Lines
	if items == nil {
		items = []Line{}
	}
	return View{Items: items, TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice(), IsOpen: c.IsOpen}
}
