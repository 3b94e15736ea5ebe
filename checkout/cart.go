package checkout

import (
	"fmt"
	"math"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
)

// Cart holds one line per menu item. Adding an item that is already in the
// cart raises its quantity.
type Cart struct {
	lines []models.OrderLine
}

func NewCart(lines ...models.OrderLine) *Cart {
	c := &Cart{}
	for _, l := range lines {
		c.Add(l)
	}
	return c
}

func (c *Cart) Add(line models.OrderLine) {
	if line.Quantity <= 0 {
		return
	}
	if i := c.indexOf(line.Item_id); i >= 0 {
		c.lines[i].Quantity += line.Quantity
		return
	}
	c.lines = append(c.lines, line)
}

func (c *Cart) AddItem(item models.MenuItem, qty int) {
	c.Add(models.OrderLine{
		Item_id:  item.Item_id,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: qty,
	})
}

// SetQuantity removes the line when qty drops to zero or below.
func (c *Cart) SetQuantity(id string, qty int) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	if qty <= 0 {
		c.Remove(id)
		return
	}
	c.lines[i].Quantity = qty
}

func (c *Cart) SetNote(id, note string) {
	if i := c.indexOf(id); i >= 0 {
		c.lines[i].Note = note
	}
}

func (c *Cart) Remove(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Lines() []models.OrderLine {
	out := make([]models.OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total is the sum of price × quantity, rounded to cents.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, l := range c.lines {
		total += l.Price * float64(l.Quantity)
	}
	return math.Round(total*100) / 100
}

func (c *Cart) indexOf(id string) int {
	for i, l := range c.lines {
		if l.Item_id == id {
			return i
		}
	}
	return -1
}

func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
