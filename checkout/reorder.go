package checkout

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
)

// Reorder rebuilds a cart from a previous order's raw item list. Entries
// without a non-empty id and name, or without numeric price and quantity,
// are dropped.
func Reorder(previous []map[string]any) *Cart {
	c := &Cart{}
	for _, raw := range previous {
		line, ok := sanitizeLine(raw)
		if !ok {
			continue
		}
		c.Add(line)
	}
	return c
}

// ReorderFromOrder applies the same rules to a stored order.
func ReorderFromOrder(o models.PreOrder) *Cart {
	raw := make([]map[string]any, 0, len(o.Items))
	for _, l := range o.Items {
		raw = append(raw, map[string]any{
			"id":       l.Item_id,
			"name":     l.Name,
			"price":    l.Price,
			"quantity": l.Quantity,
			"note":     l.Note,
		})
	}
	return Reorder(raw)
}

func sanitizeLine(raw map[string]any) (models.OrderLine, bool) {
	id, ok := nonEmptyString(raw["id"])
	if !ok {
		return models.OrderLine{}, false
	}
	name, ok := nonEmptyString(raw["name"])
	if !ok {
		return models.OrderLine{}, false
	}
	price, ok := toNumber(raw["price"])
	if !ok || price < 0 {
		return models.OrderLine{}, false
	}
	qty, ok := toNumber(raw["quantity"])
	if !ok || qty < 1 {
		return models.OrderLine{}, false
	}
	note, _ := raw["note"].(string)

	return models.OrderLine{
		Item_id:  id,
		Name:     name,
		Price:    price,
		Quantity: int(math.Floor(qty)),
		Note:     note,
	}, true
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// toNumber accepts every integer and float kind, including named ones, and
// json.Number.
func toNumber(v any) (float64, bool) {
	var f float64
	if n, ok := v.(json.Number); ok {
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	} else {
		rv := reflect.ValueOf(v)
		switch {
		case !rv.IsValid():
			return 0, false
		case rv.CanInt():
			f = float64(rv.Int())
		case rv.CanUint():
			f = float64(rv.Uint())
		case rv.CanFloat():
			f = rv.Float()
		default:
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
