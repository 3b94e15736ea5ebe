package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
)

func menu() []models.MenuItem {
	return []models.MenuItem{
		{Item_id: "1", Name: "Truffle Risotto", Description: "Arborio rice, black truffle", Category: "mains", Dietary: []string{"Vegetarian", "Gluten-Free"}, Featured: true},
		{Item_id: "2", Name: "Lobster Thermidor", Description: "Whole lobster", Category: "mains"},
		{Item_id: "3", Name: "Mushroom Wellington", Description: "Puff pastry, wild mushrooms", Category: "mains", Dietary: []string{"Vegan", "Vegetarian"}},
		{Item_id: "4", Name: "Garden Salad", Description: "Seasonal greens", Category: "starters", Dietary: []string{"Vegan", "Gluten-Free"}},
		{Item_id: "5", Name: "Chocolate Fondant", Description: "Molten centre", Category: "desserts", Dietary: []string{"Vegetarian"}, Featured: true},
	}
}

func ids(items []models.MenuItem) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, it.Item_id)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"1", "2", "3", "4", "5"}},
		{"category all", Filter{Category: "all"}, []string{"1", "2", "3", "4", "5"}},
		{"category and dietary", Filter{Category: "mains", Dietary: []string{"Vegan"}}, []string{"3"}},
		{"dietary tags are all required", Filter{Dietary: []string{"vegan", "gluten-free"}}, []string{"4"}},
		{"search name", Filter{Search: "risotto"}, []string{"1"}},
		{"search description", Filter{Search: "MUSHROOM"}, []string{"3"}},
		{"featured", Filter{FeaturedOnly: true}, []string{"1", "5"}},
		{"no match", Filter{Category: "desserts", Dietary: []string{"Vegan"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(menu(), tt.filter)))
		})
	}
}

func TestApplyIsLogicalAnd(t *testing.T) {
	f := Filter{Category: "mains", Dietary: []string{"Vegan"}}
	for _, item := range Apply(menu(), f) {
		assert.Equal(t, "mains", item.Category)
		assert.Contains(t, item.Dietary, "Vegan")
	}
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"mains", "starters", "desserts"}, Categories(menu()))
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"Vegan", "Gluten-Free", "Halal"}, ParseTags([]string{"Vegan, Gluten-Free", "", "Halal"}))
}
