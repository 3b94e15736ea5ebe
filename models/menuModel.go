package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	BaseEntity  `bson:",inline"`
	Item_id     string   `bson:"item_id" json:"item_id"`
	Name        string   `bson:"name" json:"name" validate:"notblank,max=100" label:"Name"`
	Description string   `bson:"description" json:"description" validate:"max=500" label:"Description"`
	Price       float64  `bson:"price" json:"price" validate:"gt=0,lte=10000" label:"Price"`
	Category    string   `bson:"category" json:"category" validate:"notblank,max=50" label:"Category"`
	Image       string   `bson:"image" json:"image" validate:"max=500" label:"Image"`
	Dietary     []string `bson:"dietary" json:"dietary" validate:"dive,notblank" label:"Dietary tag"`
	Allergens   []string `bson:"allergens" json:"allergens" validate:"dive,notblank" label:"Allergen"`
	Featured    bool     `bson:"featured" json:"featured"`
}

func (m *MenuItem) Assign(id primitive.ObjectID, now time.Time) {
	m.stamp(id, now)
	m.Item_id = id.Hex()
}

// MenuItemUpdate carries a partial admin edit; nil fields are left alone.
type MenuItemUpdate struct {
	Name        *string   `json:"name" validate:"omitnil,notblank,max=100" label:"Name"`
	Description *string   `json:"description" validate:"omitnil,max=500" label:"Description"`
	Price       *float64  `json:"price" validate:"omitnil,gt=0,lte=10000" label:"Price"`
	Category    *string   `json:"category" validate:"omitnil,notblank,max=50" label:"Category"`
	Image       *string   `json:"image" validate:"omitnil,max=500" label:"Image"`
	Dietary     *[]string `json:"dietary" validate:"omitnil,dive,notblank" label:"Dietary tag"`
	Allergens   *[]string `json:"allergens" validate:"omitnil,dive,notblank" label:"Allergen"`
	Featured    *bool     `json:"featured"`
}

// Fields returns the $set document for the non-nil fields.
func (u MenuItemUpdate) Fields() map[string]any {
	set := map[string]any{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.Dietary != nil {
		set["dietary"] = *u.Dietary
	}
	if u.Allergens != nil {
		set["allergens"] = *u.Allergens
	}
	if u.Featured != nil {
		set["featured"] = *u.Featured
	}
	return set
}
