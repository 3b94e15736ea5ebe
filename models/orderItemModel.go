package models

// OrderLine is one cart line as stored on a pre-order.
type OrderLine struct {
	Item_id  string  `bson:"id" json:"id" validate:"notblank" label:"Item"`
	Name     string  `bson:"name" json:"name" validate:"notblank,max=100" label:"Item name"`
	Price    float64 `bson:"price" json:"price" validate:"gte=0,lte=10000" label:"Price"`
	Quantity int     `bson:"quantity" json:"quantity" validate:"gte=1,lte=50" label:"Quantity"`
	Note     string  `bson:"note" json:"note" validate:"max=200" label:"Note"`
}
