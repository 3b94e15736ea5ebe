package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

var ReservationStatuses = map[string]bool{
	ReservationPending: true, ReservationConfirmed: true, ReservationCancelled: true,
}

// Reservation fields are grouped by the booking wizard step that collects them.
type Reservation struct {
	BaseEntity     `bson:",inline"`
	Reservation_id string `bson:"reservation_id" json:"reservation_id"`

	// step 1
	Date   string `bson:"date" json:"date" validate:"notblank,datefmt" label:"Date"`
	Time   string `bson:"time" json:"time" validate:"notblank,timefmt" label:"Time"`
	Guests int    `bson:"guests" json:"guests" validate:"gte=1,lte=20" label:"Number of guests"`

	// step 2
	SeatingPreference string `bson:"seating_preference" json:"seating_preference" validate:"omitempty,oneof=indoor outdoor window private bar no-preference" label:"Seating preference"`
	Occasion          string `bson:"occasion" json:"occasion" validate:"max=50" label:"Occasion"`
	SpecialRequests   string `bson:"special_requests" json:"special_requests" validate:"max=500" label:"Special requests"`

	// step 3
	Name  string `bson:"name" json:"name" validate:"notblank,max=100" label:"Name"`
	Email string `bson:"email" json:"email" validate:"notblank,emailaddr" label:"Email"`
	Phone string `bson:"phone" json:"phone" validate:"notblank,phone" label:"Phone"`

	Status string `bson:"status" json:"status"`
}

func (r *Reservation) Assign(id primitive.ObjectID, now time.Time) {
	r.stamp(id, now)
	r.Reservation_id = id.Hex()
}
