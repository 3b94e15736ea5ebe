package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContactUnread  = "unread"
	ContactRead    = "read"
	ContactReplied = "replied"
)

var ContactStatuses = map[string]bool{
	ContactUnread: true, ContactRead: true, ContactReplied: true,
}

type Contact struct {
	BaseEntity `bson:",inline"`
	Contact_id string `bson:"contact_id" json:"contact_id"`
	Name       string `bson:"name" json:"name" validate:"notblank,max=100" label:"Name"`
	Email      string `bson:"email" json:"email" validate:"notblank,emailaddr" label:"Email"`
	Phone      string `bson:"phone" json:"phone" validate:"omitempty,phone" label:"Phone"`
	Subject    string `bson:"subject" json:"subject" validate:"notblank,max=150" label:"Subject"`
	Message    string `bson:"message" json:"message" validate:"notblank,max=2000" label:"Message"`
	Status     string `bson:"status" json:"status"`
}

func (c *Contact) Assign(id primitive.ObjectID, now time.Time) {
	c.stamp(id, now)
	c.Contact_id = id.Hex()
}
