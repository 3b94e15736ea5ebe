package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseEntity is embedded inline by every stored document.
type BaseEntity struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Created_at time.Time          `bson:"created_at" json:"created_at"`
	Updated_at time.Time          `bson:"updated_at" json:"updated_at"`
}

func (b *BaseEntity) stamp(id primitive.ObjectID, now time.Time) {
	b.ID = id
	b.Created_at = now
	b.Updated_at = now
}
