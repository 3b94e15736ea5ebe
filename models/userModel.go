package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProviderPassword  = "password"
	ProviderFederated = "federated"
)

// User is an admin account. Only admins sign in.
type User struct {
	BaseEntity    `bson:",inline"`
	User_id       string  `bson:"user_id" json:"user_id"`
	Email         string  `bson:"email" json:"email" validate:"notblank,emailaddr" label:"Email"`
	Display_name  string  `bson:"display_name" json:"display_name" validate:"max=100" label:"Display name"`
	Password      string  `bson:"password" json:"-"`
	Provider      string  `bson:"provider" json:"provider"`
	Token         *string `bson:"token" json:"-"`
	Refresh_Token *string `bson:"refresh_token" json:"-"`
}

func (u *User) Assign(id primitive.ObjectID, now time.Time) {
	u.stamp(id, now)
	u.User_id = id.Hex()
}
