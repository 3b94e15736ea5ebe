package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TimelineEvent struct {
	BaseEntity  `bson:",inline"`
	Timeline_id string `bson:"timeline_id" json:"timeline_id"`
	Year        string `bson:"year" json:"year" validate:"notblank,max=10" label:"Year"`
	Title       string `bson:"title" json:"title" validate:"notblank,max=100" label:"Title"`
	Description string `bson:"description" json:"description" validate:"max=1000" label:"Description"`
	Order       int    `bson:"order" json:"order" validate:"gte=0" label:"Order"`
}

func (t *TimelineEvent) Assign(id primitive.ObjectID, now time.Time) {
	t.stamp(id, now)
	t.Timeline_id = id.Hex()
}

type TeamMember struct {
	BaseEntity `bson:",inline"`
	Member_id  string `bson:"member_id" json:"member_id"`
	Name       string `bson:"name" json:"name" validate:"notblank,max=100" label:"Name"`
	Role       string `bson:"role" json:"role" validate:"notblank,max=100" label:"Role"`
	Bio        string `bson:"bio" json:"bio" validate:"max=1000" label:"Bio"`
	Image      string `bson:"image" json:"image" validate:"max=500" label:"Image"`
	Order      int    `bson:"order" json:"order" validate:"gte=0" label:"Order"`
}

func (m *TeamMember) Assign(id primitive.ObjectID, now time.Time) {
	m.stamp(id, now)
	m.Member_id = id.Hex()
}

type Value struct {
	BaseEntity  `bson:",inline"`
	Value_id    string   `bson:"value_id" json:"value_id"`
	Title       string   `bson:"title" json:"title" validate:"notblank,max=100" label:"Title"`
	Description string   `bson:"description" json:"description" validate:"max=1000" label:"Description"`
	Icon        IconName `bson:"icon" json:"icon" validate:"icon" label:"Icon"`
	Order       int      `bson:"order" json:"order" validate:"gte=0" label:"Order"`
}

func (v *Value) Assign(id primitive.ObjectID, now time.Time) {
	v.stamp(id, now)
	v.Value_id = id.Hex()
}

type Achievement struct {
	BaseEntity     `bson:",inline"`
	Achievement_id string   `bson:"achievement_id" json:"achievement_id"`
	Title          string   `bson:"title" json:"title" validate:"notblank,max=100" label:"Title"`
	Description    string   `bson:"description" json:"description" validate:"max=1000" label:"Description"`
	Icon           IconName `bson:"icon" json:"icon" validate:"icon" label:"Icon"`
	Year           string   `bson:"year" json:"year" validate:"max=10" label:"Year"`
	Order          int      `bson:"order" json:"order" validate:"gte=0" label:"Order"`
}

func (a *Achievement) Assign(id primitive.ObjectID, now time.Time) {
	a.stamp(id, now)
	a.Achievement_id = id.Hex()
}

// About is the public About page payload.
type About struct {
	Timeline     []TimelineEvent `json:"timeline"`
	Team         []TeamMember    `json:"team"`
	Values       []Value         `json:"values"`
	Achievements []Achievement   `json:"achievements"`
}
