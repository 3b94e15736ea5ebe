package repository

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
)

// Collection names and the string key each one is addressed by.
const (
	MenuCollection        = "menu"
	OrderCollection       = "preorders"
	ReservationCollection = "reservations"
	ContactCollection     = "contacts"
	TimelineCollection    = "about_timeline"
	TeamCollection        = "about_team"
	ValueCollection       = "about_values"
	AchievementCollection = "about_achievements"
	UserCollection        = "user"
)

// Stores groups one Store per collection.
type Stores struct {
	Menu         Store[models.MenuItem]
	Orders       Store[models.PreOrder]
	Reservations Store[models.Reservation]
	Contacts     Store[models.Contact]
	Timeline     Store[models.TimelineEvent]
	Team         Store[models.TeamMember]
	Values       Store[models.Value]
	Achievements Store[models.Achievement]
	Users        Store[models.User]
}

func NewMongoStores(db *mongo.Database) *Stores {
	return &Stores{
		Menu:         NewMongoStore[models.MenuItem](db.Collection(MenuCollection), "item_id"),
		Orders:       NewMongoStore[models.PreOrder](db.Collection(OrderCollection), "order_id"),
		Reservations: NewMongoStore[models.Reservation](db.Collection(ReservationCollection), "reservation_id"),
		Contacts:     NewMongoStore[models.Contact](db.Collection(ContactCollection), "contact_id"),
		Timeline:     NewMongoStore[models.TimelineEvent](db.Collection(TimelineCollection), "timeline_id"),
		Team:         NewMongoStore[models.TeamMember](db.Collection(TeamCollection), "member_id"),
		Values:       NewMongoStore[models.Value](db.Collection(ValueCollection), "value_id"),
		Achievements: NewMongoStore[models.Achievement](db.Collection(AchievementCollection), "achievement_id"),
		Users:        NewMongoStore[models.User](db.Collection(UserCollection), "user_id"),
	}
}

func NewMemoryStores() *Stores {
	return &Stores{
		Menu:         NewMemoryStore[models.MenuItem]("item_id"),
		Orders:       NewMemoryStore[models.PreOrder]("order_id"),
		Reservations: NewMemoryStore[models.Reservation]("reservation_id"),
		Contacts:     NewMemoryStore[models.Contact]("contact_id"),
		Timeline:     NewMemoryStore[models.TimelineEvent]("timeline_id"),
		Team:         NewMemoryStore[models.TeamMember]("member_id"),
		Values:       NewMemoryStore[models.Value]("value_id"),
		Achievements: NewMemoryStore[models.Achievement]("achievement_id"),
		Users:        NewMemoryStore[models.User]("user_id"),
	}
}
