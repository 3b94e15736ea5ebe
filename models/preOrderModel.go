package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

var OrderStatuses = map[string]bool{
	OrderPending: true, OrderConfirmed: true, OrderPreparing: true,
	OrderReady: true, OrderCompleted: true, OrderCancelled: true,
}

const (
	PaymentPendingVerification = "pending_verification"
	PaymentVerified            = "verified"
	PaymentRejected            = "rejected"
)

var PaymentStatuses = map[string]bool{
	PaymentPendingVerification: true, PaymentVerified: true, PaymentRejected: true,
}

const (
	PaymentBankTransfer = "bank_transfer"
	PaymentMobileWallet = "mobile_wallet"
	PaymentCard         = "card"
)

type PreOrder struct {
	BaseEntity           `bson:",inline"`
	Order_id             string      `bson:"order_id" json:"order_id"`
	Name                 string      `bson:"name" json:"name"`
	Email                string      `bson:"email" json:"email"`
	Phone                string      `bson:"phone" json:"phone"`
	Date                 string      `bson:"date" json:"date"`
	Time                 string      `bson:"time" json:"time"`
	Items                []OrderLine `bson:"items" json:"items"`
	Status               string      `bson:"status" json:"status"`
	Total                float64     `bson:"total" json:"total"`
	PaymentStatus        string      `bson:"payment_status" json:"payment_status"`
	PaymentScreenshotUrl string      `bson:"payment_screenshot_url" json:"payment_screenshot_url"`
	PaymentMethod        string      `bson:"payment_method" json:"payment_method"`
	UploadWarning        string      `bson:"upload_warning,omitempty" json:"upload_warning,omitempty"`
}

// Assign leaves Order_id untouched: the order code is generated before insert.
func (o *PreOrder) Assign(id primitive.ObjectID, now time.Time) {
	o.stamp(id, now)
}
