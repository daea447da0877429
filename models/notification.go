package models

import "time"

type ReceiverType string

const (
	ReceiverUser ReceiverType = "user"
	ReceiverShop ReceiverType = "shop"
)

const (
	NotificationNewAppointment    = "new_appointment"
	NotificationAppointmentStatus = "appointment_status"
)

// NotificationRequest is what the scheduling side asks the notification sink to record.
type NotificationRequest struct {
	UserID       string       `bson:"userId" json:"userId"`
	ShopID       string       `bson:"shopId" json:"shopId"`
	ReceiverType ReceiverType `bson:"receiverType" json:"receiverType"`
	Type         string       `bson:"type" json:"type"`
	Message      string       `bson:"message" json:"message"`
}

type Notification struct {
	ID           string       `bson:"_id" json:"id"`
	EventID      string       `bson:"eventId,omitempty" json:"-"`
	UserID       string       `bson:"userId" json:"userId"`
	ShopID       string       `bson:"shopId" json:"shopId"`
	ReceiverType ReceiverType `bson:"receiverType" json:"receiverType"`
	Type         string       `bson:"type" json:"type"`
	Message      string       `bson:"message" json:"message"`
	Read         bool         `bson:"read" json:"read"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
}
