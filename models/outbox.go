package models

import "time"

type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxDispatched OutboxStatus = "dispatched"
	OutboxFailed     OutboxStatus = "failed"
)

const (
	EventAppointmentCreated       = "appointment.created"
	EventAppointmentStatusChanged = "appointment.status_changed"
)

// OutboxEvent is a domain event written in the same transaction as the appointment change
// it describes and drained later by the relay.
type OutboxEvent struct {
	ID            string               `bson:"_id" json:"id"`
	AggregateType string               `bson:"aggregateType" json:"aggregateType"`
	AggregateID   string               `bson:"aggregateId" json:"aggregateId"`
	EventType     string               `bson:"eventType" json:"eventType"`
	Notification  *NotificationRequest `bson:"notification,omitempty" json:"notification,omitempty"`
	Status        OutboxStatus         `bson:"status" json:"status"`
	Attempts      int                  `bson:"attempts" json:"attempts"`
	LastError     string               `bson:"lastError,omitempty" json:"lastError,omitempty"`
	ClaimedUntil  *time.Time           `bson:"claimedUntil,omitempty" json:"-"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	DispatchedAt  *time.Time           `bson:"dispatchedAt,omitempty" json:"dispatchedAt,omitempty"`
}
