package models

import (
	"strings"
	"time"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "Pending"
	AppointmentConfirmed AppointmentStatus = "Confirmed"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:   {AppointmentConfirmed, AppointmentCancelled},
	AppointmentConfirmed: {AppointmentCompleted, AppointmentCancelled},
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0
}

// ParseAppointmentStatus matches a status name case-insensitively.
func ParseAppointmentStatus(raw string) (AppointmentStatus, bool) {
	for _, s := range []AppointmentStatus{AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled} {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s, true
		}
	}
	return "", false
}

// SlotDetails is the snapshot of the chosen slot taken at booking time.
type SlotDetails struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	Date      string `bson:"date" json:"date"`
}

// PaymentDetails is carried through untouched; payments are handled elsewhere.
type PaymentDetails struct {
	Amount   float64    `bson:"amount" json:"amount"`
	Currency string     `bson:"currency" json:"currency"`
	Status   string     `bson:"status" json:"status"`
	Method   string     `bson:"method" json:"method"`
	PaidAt   *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

type Appointment struct {
	ID                string            `bson:"_id" json:"id"`
	BookingNumber     string            `bson:"bookingNumber" json:"bookingNumber"`
	UserID            string            `bson:"userId" json:"userId"`
	PetID             string            `bson:"petId" json:"petId"`
	ShopID            string            `bson:"shopId" json:"shopId"`
	StaffID           string            `bson:"staffId" json:"staffId"`
	ServiceID         string            `bson:"serviceId" json:"serviceId"`
	SlotID            string            `bson:"slotId" json:"slotId"`
	SlotDetails       SlotDetails       `bson:"slotDetails" json:"slotDetails"`
	PaymentDetails    PaymentDetails    `bson:"paymentDetails" json:"paymentDetails"`
	AppointmentStatus AppointmentStatus `bson:"appointmentStatus" json:"appointmentStatus"`
	Notes             string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time         `bson:"updatedAt" json:"updatedAt"`
}

type CreateAppointmentRequest struct {
	UserID         string         `json:"userId" binding:"required"`
	PetID          string         `json:"petId" binding:"required"`
	ShopID         string         `json:"shopId" binding:"required"`
	StaffID        string         `json:"staffId" binding:"required"`
	ServiceID      string         `json:"serviceId" binding:"required"`
	SlotID         string         `json:"slotId" binding:"required"`
	SlotDetails    SlotDetails    `json:"slotDetails"`
	PaymentDetails PaymentDetails `json:"paymentDetails"`
	Notes          string         `json:"notes"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
