package models

import (
	"encoding/json"
	"time"
)

// SlotStatus is the single source of truth for a slot's visibility.
type SlotStatus string

const (
	SlotStatusActive    SlotStatus = "active"
	SlotStatusCancelled SlotStatus = "cancelled"
	SlotStatusDeleted   SlotStatus = "deleted"
)

var slotTransitions = map[SlotStatus][]SlotStatus{
	SlotStatusActive:    {SlotStatusCancelled, SlotStatusDeleted},
	SlotStatusCancelled: {SlotStatusDeleted},
}

// CanTransitionTo reports whether a slot may move from s to next. Deleted is terminal and
// cancelled never returns to active.
func (s SlotStatus) CanTransitionTo(next SlotStatus) bool {
	for _, allowed := range slotTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Slot is a bookable time window for one staff member on one shop-local day.
type Slot struct {
	ID                string     `bson:"_id" json:"id"`
	ShopID            string     `bson:"shopId" json:"shopId"`
	StaffID           string     `bson:"staffId" json:"staffId"`
	SlotDate          string     `bson:"slotDate" json:"slotDate"`   // "YYYY-MM-DD"
	StartTime         string     `bson:"startTime" json:"startTime"` // "HH:MM", 24-hour
	EndTime           string     `bson:"endTime" json:"endTime"`
	DurationInMinutes int        `bson:"durationInMinutes" json:"durationInMinutes"`
	IsBooked          bool       `bson:"isBooked" json:"isBooked"`
	Status            SlotStatus `bson:"status" json:"status"`
	DeletedAt         *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func (s Slot) IsActive() bool    { return s.Status == SlotStatusActive }
func (s Slot) IsCancelled() bool { return s.Status == SlotStatusCancelled }
func (s Slot) IsDeleted() bool   { return s.Status == SlotStatusDeleted }

// MarshalJSON adds the derived isActive/isCancelled flags API clients still read.
func (s Slot) MarshalJSON() ([]byte, error) {
	type slotAlias Slot
	return json.Marshal(struct {
		slotAlias
		IsActive    bool `json:"isActive"`
		IsCancelled bool `json:"isCancelled"`
	}{
		slotAlias:   slotAlias(s),
		IsActive:    s.IsActive(),
		IsCancelled: s.IsCancelled(),
	})
}

// CreateSlotRequest is the payload for scheduling a new slot.
type CreateSlotRequest struct {
	ShopID            string `json:"shopId" binding:"required"`
	StaffID           string `json:"staffId" binding:"required"`
	SlotDate          string `json:"slotDate" binding:"required"`
	StartTime         string `json:"startTime" binding:"required"`
	EndTime           string `json:"endTime" binding:"required"`
	DurationInMinutes int    `json:"durationInMinutes"`
}

// SlotPatch carries the fields a reschedule may change. Nil means unchanged.
type SlotPatch struct {
	ShopID            *string `json:"shopId,omitempty"`
	StaffID           *string `json:"staffId,omitempty"`
	SlotDate          *string `json:"slotDate,omitempty"`
	StartTime         *string `json:"startTime,omitempty"`
	EndTime           *string `json:"endTime,omitempty"`
	DurationInMinutes *int    `json:"durationInMinutes,omitempty"`
}

// TouchesSchedule reports whether the patch moves the slot in the staff calendar.
func (p SlotPatch) TouchesSchedule() bool {
	return p.ShopID != nil || p.StaffID != nil || p.SlotDate != nil || p.StartTime != nil || p.EndTime != nil
}
