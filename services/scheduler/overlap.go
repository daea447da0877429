package scheduler

import (
	"furcare/models"
	"furcare/utils"
)

// findConflict returns the first slot in existing that collides with candidate: same staff
// and date, active, not candidate itself, and sharing an instant of [start, end).
func findConflict(candidate models.Slot, existing []models.Slot) *models.Slot {
	cs, err := utils.ParseClock(candidate.StartTime)
	if err != nil {
		return nil
	}
	ce, err := utils.ParseClock(candidate.EndTime)
	if err != nil {
		return nil
	}

	for i := range existing {
		other := existing[i]
		if other.ID == candidate.ID && candidate.ID != "" {
			continue
		}
		if other.StaffID != candidate.StaffID || other.SlotDate != candidate.SlotDate || !other.IsActive() {
			continue
		}
		otherStart, err := utils.ParseClock(other.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := utils.ParseClock(other.EndTime)
		if err != nil {
			continue
		}
		if utils.IntervalsOverlap(cs, ce, otherStart, otherEnd) {
			return &other
		}
	}
	return nil
}

func lockKey(staffID, date string) string {
	return "slotlock:" + staffID + ":" + date
}
