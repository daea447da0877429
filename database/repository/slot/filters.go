package slotRepo

import (
	"time"

	"furcare/models"

	"go.mongodb.org/mongo-driver/bson"
)

func visible(filter bson.M) bson.M {
	filter["status"] = bson.M{"$ne": models.SlotStatusDeleted}
	return filter
}

func byIDFilter(id string) bson.M {
	return visible(bson.M{"_id": id})
}

func byShopFilter(shopID string) bson.M {
	return visible(bson.M{"shopId": shopID})
}

// Dates are zero-padded YYYY-MM-DD strings, so lexical range matches calendar range.
func byShopAndDateRangeFilter(shopID, from, to string) bson.M {
	return visible(bson.M{
		"shopId":   shopID,
		"slotDate": bson.M{"$gte": from, "$lte": to},
	})
}

func byDateFilter(date string) bson.M {
	return visible(bson.M{"slotDate": date})
}

func bookedByShopFilter(shopID string) bson.M {
	return visible(bson.M{"shopId": shopID, "isBooked": true})
}

func activeByStaffAndDateFilter(staffID, date string) bson.M {
	return bson.M{
		"staffId":  staffID,
		"slotDate": date,
		"status":   models.SlotStatusActive,
	}
}

func availableByStaffAndDateFilter(staffID, date string) bson.M {
	f := activeByStaffAndDateFilter(staffID, date)
	f["isBooked"] = false
	return f
}

// byIDInStatusFilter matches the slot only while it is still in one of the given states,
// so a write based on a stale read matches nothing.
func byIDInStatusFilter(id string, statuses ...models.SlotStatus) bson.M {
	if len(statuses) == 1 {
		return bson.M{"_id": id, "status": statuses[0]}
	}
	return bson.M{"_id": id, "status": bson.M{"$in": statuses}}
}

// scheduleUpdateDoc lists the fields a reschedule may touch. Status changes go through
// statusUpdateDoc and isBooked belongs to the appointment transactions.
func scheduleUpdateDoc(slot *models.Slot) bson.M {
	return bson.M{"$set": bson.M{
		"shopId":            slot.ShopID,
		"staffId":           slot.StaffID,
		"slotDate":          slot.SlotDate,
		"startTime":         slot.StartTime,
		"endTime":           slot.EndTime,
		"durationInMinutes": slot.DurationInMinutes,
		"updatedAt":         slot.UpdatedAt,
	}}
}

func statusUpdateDoc(to models.SlotStatus, at time.Time) bson.M {
	set := bson.M{"status": to, "updatedAt": at}
	if to == models.SlotStatusDeleted {
		set["deletedAt"] = at
	}
	return bson.M{"$set": set}
}
