package appointment

import (
	"furcare/models"
	"furcare/utils"
)

func validateCreate(req models.CreateAppointmentRequest) error {
	refs := []struct{ field, value string }{
		{"userId", req.UserID},
		{"petId", req.PetID},
		{"shopId", req.ShopID},
		{"staffId", req.StaffID},
		{"serviceId", req.ServiceID},
		{"slotId", req.SlotID},
	}
	for _, r := range refs {
		if !utils.IsValidRef(r.value) {
			return utils.NewValidationError(r.field, "must be a 24-character hex identifier")
		}
	}

	d := req.SlotDetails
	if _, err := utils.ParseSlotDate(d.Date); err != nil {
		return utils.NewValidationError("slotDetails.date", err.Error())
	}
	start, err := utils.ParseClock(d.StartTime)
	if err != nil {
		return utils.NewValidationError("slotDetails.startTime", err.Error())
	}
	end, err := utils.ParseClock(d.EndTime)
	if err != nil {
		return utils.NewValidationError("slotDetails.endTime", err.Error())
	}
	if start >= end {
		return utils.NewValidationError("slotDetails.endTime", "must be later than startTime")
	}
	return nil
}
