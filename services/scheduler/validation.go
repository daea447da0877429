package scheduler

import (
	"furcare/models"
	"furcare/utils"
)

func validateRef(field, value string) error {
	if !utils.IsValidRef(value) {
		return utils.NewValidationError(field, "must be a 24-character hex identifier")
	}
	return nil
}

func validateDate(field, value string) error {
	if _, err := utils.ParseSlotDate(value); err != nil {
		return utils.NewValidationError(field, err.Error())
	}
	return nil
}

func validateClock(field, value string) error {
	if _, err := utils.ParseClock(value); err != nil {
		return utils.NewValidationError(field, err.Error())
	}
	return nil
}

func validateDuration(minutes int) error {
	if minutes <= 0 {
		return utils.NewValidationError("durationInMinutes", "must be a positive number of minutes")
	}
	return nil
}

// validateWindow requires a non-empty interval; both times are assumed well-formed.
func validateWindow(start, end string) error {
	s, _ := utils.ParseClock(start)
	e, _ := utils.ParseClock(end)
	if s >= e {
		return utils.NewValidationError("endTime", "must be later than startTime")
	}
	return nil
}

func validateNewSlot(req models.CreateSlotRequest) error {
	checks := []func() error{
		func() error { return validateRef("shopId", req.ShopID) },
		func() error { return validateRef("staffId", req.StaffID) },
		func() error { return validateDate("slotDate", req.SlotDate) },
		func() error { return validateClock("startTime", req.StartTime) },
		func() error { return validateClock("endTime", req.EndTime) },
		func() error { return validateDuration(req.DurationInMinutes) },
		func() error { return validateWindow(req.StartTime, req.EndTime) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// validatePatch checks only the fields the patch sets, then the merged window if it moved.
func validatePatch(patch models.SlotPatch, merged models.Slot) error {
	if patch.ShopID != nil {
		if err := validateRef("shopId", *patch.ShopID); err != nil {
			return err
		}
	}
	if patch.StaffID != nil {
		if err := validateRef("staffId", *patch.StaffID); err != nil {
			return err
		}
	}
	if patch.SlotDate != nil {
		if err := validateDate("slotDate", *patch.SlotDate); err != nil {
			return err
		}
	}
	if patch.StartTime != nil {
		if err := validateClock("startTime", *patch.StartTime); err != nil {
			return err
		}
	}
	if patch.EndTime != nil {
		if err := validateClock("endTime", *patch.EndTime); err != nil {
			return err
		}
	}
	if patch.DurationInMinutes != nil {
		if err := validateDuration(*patch.DurationInMinutes); err != nil {
			return err
		}
	}
	if patch.StartTime != nil || patch.EndTime != nil {
		return validateWindow(merged.StartTime, merged.EndTime)
	}
	return nil
}
