package scheduler

import (
	"context"
	"fmt"

	"furcare/models"
	"furcare/utils"
)

func (s *DefaultSlotScheduler) FindByID(ctx context.Context, id string) (*models.Slot, error) {
	if err := validateRef("id", id); err != nil {
		return nil, err
	}
	slot, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot: %w", err)
	}
	if slot == nil {
		return nil, utils.NewNotFoundError("slot", id)
	}
	return slot, nil
}

func (s *DefaultSlotScheduler) FindByShop(ctx context.Context, shopID string) ([]models.Slot, error) {
	if err := validateRef("shopId", shopID); err != nil {
		return nil, err
	}
	return s.Repo.FindByShop(ctx, shopID)
}

func (s *DefaultSlotScheduler) FindByShopAndDateRange(ctx context.Context, shopID, from, to string) ([]models.Slot, error) {
	if err := validateRef("shopId", shopID); err != nil {
		return nil, err
	}
	if err := validateDate("from", from); err != nil {
		return nil, err
	}
	if err := validateDate("to", to); err != nil {
		return nil, err
	}
	if from > to {
		return nil, utils.NewValidationError("to", "must not be before from")
	}
	return s.Repo.FindByShopAndDateRange(ctx, shopID, from, to)
}

func (s *DefaultSlotScheduler) FindByDate(ctx context.Context, date string) ([]models.Slot, error) {
	if err := validateDate("slotDate", date); err != nil {
		return nil, err
	}
	return s.Repo.FindByDate(ctx, date)
}

func (s *DefaultSlotScheduler) FindBookedByShop(ctx context.Context, shopID string) ([]models.Slot, error) {
	if err := validateRef("shopId", shopID); err != nil {
		return nil, err
	}
	return s.Repo.FindBookedByShop(ctx, shopID)
}

func (s *DefaultSlotScheduler) FindAvailableByStaffAndDate(ctx context.Context, staffID, date string) ([]models.Slot, error) {
	if err := validateRef("staffId", staffID); err != nil {
		return nil, err
	}
	if err := validateDate("slotDate", date); err != nil {
		return nil, err
	}
	return s.Repo.FindAvailableByStaffAndDate(ctx, staffID, date)
}
