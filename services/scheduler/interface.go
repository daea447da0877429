package scheduler

import (
	"context"
	"time"

	slotRepo "furcare/database/repository/slot"
	"furcare/models"
	"furcare/utils"
)

// SlotScheduler validates and mutates a shop's bookable slots while keeping every staff
// member's active slots on a given day pairwise disjoint.
type SlotScheduler interface {
	Create(ctx context.Context, req models.CreateSlotRequest) (*models.Slot, error)
	Update(ctx context.Context, id string, patch models.SlotPatch) (*models.Slot, error)
	Cancel(ctx context.Context, id string) (*models.Slot, error)
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*models.Slot, error)
	FindByShop(ctx context.Context, shopID string) ([]models.Slot, error)
	FindByShopAndDateRange(ctx context.Context, shopID, from, to string) ([]models.Slot, error)
	FindByDate(ctx context.Context, date string) ([]models.Slot, error)
	FindBookedByShop(ctx context.Context, shopID string) ([]models.Slot, error)
	FindAvailableByStaffAndDate(ctx context.Context, staffID, date string) ([]models.Slot, error)
}

// DefaultSlotScheduler is the production implementation.
type DefaultSlotScheduler struct {
	Repo   slotRepo.SlotRepository
	Locker utils.Locker
	Now    func() time.Time
}

func NewDefaultSlotScheduler(repo slotRepo.SlotRepository, locker utils.Locker) *DefaultSlotScheduler {
	return &DefaultSlotScheduler{Repo: repo, Locker: locker, Now: time.Now}
}

func (s *DefaultSlotScheduler) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
