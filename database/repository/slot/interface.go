// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"time"

	"furcare/database"
	"furcare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotRepository persists slots. Reads never return deleted slots; a missing slot is (nil, nil).
type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	Update(ctx context.Context, slot *models.Slot, expected models.SlotStatus) error
	SetStatus(ctx context.Context, id string, to models.SlotStatus, at time.Time, from ...models.SlotStatus) error
	FindByID(ctx context.Context, id string) (*models.Slot, error)
	FindByShop(ctx context.Context, shopID string) ([]models.Slot, error)
	FindByShopAndDateRange(ctx context.Context, shopID, from, to string) ([]models.Slot, error)
	FindByDate(ctx context.Context, date string) ([]models.Slot, error)
	FindBookedByShop(ctx context.Context, shopID string) ([]models.Slot, error)
	FindActiveByStaffAndDate(ctx context.Context, staffID, date string) ([]models.Slot, error)
	FindAvailableByStaffAndDate(ctx context.Context, staffID, date string) ([]models.Slot, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{
		coll: database.DB().Collection(database.SlotsCollection),
	}
}
