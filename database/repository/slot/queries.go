// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"furcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSlotRepo) FindByShop(ctx context.Context, shopID string) ([]models.Slot, error) {
	return r.find(ctx, byShopFilter(shopID))
}

func (r *mongoSlotRepo) FindByShopAndDateRange(ctx context.Context, shopID, from, to string) ([]models.Slot, error) {
	return r.find(ctx, byShopAndDateRangeFilter(shopID, from, to))
}

func (r *mongoSlotRepo) FindByDate(ctx context.Context, date string) ([]models.Slot, error) {
	return r.find(ctx, byDateFilter(date))
}

func (r *mongoSlotRepo) FindBookedByShop(ctx context.Context, shopID string) ([]models.Slot, error) {
	return r.find(ctx, bookedByShopFilter(shopID))
}

func (r *mongoSlotRepo) FindActiveByStaffAndDate(ctx context.Context, staffID, date string) ([]models.Slot, error) {
	return r.find(ctx, activeByStaffAndDateFilter(staffID, date))
}

func (r *mongoSlotRepo) FindAvailableByStaffAndDate(ctx context.Context, staffID, date string) ([]models.Slot, error) {
	return r.find(ctx, availableByStaffAndDateFilter(staffID, date))
}

func (r *mongoSlotRepo) find(ctx context.Context, filter bson.M) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "slotDate", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := []models.Slot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}
