// FILE: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the slots collection.
func (r *mongoSlotRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Overlap checks and availability lookups
		{
			Keys:    bson.D{{Key: "staffId", Value: 1}, {Key: "slotDate", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("staff_date_status_idx"),
		},
		// Shop listings, optionally by date range
		{
			Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "slotDate", Value: 1}},
			Options: options.Index().SetName("shop_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "isBooked", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("shop_booked_idx"),
		},
		{
			Keys:    bson.D{{Key: "slotDate", Value: 1}},
			Options: options.Index().SetName("date_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
