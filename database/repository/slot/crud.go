// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"furcare/models"
	"furcare/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if slot.ID == "" {
		slot.ID = utils.NewRef()
	}
	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("failed to insert slot: %w", err)
	}
	return nil
}

// Update writes the schedule fields of slot, provided the stored slot is still in the
// expected status. It returns mongo.ErrNoDocuments when nothing matched.
func (r *mongoSlotRepo) Update(ctx context.Context, slot *models.Slot, expected models.SlotStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, byIDInStatusFilter(slot.ID, expected), scheduleUpdateDoc(slot))
	if err != nil {
		return fmt.Errorf("failed to update slot %s: %w", slot.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetStatus moves the slot to status to if it is currently in one of from. It returns
// mongo.ErrNoDocuments when nothing matched.
func (r *mongoSlotRepo) SetStatus(ctx context.Context, id string, to models.SlotStatus, at time.Time, from ...models.SlotStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, byIDInStatusFilter(id, from...), statusUpdateDoc(to, at))
	if err != nil {
		return fmt.Errorf("failed to set slot %s to %s: %w", id, to, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoSlotRepo) FindByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, byIDFilter(id)).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find slot %s: %w", id, err)
	}
	return &slot, nil
}
