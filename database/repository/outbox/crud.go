package outboxRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"furcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func claimableFilter(now time.Time) bson.M {
	return bson.M{
		"status": models.OutboxPending,
		"$or": bson.A{
			bson.M{"claimedUntil": bson.M{"$exists": false}},
			bson.M{"claimedUntil": nil},
			bson.M{"claimedUntil": bson.M{"$lt": now}},
		},
	}
}

// failedAttemptUpdate keeps the event leased until retryAt so the next claim skips it.
func failedAttemptUpdate(cause error, retryAt time.Time) bson.M {
	return bson.M{
		"$inc": bson.M{"attempts": 1},
		"$set": bson.M{"lastError": cause.Error(), "claimedUntil": retryAt},
	}
}

func (r *mongoOutboxRepo) ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]models.OutboxEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetReturnDocument(options.After)

	var claimed []models.OutboxEvent
	for len(claimed) < limit {
		now := time.Now()
		update := bson.M{"$set": bson.M{"claimedUntil": now.Add(lease)}}

		var ev models.OutboxEvent
		err := r.coll.FindOneAndUpdate(ctx, claimableFilter(now), update, opts).Decode(&ev)
		if errors.Is(err, mongo.ErrNoDocuments) {
			break
		}
		if err != nil {
			return claimed, fmt.Errorf("claim outbox event failed: %w", err)
		}
		claimed = append(claimed, ev)
	}
	return claimed, nil
}

func (r *mongoOutboxRepo) MarkDispatched(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set":   bson.M{"status": models.OutboxDispatched, "dispatchedAt": time.Now()},
		"$unset": bson.M{"claimedUntil": ""},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("mark outbox event %s dispatched: %w", id, err)
	}
	return nil
}

func (r *mongoOutboxRepo) MarkAttemptFailed(ctx context.Context, id string, cause error, maxAttempts int, retryAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := failedAttemptUpdate(cause, retryAt)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ev models.OutboxEvent
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&ev); err != nil {
		return fmt.Errorf("record outbox failure for %s: %w", id, err)
	}
	if ev.Attempts < maxAttempts {
		return nil
	}

	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": models.OutboxFailed}}); err != nil {
		return fmt.Errorf("mark outbox event %s failed: %w", id, err)
	}
	return nil
}
