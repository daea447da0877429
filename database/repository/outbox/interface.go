// File: database/repository/outbox/interface.go
package outboxRepo

import (
	"context"
	"time"

	"furcare/database"
	"furcare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// OutboxRepository drains domain events. Events are inserted by the repositories that own
// the aggregate, inside their own transactions.
type OutboxRepository interface {
	// ClaimPending leases up to limit pending events for lease, oldest first.
	ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]models.OutboxEvent, error)
	MarkDispatched(ctx context.Context, id string) error
	// MarkAttemptFailed records a failed dispatch, hides the event from claims until
	// retryAt, and gives it up once attempts reach maxAttempts.
	MarkAttemptFailed(ctx context.Context, id string, cause error, maxAttempts int, retryAt time.Time) error
	EnsureIndexes(ctx context.Context) error
}

type mongoOutboxRepo struct {
	coll *mongo.Collection
}

func NewMongoOutboxRepo() OutboxRepository {
	return &mongoOutboxRepo{
		coll: database.DB().Collection(database.OutboxCollection),
	}
}
