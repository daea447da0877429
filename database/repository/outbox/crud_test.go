package outboxRepo

import (
	"errors"
	"testing"
	"time"

	"furcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestClaimableFilter(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f := claimableFilter(now)

	assert.Equal(t, models.OutboxPending, f["status"])

	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Equal(t, bson.M{"claimedUntil": bson.M{"$lt": now}}, or[2])
}

func TestFailedAttemptUpdate_ParksEventUntilRetry(t *testing.T) {
	retryAt := time.Date(2024, 5, 1, 9, 5, 0, 0, time.UTC)
	update := failedAttemptUpdate(errors.New("redis down"), retryAt)

	assert.Equal(t, bson.M{"attempts": 1}, update["$inc"])
	assert.Equal(t, bson.M{"lastError": "redis down", "claimedUntil": retryAt}, update["$set"])
	assert.NotContains(t, update, "$unset")
}
