package notificationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"furcare/database"
	"furcare/models"
	"furcare/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateEvent reports that a notification for the same outbox event is already stored.
var ErrDuplicateEvent = errors.New("notification for event already stored")

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByReceiver(ctx context.Context, receiverType models.ReceiverType, receiverID string) ([]models.Notification, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo returns a NotificationRepository backed by the notifications collection.
func NewMongoNotificationRepo() NotificationRepository {
	return &mongoNotificationRepo{
		coll: database.DB().Collection(database.NotificationsCollection),
	}
}

// Create inserts a notification, assigning an ID if needed. A second insert for the same
// EventID returns ErrDuplicateEvent.
func (r *mongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if n.ID == "" {
		n.ID = utils.NewRef()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		if n.EventID != "" && mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEvent
		}
		return fmt.Errorf("insert notification failed: %w", err)
	}
	return nil
}

// FindByReceiver lists notifications addressed to a user or a shop, newest first.
func (r *mongoNotificationRepo) FindByReceiver(ctx context.Context, receiverType models.ReceiverType, receiverID string) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"receiverType": receiverType, "userId": receiverID}
	if receiverType == models.ReceiverShop {
		filter = bson.M{"receiverType": receiverType, "shopId": receiverID}
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error fetching notifications: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Notification{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding notifications: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the inbox indexes used by FindByReceiver.
func (r *mongoNotificationRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "receiverType", Value: 1}, {Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_inbox_idx"),
		},
		{
			Keys:    bson.D{{Key: "receiverType", Value: 1}, {Key: "shopId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("shop_inbox_idx"),
		},
		{
			Keys:    bson.D{{Key: "eventId", Value: 1}},
			Options: options.Index().SetName("event_idx").SetUnique(true).SetSparse(true),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create notification indexes: %w", err)
	}
	return nil
}
