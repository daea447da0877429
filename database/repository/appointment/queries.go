package appointmentRepo

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

// FindByID retrieves an appointment by its ID.
func (repo *MongoAppointmentRepo) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	return repo.findOne(ctx, bson.M{"_id": id})
}

// FindByBookingNumber retrieves an appointment by its human-readable reference.
func (repo *MongoAppointmentRepo) FindByBookingNumber(ctx context.Context, bookingNumber string) (*models.Appointment, error) {
	return repo.findOne(ctx, bson.M{"bookingNumber": bookingNumber})
}

func (repo *MongoAppointmentRepo) FindByShop(ctx context.Context, shopID string) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{"shopId": shopID})
}

func (repo *MongoAppointmentRepo) FindByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{"userId": userID})
}

func (repo *MongoAppointmentRepo) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}}
	n, err := repo.appointmentColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count appointments failed: %w", err)
	}
	return n, nil
}

func (repo *MongoAppointmentRepo) findOne(ctx context.Context, filter bson.M) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := repo.appointmentColl.FindOne(ctx, filter).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find appointment failed: %w", err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.appointmentColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}
