package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"furcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (repo *MongoAppointmentRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	sess, err := repo.appointmentColl.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (repo *MongoAppointmentRepo) insertEvents(sc mongo.SessionContext, events []models.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}
	docs := make([]interface{}, len(events))
	for i := range events {
		docs[i] = events[i]
	}
	if _, err := repo.outboxColl.InsertMany(sc, docs); err != nil {
		return fmt.Errorf("insert outbox events failed: %w", err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) CreateWithEvents(ctx context.Context, appt *models.Appointment, events []models.OutboxEvent) error {
	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{
			"_id":      appt.SlotID,
			"status":   models.SlotStatusActive,
			"isBooked": false,
		}
		update := bson.M{"$set": bson.M{"isBooked": true, "updatedAt": appt.CreatedAt}}

		res, err := repo.slotColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("mark slot booked failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotUnavailable
		}

		if _, err := repo.appointmentColl.InsertOne(sc, appt); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicateBookingNumber
			}
			return fmt.Errorf("insert appointment failed: %w", err)
		}

		return repo.insertEvents(sc, events)
	})
	if err != nil {
		return fmt.Errorf("create appointment transaction failed: %w", err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) UpdateStatusWithEvents(
	ctx context.Context,
	appt *models.Appointment,
	from models.AppointmentStatus,
	releaseSlot bool,
	events []models.OutboxEvent,
) error {
	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"_id": appt.ID, "appointmentStatus": from}
		update := bson.M{"$set": bson.M{
			"appointmentStatus": appt.AppointmentStatus,
			"updatedAt":         appt.UpdatedAt,
		}}

		res, err := repo.appointmentColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("update appointment status failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStatusChanged
		}

		if releaseSlot {
			// The slot may have been cancelled or deleted since; the flag is cleared regardless.
			slotUpdate := bson.M{"$set": bson.M{"isBooked": false, "updatedAt": appt.UpdatedAt}}
			if _, err := repo.slotColl.UpdateOne(sc, bson.M{"_id": appt.SlotID}, slotUpdate); err != nil {
				return fmt.Errorf("release slot failed: %w", err)
			}
		}

		return repo.insertEvents(sc, events)
	})
	if err != nil {
		return fmt.Errorf("update appointment %s transaction failed: %w", appt.ID, err)
	}
	return nil
}
