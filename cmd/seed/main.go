package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"furcare/config"
	"furcare/database"
	appointmentRepo "furcare/database/repository/appointment"
	counterRepo "furcare/database/repository/counter"
	slotRepo "furcare/database/repository/slot"
	"furcare/models"
	"furcare/services/appointment"
	"furcare/services/booking"
	"furcare/services/scheduler"
	"furcare/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Seeds one demo shop with a week of half-hour slots for three groomers and books a
// random handful of them. Existing slots, appointments and outbox events are wiped.
func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	database.InitDB()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.DB()
	for _, coll := range []string{database.SlotsCollection, database.AppointmentsCollection, database.OutboxCollection, database.CountersCollection} {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			logger.Sugar().Fatalf("Failed to clear %s: %v", coll, err)
		}
	}

	slots := slotRepo.NewMongoSlotRepo()
	appts := appointmentRepo.NewMongoAppointmentRepo()
	if err := slots.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("Failed to ensure slot indexes: %v", err)
	}
	if err := appts.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("Failed to ensure appointment indexes: %v", err)
	}

	sched := scheduler.NewDefaultSlotScheduler(slots, utils.NewLocalLocker(time.Second))
	numbers := booking.NewDefaultNumberGenerator(counterRepo.NewMongoCounterRepo(), appts, config.AppConfig.BookingNumberPrefix)
	lifecycle := appointment.NewDefaultAppointmentLifecycle(appts, numbers)

	shopID := utils.NewRef()
	staff := []string{utils.NewRef(), utils.NewRef(), utils.NewRef()}
	userID, petID, serviceID := utils.NewRef(), utils.NewRef(), utils.NewRef()

	var created []*models.Slot
	today := time.Now()
	for day := 0; day < 7; day++ {
		date := today.AddDate(0, 0, day).Format(utils.DateLayout)
		for _, staffID := range staff {
			// 09:00 to 17:00 in 30 minute steps.
			for start := 9 * 60; start < 17*60; start += 30 {
				slot, err := sched.Create(ctx, models.CreateSlotRequest{
					ShopID:            shopID,
					StaffID:           staffID,
					SlotDate:          date,
					StartTime:         clock(start),
					EndTime:           clock(start + 30),
					DurationInMinutes: 30,
				})
				if err != nil {
					logger.Sugar().Fatalf("Failed to create slot: %v", err)
				}
				created = append(created, slot)
			}
		}
	}

	booked := 0
	for _, i := range rand.Perm(len(created))[:len(created)/10] {
		s := created[i]
		appt, err := lifecycle.CreateAppointment(ctx, models.CreateAppointmentRequest{
			UserID:      userID,
			PetID:       petID,
			ShopID:      shopID,
			StaffID:     s.StaffID,
			ServiceID:   serviceID,
			SlotID:      s.ID,
			SlotDetails: models.SlotDetails{Date: s.SlotDate, StartTime: s.StartTime, EndTime: s.EndTime},
		})
		if err != nil {
			logger.Warn("Skipping booking", zap.String("slotID", s.ID), zap.Error(err))
			continue
		}
		booked++
		logger.Debug("Booked", zap.String("bookingNumber", appt.BookingNumber))
	}

	logger.Sugar().Infof("Seeded shop %s: %d slots, %d appointments", shopID, len(created), booked)
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
