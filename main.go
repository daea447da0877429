package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"furcare/config"
	"furcare/cron"
	"furcare/database"
	appointmentRepo "furcare/database/repository/appointment"
	counterRepo "furcare/database/repository/counter"
	notificationRepo "furcare/database/repository/notification"
	outboxRepo "furcare/database/repository/outbox"
	slotRepo "furcare/database/repository/slot"
	"furcare/handlers"
	"furcare/middleware"
	"furcare/routes"
	"furcare/services/appointment"
	"furcare/services/booking"
	"furcare/services/notification"
	"furcare/services/outbox"
	"furcare/services/scheduler"
	"furcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()

	// repositories.
	slots := slotRepo.NewMongoSlotRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()
	counters := counterRepo.NewMongoCounterRepo()
	outboxEvents := outboxRepo.NewMongoOutboxRepo()
	notifications := notificationRepo.NewMongoNotificationRepo()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"slots":         slots.EnsureIndexes,
		"appointments":  appointments.EnsureIndexes,
		"outbox":        outboxEvents.EnsureIndexes,
		"notifications": notifications.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}
	cancelIndex()

	// services.
	var (
		locker      utils.Locker
		lockClient  *redis.Client
		queueClient *asynq.Client
		worker      *asynq.Server
		dispatcher  outbox.Dispatcher
	)

	notificationService, err := notification.NewDefaultNotificationService(notifications)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	if config.AppConfig.RedisEnabled {
		lockClient = utils.GetLockClient()
		locker = utils.NewRedisLocker(lockClient, config.SlotLockTTL(), config.SlotLockWait())

		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		dispatcher = outbox.NewAsynqDispatcher(queueClient, config.AppConfig.OutboxMaxAttempts)
		worker = cron.InitNotificationWorker(notificationService)
	} else {
		logger.Warn("Redis disabled: slot locks are process-local and notifications are written inline")
		locker = utils.NewLocalLocker(config.SlotLockWait())
		dispatcher = outbox.SinkDispatcher{Sink: notificationService}
	}

	slotScheduler := scheduler.NewDefaultSlotScheduler(slots, locker)
	numbers := booking.NewDefaultNumberGenerator(counters, appointments, config.AppConfig.BookingNumberPrefix)
	lifecycle := appointment.NewDefaultAppointmentLifecycle(appointments, numbers)

	relay := outbox.NewRelay(outboxEvents, dispatcher,
		config.OutboxPollInterval(), config.AppConfig.OutboxBatchSize, config.AppConfig.OutboxMaxAttempts)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	relayDone := make(chan struct{})
	go func() {
		relay.Run(bgCtx)
		close(relayDone)
	}()
	utils.StartHealthMonitor(bgCtx, lockClient, database.MongoClient)

	slotHandler := handlers.NewSlotHandler(slotScheduler)
	appointmentHandler := handlers.NewAppointmentHandler(lifecycle)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Slot endpoints.
		CreateSlotHandler:             slotHandler.CreateSlotHandler,
		GetSlotHandler:                slotHandler.GetSlotHandler,
		UpdateSlotHandler:             slotHandler.UpdateSlotHandler,
		CancelSlotHandler:             slotHandler.CancelSlotHandler,
		DeleteSlotHandler:             slotHandler.DeleteSlotHandler,
		GetShopSlotsHandler:           slotHandler.GetShopSlotsHandler,
		GetBookedShopSlotsHandler:     slotHandler.GetBookedShopSlotsHandler,
		GetSlotsByDateHandler:         slotHandler.GetSlotsByDateHandler,
		GetAvailableStaffSlotsHandler: slotHandler.GetAvailableStaffSlotsHandler,

		// Appointment endpoints.
		CreateAppointmentHandler:       appointmentHandler.CreateAppointmentHandler,
		GetAppointmentHandler:          appointmentHandler.GetAppointmentHandler,
		GetAppointmentByNumberHandler:  appointmentHandler.GetAppointmentByNumberHandler,
		UpdateAppointmentStatusHandler: appointmentHandler.UpdateAppointmentStatusHandler,
		GetShopAppointmentsHandler:     appointmentHandler.GetShopAppointmentsHandler,
		GetUserAppointmentsHandler:     appointmentHandler.GetUserAppointmentsHandler,

		// Notification endpoints.
		GetUserNotificationsHandler: notificationHandler.GetUserNotificationsHandler,
		GetShopNotificationsHandler: notificationHandler.GetShopNotificationsHandler,

		HealthHandler: handlers.HealthHandler,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stopBackground()
	<-relayDone
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Sugar().Warnf("main: failed to close queue client: %v", err)
		}
	}
	if lockClient != nil {
		_ = lockClient.Close()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
