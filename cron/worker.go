package cron

import (
	"context"
	"time"

	"furcare/config"
	"furcare/services/notification"
	"furcare/services/tasks"
	"furcare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt addresses the Redis database holding the notification queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitNotificationWorker runs the asynq worker in the background and returns the server
// so the caller can shut it down.
func InitNotificationWorker(sink notification.NotificationSink) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: config.AppConfig.WorkerConcurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCreateNotification, handleNotificationTask(sink))

	go func() {
		logger.Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Notification worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Notification worker gave up after max attempts")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleNotificationTask(sink notification.NotificationSink) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		p, err := tasks.ParseNotificationPayload(task)
		if err != nil {
			logger.Error("Dropping malformed notification task", zap.Error(err))
			return asynq.SkipRetry
		}

		if err := notification.Deliver(ctx, sink, p.EventID, p.Request); err != nil {
			if utils.IsKind(err, utils.KindValidation) {
				logger.Error("Dropping invalid notification",
					zap.String("eventID", p.EventID), zap.Error(err))
				return asynq.SkipRetry
			}
			logger.Warn("Notification delivery failed, will retry",
				zap.String("eventID", p.EventID), zap.Error(err))
			return err
		}

		logger.Debug("Notification delivered",
			zap.String("eventID", p.EventID),
			zap.String("receiverType", string(p.Request.ReceiverType)))
		return nil
	}
}
