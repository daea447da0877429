package outbox

import (
	"context"
	"errors"
	"fmt"

	"furcare/models"
	"furcare/services/notification"
	"furcare/services/tasks"

	"github.com/hibiken/asynq"
)

// Dispatcher delivers one outbox event. Returning nil means the event is handed over for good.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev models.OutboxEvent) error
}

// SinkDispatcher writes notifications inline. Used when Redis is disabled.
type SinkDispatcher struct {
	Sink notification.NotificationSink
}

func (d SinkDispatcher) Dispatch(ctx context.Context, ev models.OutboxEvent) error {
	if ev.Notification == nil {
		return nil
	}
	return notification.Deliver(ctx, d.Sink, ev.ID, *ev.Notification)
}

// AsynqDispatcher enqueues a notification:create task per event.
type AsynqDispatcher struct {
	Client   *asynq.Client
	MaxRetry int
}

func NewAsynqDispatcher(client *asynq.Client, maxRetry int) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client, MaxRetry: maxRetry}
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, ev models.OutboxEvent) error {
	if ev.Notification == nil {
		return nil
	}
	task, opts, err := tasks.NewCreateNotificationTask(ev.ID, *ev.Notification, d.MaxRetry)
	if err != nil {
		return fmt.Errorf("build notification task for %s: %w", ev.ID, err)
	}
	if _, err := d.Client.EnqueueContext(ctx, task, opts...); err != nil {
		// Already queued by an earlier attempt whose MarkDispatched did not land.
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue notification task for %s: %w", ev.ID, err)
	}
	return nil
}
