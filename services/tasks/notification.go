package tasks

import (
	"encoding/json"
	"fmt"

	"furcare/models"

	"github.com/hibiken/asynq"
)

const TypeCreateNotification = "notification:create"

// NotificationPayload is the body of a notification:create task.
type NotificationPayload struct {
	EventID string                     `json:"eventId"`
	Request models.NotificationRequest `json:"request"`
}

// NewCreateNotificationTask builds a task keyed by the outbox event id, so a relay that
// hands the same event over twice does not queue it twice.
func NewCreateNotificationTask(eventID string, req models.NotificationRequest, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(NotificationPayload{EventID: eventID, Request: req})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCreateNotification, b)
	opts := []asynq.Option{
		asynq.TaskID("notification:" + eventID),
		asynq.MaxRetry(maxRetry),
	}
	return task, opts, nil
}

func ParseNotificationPayload(task *asynq.Task) (NotificationPayload, error) {
	var p NotificationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeCreateNotification, err)
	}
	return p, nil
}
