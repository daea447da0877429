package tasks

import (
	"testing"

	"furcare/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateNotificationTask(t *testing.T) {
	req := models.NotificationRequest{
		UserID:       "665f1c2ab1e4c0a1d2e3f700",
		ShopID:       "665f1c2ab1e4c0a1d2e3f701",
		ReceiverType: models.ReceiverShop,
		Type:         models.NotificationNewAppointment,
		Message:      "New appointment received — FC01052024-01",
	}

	task, opts, err := NewCreateNotificationTask("evt-1", req, 5)
	require.NoError(t, err)
	assert.Equal(t, TypeCreateNotification, task.Type())
	assert.Len(t, opts, 2)

	p, err := ParseNotificationPayload(task)
	require.NoError(t, err)
	assert.Equal(t, "evt-1", p.EventID)
	assert.Equal(t, req, p.Request)
}

func TestParseNotificationPayload_Garbage(t *testing.T) {
	_, err := ParseNotificationPayload(asynq.NewTask(TypeCreateNotification, []byte("{")))
	assert.Error(t, err)
}
