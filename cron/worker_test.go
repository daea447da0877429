package cron

import (
	"context"
	"errors"
	"testing"

	"furcare/models"
	"furcare/services/tasks"
	"furcare/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) CreateNotification(ctx context.Context, userID, shopID string, receiverType models.ReceiverType, notificationType, message string) error {
	return m.Called(userID, shopID, receiverType, notificationType, message).Error(0)
}

func notificationTask(t *testing.T) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewCreateNotificationTask("evt-1", models.NotificationRequest{
		UserID:       "u1",
		ShopID:       "s1",
		ReceiverType: models.ReceiverUser,
		Type:         models.NotificationAppointmentStatus,
		Message:      "Your appointment FC01052024-01 has been confirmed.",
	}, 3)
	require.NoError(t, err)
	return task
}

func TestHandleNotificationTask_Delivers(t *testing.T) {
	sink := &mockSink{}
	sink.On("CreateNotification", "u1", "s1", models.ReceiverUser, models.NotificationAppointmentStatus,
		"Your appointment FC01052024-01 has been confirmed.").Return(nil)

	err := handleNotificationTask(sink)(context.Background(), notificationTask(t))
	assert.NoError(t, err)
	sink.AssertExpectations(t)
}

func TestHandleNotificationTask_RetriesSinkFailure(t *testing.T) {
	sink := &mockSink{}
	sink.On("CreateNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("mongo unavailable"))

	err := handleNotificationTask(sink)(context.Background(), notificationTask(t))
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleNotificationTask_SkipsPermanentFailures(t *testing.T) {
	sink := &mockSink{}
	sink.On("CreateNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(utils.NewValidationError("message", "is required"))

	err := handleNotificationTask(sink)(context.Background(), notificationTask(t))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = handleNotificationTask(sink)(context.Background(), asynq.NewTask(tasks.TypeCreateNotification, []byte("nope")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	sink.AssertNumberOfCalls(t, "CreateNotification", 1)
}

type mockEventSink struct {
	mockSink
}

func (m *mockEventSink) DeliverEvent(ctx context.Context, eventID string, req models.NotificationRequest) error {
	return m.Called(eventID, req.ReceiverType).Error(0)
}

func TestHandleNotificationTask_KeysDeliveryOnEventID(t *testing.T) {
	sink := &mockEventSink{}
	sink.On("DeliverEvent", "evt-1", models.ReceiverUser).Return(nil).Twice()

	handler := handleNotificationTask(sink)
	require.NoError(t, handler(context.Background(), notificationTask(t)))
	require.NoError(t, handler(context.Background(), notificationTask(t)))

	sink.AssertExpectations(t)
	sink.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
