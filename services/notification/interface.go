package notification

import (
	"context"
	"errors"
	"fmt"

	notificationRepo "furcare/database/repository/notification"
	"furcare/models"
	"furcare/utils"

	"go.uber.org/zap"
)

// NotificationSink records a notification for a user or a shop.
type NotificationSink interface {
	CreateNotification(ctx context.Context, userID, shopID string, receiverType models.ReceiverType, notificationType, message string) error
}

// EventSink records the notification of one outbox event at most once, however often the
// event is redelivered.
type EventSink interface {
	DeliverEvent(ctx context.Context, eventID string, req models.NotificationRequest) error
}

// NotificationService is the sink plus the read side used by the HTTP layer.
type NotificationService interface {
	NotificationSink
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	ListForShop(ctx context.Context, shopID string) ([]models.Notification, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	repo notificationRepo.NotificationRepository
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository) (*DefaultNotificationService, error) {
	if repo == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{repo: repo}, nil
}

func (s *DefaultNotificationService) CreateNotification(
	ctx context.Context,
	userID, shopID string,
	receiverType models.ReceiverType,
	notificationType, message string,
) error {
	return s.store(ctx, "", models.NotificationRequest{
		UserID:       userID,
		ShopID:       shopID,
		ReceiverType: receiverType,
		Type:         notificationType,
		Message:      message,
	})
}

// DeliverEvent stores req keyed by eventID. A redelivered event is a no-op.
func (s *DefaultNotificationService) DeliverEvent(ctx context.Context, eventID string, req models.NotificationRequest) error {
	return s.store(ctx, eventID, req)
}

func (s *DefaultNotificationService) store(ctx context.Context, eventID string, req models.NotificationRequest) error {
	if req.ReceiverType != models.ReceiverUser && req.ReceiverType != models.ReceiverShop {
		return utils.NewValidationError("receiverType", fmt.Sprintf("unknown receiver %q", req.ReceiverType))
	}
	if req.Message == "" {
		return utils.NewValidationError("message", "is required")
	}

	n := &models.Notification{
		EventID:      eventID,
		UserID:       req.UserID,
		ShopID:       req.ShopID,
		ReceiverType: req.ReceiverType,
		Type:         req.Type,
		Message:      req.Message,
	}
	err := s.repo.Create(ctx, n)
	if errors.Is(err, notificationRepo.ErrDuplicateEvent) {
		utils.GetLogger().Debug("Notification already stored for event", zap.String("eventID", eventID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("CreateNotification: %w", err)
	}

	utils.GetLogger().Debug("Notification stored",
		zap.String("notificationID", n.ID),
		zap.String("receiverType", string(req.ReceiverType)),
		zap.String("type", req.Type))
	return nil
}

func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	if !utils.IsValidRef(userID) {
		return nil, utils.NewValidationError("userId", "must be a 24-character hex identifier")
	}
	return s.repo.FindByReceiver(ctx, models.ReceiverUser, userID)
}

func (s *DefaultNotificationService) ListForShop(ctx context.Context, shopID string) ([]models.Notification, error) {
	if !utils.IsValidRef(shopID) {
		return nil, utils.NewValidationError("shopId", "must be a 24-character hex identifier")
	}
	return s.repo.FindByReceiver(ctx, models.ReceiverShop, shopID)
}

// Deliver hands a queued request to sink, keyed by eventID when the sink can de-duplicate.
func Deliver(ctx context.Context, sink NotificationSink, eventID string, req models.NotificationRequest) error {
	if es, ok := sink.(EventSink); ok && eventID != "" {
		return es.DeliverEvent(ctx, eventID, req)
	}
	return sink.CreateNotification(ctx, req.UserID, req.ShopID, req.ReceiverType, req.Type, req.Message)
}
