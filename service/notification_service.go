package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/domain"
)

// NotificationService is the user-visible feedback sink. It appends a
// Notification record and logs; failures never propagate to the operation
// that produced the notification.
type NotificationService struct {
	store  domain.RecordStore
	logger *logrus.Logger
	tracer trace.Tracer
}

func NewNotificationService(store domain.RecordStore, tracer trace.Tracer, logger *logrus.Logger) *NotificationService {
	return &NotificationService{
		store:  store,
		logger: logger,
		tracer: tracer,
	}
}

func (service *NotificationService) Notify(ctx context.Context, userID, message, kind string) {
	ctx, span := service.tracer.Start(ctx, "NotificationService.Notify")
	defer span.End()

	notification := &domain.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	if err := service.store.SaveNotification(ctx, notification); err != nil {
		service.logger.Warnf("dropping notification for %s: %s", userID, err)
		return
	}
	service.logger.Infof("notified %s [%s]: %s", userID, kind, message)
}

func (service *NotificationService) ForUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	ctx, span := service.tracer.Start(ctx, "NotificationService.ForUser")
	defer span.End()

	all, err := service.store.Notifications(ctx)
	if err != nil {
		return nil, err
	}

	var mine []*domain.Notification
	for _, notification := range all {
		if notification.UserID == userID {
			mine = append(mine, notification)
		}
	}
	return mine, nil
}
