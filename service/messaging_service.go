package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/domain"
	"marketplace_service/errors"
)

// MessagingService keeps one canonical conversation per pair of users.
// Sender and receiver read the same record, so a message either exists for
// both of them or for neither.
type MessagingService struct {
	store    domain.RecordStore
	notifier domain.Notifier
	logger   *logrus.Logger
	tracer   trace.Tracer
}

func NewMessagingService(store domain.RecordStore, notifier domain.Notifier, tracer trace.Tracer, logger *logrus.Logger) *MessagingService {
	return &MessagingService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		tracer:   tracer,
	}
}

// conversationKey is order-independent so both participants address the
// same record.
func conversationKey(a, b string) string {
	if a < b {
		return a + ":" + b
	}
	return b + ":" + a
}

func (service *MessagingService) Send(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error) {
	ctx, span := service.tracer.Start(ctx, "MessagingService.Send")
	defer span.End()

	if strings.TrimSpace(content) == "" {
		return nil, errors.NewValidationError("content", "Message cannot be empty")
	}
	if senderID == receiverID {
		return nil, errors.NewValidationError("receiverId", "Cannot message yourself")
	}

	if err := service.requireUser(ctx, receiverID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	conversation, err := service.findConversation(ctx, senderID, receiverID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if conversation == nil {
		conversation = &domain.Conversation{
			ID:           primitive.NewObjectID(),
			Key:          conversationKey(senderID, receiverID),
			Participants: [2]string{senderID, receiverID},
		}
	}

	message := domain.Message{
		ID:         primitive.NewObjectID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  time.Now(),
		Read:       false,
	}
	conversation.Messages = append(conversation.Messages, message)

	if err := service.store.SaveConversation(ctx, conversation); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	service.notifier.Notify(ctx, receiverID, "You have a new message", "info")
	return &message, nil
}

// ListConversations returns the user's conversations keyed by counterpart
// id. Message order within a conversation is send order, entries are only
// ever appended.
func (service *MessagingService) ListConversations(ctx context.Context, userID string) (map[string][]domain.Message, error) {
	ctx, span := service.tracer.Start(ctx, "MessagingService.ListConversations")
	defer span.End()

	conversations, err := service.store.Conversations(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	result := map[string][]domain.Message{}
	for _, conversation := range conversations {
		counterpart, ok := counterpartOf(conversation, userID)
		if !ok {
			continue
		}
		result[counterpart] = conversation.Messages
	}
	return result, nil
}

// MarkRead flips the read flag on every message the counterpart sent to
// this user. The flag is stored and returned, nothing else depends on it.
func (service *MessagingService) MarkRead(ctx context.Context, userID, counterpartID string) error {
	ctx, span := service.tracer.Start(ctx, "MessagingService.MarkRead")
	defer span.End()

	conversation, err := service.findConversation(ctx, userID, counterpartID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if conversation == nil {
		return nil
	}

	changed := false
	for i := range conversation.Messages {
		if conversation.Messages[i].ReceiverID == userID && !conversation.Messages[i].Read {
			conversation.Messages[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return service.store.SaveConversation(ctx, conversation)
}

func (service *MessagingService) findConversation(ctx context.Context, a, b string) (*domain.Conversation, error) {
	conversations, err := service.store.Conversations(ctx)
	if err != nil {
		return nil, err
	}
	key := conversationKey(a, b)
	for _, conversation := range conversations {
		if conversation.Key == key {
			return conversation, nil
		}
	}
	return nil, nil
}

func (service *MessagingService) requireUser(ctx context.Context, userID string) error {
	users, err := service.store.Users(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		if user.ID.Hex() == userID {
			return nil
		}
	}
	return errors.ErrReceiverNotFound
}

func counterpartOf(conversation *domain.Conversation, userID string) (string, bool) {
	if conversation.Participants[0] == userID {
		return conversation.Participants[1], true
	}
	if conversation.Participants[1] == userID {
		return conversation.Participants[0], true
	}
	return "", false
}
