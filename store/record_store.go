package store

import (
	"context"
	"encoding/json"
	"log"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/domain"
	"marketplace_service/errors"
)

// RecordStore keeps whole collections as JSON blobs in a KeyValue, one blob
// per kind. Saves are upsert-by-id: read the collection, replace or append,
// write the whole list back. Reads fail soft, a missing or corrupt blob is
// an empty collection.
type RecordStore struct {
	kv     KeyValue
	logger *log.Logger
	tracer trace.Tracer
}

func NewRecordStore(kv KeyValue, tracer trace.Tracer, logger *log.Logger) domain.RecordStore {
	return &RecordStore{
		kv:     kv,
		logger: logger,
		tracer: tracer,
	}
}

// load decodes the blob under key into out. Corrupt payloads are logged and
// read as empty instead of failing the caller.
func (s *RecordStore) load(ctx context.Context, key string, out interface{}) error {
	raw, err := s.kv.GetBlob(ctx, key)
	if err == ErrKeyMissing {
		return nil
	}
	if err != nil {
		s.logger.Printf("record store read failed for %q: %s", key, err)
		return errors.ErrStoreUnavailable
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Printf("corrupt payload under %q, reading as empty: %s", key, err)
		return nil
	}
	return nil
}

func (s *RecordStore) save(ctx context.Context, key string, list interface{}) error {
	raw, err := json.Marshal(list)
	if err != nil {
		s.logger.Printf("record store marshal failed for %q: %s", key, err)
		return errors.ErrStoreUnavailable
	}
	if err := s.kv.SetBlob(ctx, key, raw); err != nil {
		s.logger.Printf("record store write failed for %q: %s", key, err)
		return errors.ErrStoreUnavailable
	}
	return nil
}

func (s *RecordStore) Users(ctx context.Context) ([]*domain.UserProfile, error) {
	ctx, span := s.tracer.Start(ctx, "RecordStore.Users")
	defer span.End()

	var users []*domain.UserProfile
	if err := s.load(ctx, domain.KindUsers, &users); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return users, nil
}

func (s *RecordStore) SaveUser(ctx context.Context, user *domain.UserProfile) error {
	ctx, span := s.tracer.Start(ctx, "RecordStore.SaveUser")
	defer span.End()

	users, err := s.Users(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	replaced := false
	for i, existing := range users {
		if existing.ID == user.ID {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}
	return s.save(ctx, domain.KindUsers, users)
}

func (s *RecordStore) Bookings(ctx context.Context) ([]*domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "RecordStore.Bookings")
	defer span.End()

	var bookings []*domain.Booking
	if err := s.load(ctx, domain.KindBookings, &bookings); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return bookings, nil
}

func (s *RecordStore) SaveBooking(ctx context.Context, booking *domain.Booking) error {
	ctx, span := s.tracer.Start(ctx, "RecordStore.SaveBooking")
	defer span.End()

	bookings, err := s.Bookings(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	replaced := false
	for i, existing := range bookings {
		if existing.ID == booking.ID {
			bookings[i] = booking
			replaced = true
			break
		}
	}
	if !replaced {
		bookings = append(bookings, booking)
	}
	return s.save(ctx, domain.KindBookings, bookings)
}

func (s *RecordStore) Conversations(ctx context.Context) ([]*domain.Conversation, error) {
	ctx, span := s.tracer.Start(ctx, "RecordStore.Conversations")
	defer span.End()

	var conversations []*domain.Conversation
	if err := s.load(ctx, domain.KindConversations, &conversations); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return conversations, nil
}

func (s *RecordStore) SaveConversation(ctx context.Context, conversation *domain.Conversation) error {
	ctx, span := s.tracer.Start(ctx, "RecordStore.SaveConversation")
	defer span.End()

	conversations, err := s.Conversations(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	replaced := false
	for i, existing := range conversations {
		if existing.ID == conversation.ID {
			conversations[i] = conversation
			replaced = true
			break
		}
	}
	if !replaced {
		conversations = append(conversations, conversation)
	}
	return s.save(ctx, domain.KindConversations, conversations)
}

func (s *RecordStore) Notifications(ctx context.Context) ([]*domain.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "RecordStore.Notifications")
	defer span.End()

	var notifications []*domain.Notification
	if err := s.load(ctx, domain.KindNotifications, &notifications); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return notifications, nil
}

func (s *RecordStore) SaveNotification(ctx context.Context, notification *domain.Notification) error {
	ctx, span := s.tracer.Start(ctx, "RecordStore.SaveNotification")
	defer span.End()

	notifications, err := s.Notifications(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	replaced := false
	for i, existing := range notifications {
		if existing.ID == notification.ID {
			notifications[i] = notification
			replaced = true
			break
		}
	}
	if !replaced {
		notifications = append(notifications, notification)
	}
	return s.save(ctx, domain.KindNotifications, notifications)
}

func (s *RecordStore) CurrentUserID(ctx context.Context) (string, error) {
	ctx, span := s.tracer.Start(ctx, "RecordStore.CurrentUserID")
	defer span.End()

	raw, err := s.kv.GetBlob(ctx, domain.KindCurrentUser)
	if err == ErrKeyMissing {
		return "", nil
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.logger.Printf("record store read failed for %q: %s", domain.KindCurrentUser, err)
		return "", errors.ErrStoreUnavailable
	}
	return string(raw), nil
}

func (s *RecordStore) SetCurrentUserID(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "RecordStore.SetCurrentUserID")
	defer span.End()

	if err := s.kv.SetBlob(ctx, domain.KindCurrentUser, []byte(id)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.logger.Printf("record store write failed for %q: %s", domain.KindCurrentUser, err)
		return errors.ErrStoreUnavailable
	}
	return nil
}

func (s *RecordStore) LikedBlogs(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "RecordStore.LikedBlogs")
	defer span.End()

	var ids []string
	if err := s.load(ctx, domain.KindLikedBlogs, &ids); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return ids, nil
}

func (s *RecordStore) SetLikedBlogs(ctx context.Context, ids []string) error {
	ctx, span := s.tracer.Start(ctx, "RecordStore.SetLikedBlogs")
	defer span.End()

	return s.save(ctx, domain.KindLikedBlogs, ids)
}
