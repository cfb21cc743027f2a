package application

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace_service/domain"
	"marketplace_service/errors"
)

func newMessagingEnv(t *testing.T, userIDs ...string) (*MessagingService, domain.RecordStore) {
	t.Helper()
	recordStore := newTestStore()
	ctx := context.Background()
	for _, id := range userIDs {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			t.Fatal(err)
		}
		user := &domain.UserProfile{ID: objectID, Username: "user-" + id}
		if err := recordStore.SaveUser(ctx, user); err != nil {
			t.Fatal(err)
		}
	}
	service := NewMessagingService(recordStore, silentNotifier{}, testTracer(), testLogger())
	return service, recordStore
}

// Two fixed hex ids so tests can exercise both key orderings.
const (
	aliceID = "5f9f1b9b9c9d1b2a3c4d5e6f"
	bobID   = "6a0a2c0c0d0e2b3a4c5d6e7f"
)

func TestSendVisibleToBothSides(t *testing.T) {
	service, _ := newMessagingEnv(t, aliceID, bobID)
	ctx := context.Background()

	if _, err := service.Send(ctx, aliceID, bobID, "hello"); err != nil {
		t.Fatal(err)
	}

	senderView, err := service.ListConversations(ctx, aliceID)
	if err != nil {
		t.Fatal(err)
	}
	receiverView, err := service.ListConversations(ctx, bobID)
	if err != nil {
		t.Fatal(err)
	}

	if len(senderView[bobID]) != 1 || len(receiverView[aliceID]) != 1 {
		t.Fatalf("both sides must see the message: sender %d, receiver %d", len(senderView[bobID]), len(receiverView[aliceID]))
	}
	if senderView[bobID][0].ID != receiverView[aliceID][0].ID {
		t.Error("both sides must read the same record")
	}
}

func TestSendEitherDirectionSharesConversation(t *testing.T) {
	service, recordStore := newMessagingEnv(t, aliceID, bobID)
	ctx := context.Background()

	if _, err := service.Send(ctx, aliceID, bobID, "hi"); err != nil {
		t.Fatal(err)
	}
	if _, err := service.Send(ctx, bobID, aliceID, "hi back"); err != nil {
		t.Fatal(err)
	}

	conversations, err := recordStore.Conversations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(conversations) != 1 {
		t.Fatalf("replies must land in the same conversation, got %d records", len(conversations))
	}
	if len(conversations[0].Messages) != 2 {
		t.Fatalf("want 2 messages, got %d", len(conversations[0].Messages))
	}
}

func TestSendPreservesOrder(t *testing.T) {
	service, _ := newMessagingEnv(t, aliceID, bobID)
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		if _, err := service.Send(ctx, aliceID, bobID, content); err != nil {
			t.Fatal(err)
		}
	}

	view, err := service.ListConversations(ctx, bobID)
	if err != nil {
		t.Fatal(err)
	}
	messages := view[aliceID]
	if len(messages) != 3 {
		t.Fatalf("want 3 messages, got %d", len(messages))
	}
	for i, want := range []string{"first", "second", "third"} {
		if messages[i].Content != want {
			t.Errorf("position %d: got %q, want %q", i, messages[i].Content, want)
		}
	}
}

func TestSendEmptyContent(t *testing.T) {
	service, _ := newMessagingEnv(t, aliceID, bobID)

	for _, content := range []string{"", "   "} {
		_, err := service.Send(context.Background(), aliceID, bobID, content)
		if _, ok := err.(*errors.ValidationError); !ok {
			t.Errorf("content %q: want ValidationError, got %v", content, err)
		}
	}
}

func TestSendToSelf(t *testing.T) {
	service, _ := newMessagingEnv(t, aliceID)

	_, err := service.Send(context.Background(), aliceID, aliceID, "echo")
	if _, ok := err.(*errors.ValidationError); !ok {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestSendUnknownReceiverWritesNothing(t *testing.T) {
	service, recordStore := newMessagingEnv(t, aliceID)
	ctx := context.Background()

	_, err := service.Send(ctx, aliceID, bobID, "anyone there")
	if err != errors.ErrReceiverNotFound {
		t.Fatalf("want ErrReceiverNotFound, got %v", err)
	}

	conversations, _ := recordStore.Conversations(ctx)
	if len(conversations) != 0 {
		t.Errorf("failed send must not create a conversation, got %d", len(conversations))
	}
}

func TestMarkRead(t *testing.T) {
	service, _ := newMessagingEnv(t, aliceID, bobID)
	ctx := context.Background()

	if _, err := service.Send(ctx, aliceID, bobID, "unread"); err != nil {
		t.Fatal(err)
	}
	if _, err := service.Send(ctx, bobID, aliceID, "also unread"); err != nil {
		t.Fatal(err)
	}

	if err := service.MarkRead(ctx, bobID, aliceID); err != nil {
		t.Fatal(err)
	}

	view, err := service.ListConversations(ctx, bobID)
	if err != nil {
		t.Fatal(err)
	}
	for _, message := range view[aliceID] {
		if message.ReceiverID == bobID && !message.Read {
			t.Errorf("message %q to reader must be read", message.Content)
		}
		if message.ReceiverID == aliceID && message.Read {
			t.Errorf("message %q from reader must stay unread", message.Content)
		}
	}
}

func TestMarkReadNoConversation(t *testing.T) {
	service, _ := newMessagingEnv(t, aliceID, bobID)

	if err := service.MarkRead(context.Background(), aliceID, bobID); err != nil {
		t.Fatalf("marking an empty thread read must be a no-op, got %v", err)
	}
}
