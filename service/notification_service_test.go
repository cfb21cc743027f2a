package application

import (
	"context"
	"testing"
)

func TestNotifyAndForUser(t *testing.T) {
	recordStore := newTestStore()
	service := NewNotificationService(recordStore, testTracer(), testLogger())
	ctx := context.Background()

	service.Notify(ctx, "u1", "Booking confirmed", "success")
	service.Notify(ctx, "u1", "You have a new message", "info")
	service.Notify(ctx, "u2", "Booking request sent, awaiting host approval", "info")

	mine, err := service.ForUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Fatalf("want u1's 2 notifications, got %d", len(mine))
	}
	for _, notification := range mine {
		if notification.UserID != "u1" {
			t.Errorf("foreign notification leaked: %+v", notification)
		}
	}

	others, err := service.ForUser(ctx, "u3")
	if err != nil {
		t.Fatal(err)
	}
	if len(others) != 0 {
		t.Errorf("want none for u3, got %d", len(others))
	}
}
