package store

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/domain"
)

func newTestStore() domain.RecordStore {
	kv := NewMemoryKeyValue()
	tracer := trace.NewNoopTracerProvider().Tracer("")
	logger := log.New(io.Discard, "", 0)
	return NewRecordStore(kv, tracer, logger)
}

func TestBookingRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	booking := &domain.Booking{
		ID:         primitive.NewObjectID(),
		ListingID:  "bnb-001",
		UserID:     "u1",
		CheckIn:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		TotalPrice: 380,
		Status:     domain.StatusPending,
		CreatedAt:  time.Date(2026, 5, 20, 12, 30, 0, 0, time.UTC),
	}

	if err := s.SaveBooking(ctx, booking); err != nil {
		t.Fatalf("save: %v", err)
	}

	bookings, err := s.Bookings(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("want 1 booking, got %d", len(bookings))
	}

	got := bookings[0]
	if got.ID != booking.ID ||
		got.ListingID != booking.ListingID ||
		got.UserID != booking.UserID ||
		!got.CheckIn.Equal(booking.CheckIn) ||
		!got.CheckOut.Equal(booking.CheckOut) ||
		got.Guests != booking.Guests ||
		got.TotalPrice != booking.TotalPrice ||
		got.Status != booking.Status ||
		!got.CreatedAt.Equal(booking.CreatedAt) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, booking)
	}
}

func TestSaveBookingUpsertsById(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	booking := &domain.Booking{ID: primitive.NewObjectID(), Status: domain.StatusPending}
	if err := s.SaveBooking(ctx, booking); err != nil {
		t.Fatal(err)
	}

	booking.Status = domain.StatusApproved
	if err := s.SaveBooking(ctx, booking); err != nil {
		t.Fatal(err)
	}

	bookings, _ := s.Bookings(ctx)
	if len(bookings) != 1 {
		t.Fatalf("upsert should replace, got %d records", len(bookings))
	}
	if bookings[0].Status != domain.StatusApproved {
		t.Errorf("want approved after upsert, got %s", bookings[0].Status)
	}
}

func TestSaveUserKeepsPasswordHash(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	user := &domain.UserProfile{
		ID:        primitive.NewObjectID(),
		FirstName: "Test",
		LastName:  "Guest",
		Email:     "t1@example.com",
		Username:  "traveler1",
		Password:  "$2a$10$abcdefghijklmnopqrstuv",
		UserType:  domain.Guest,
	}
	if err := s.SaveUser(ctx, user); err != nil {
		t.Fatal(err)
	}

	users, err := s.Users(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 {
		t.Fatalf("want 1 user, got %d", len(users))
	}
	// credential checks read the hash back from the store, so the round
	// trip must not lose it
	if users[0].Password != user.Password {
		t.Errorf("password hash lost in round trip: got %q", users[0].Password)
	}
}

func TestGetMissingKindIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	users, err := s.Users(ctx)
	if err != nil {
		t.Fatalf("missing kind must not error: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("want empty, got %d", len(users))
	}
}

func TestCorruptBlobReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValue()
	tracer := trace.NewNoopTracerProvider().Tracer("")
	s := NewRecordStore(kv, tracer, log.New(io.Discard, "", 0))

	if err := kv.SetBlob(ctx, domain.KindUsers, []byte("{definitely not json")); err != nil {
		t.Fatal(err)
	}

	users, err := s.Users(ctx)
	if err != nil {
		t.Fatalf("corrupt blob must fail soft: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("want empty on corrupt blob, got %d", len(users))
	}
}

func TestCurrentUserPointer(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	id, err := s.CurrentUserID(ctx)
	if err != nil || id != "" {
		t.Fatalf("fresh store: want empty session, got %q err %v", id, err)
	}

	if err := s.SetCurrentUserID(ctx, "abc123"); err != nil {
		t.Fatal(err)
	}
	id, _ = s.CurrentUserID(ctx)
	if id != "abc123" {
		t.Errorf("want abc123, got %q", id)
	}

	if err := s.SetCurrentUserID(ctx, ""); err != nil {
		t.Fatal(err)
	}
	id, _ = s.CurrentUserID(ctx)
	if id != "" {
		t.Errorf("logout should clear the slot, got %q", id)
	}
}

func TestLikedBlogs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	if err := s.SetLikedBlogs(ctx, []string{"b1", "b2"}); err != nil {
		t.Fatal(err)
	}
	ids, err := s.LikedBlogs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "b1" || ids[1] != "b2" {
		t.Errorf("unexpected liked blogs: %v", ids)
	}
}
