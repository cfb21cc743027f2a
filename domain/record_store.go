package domain

import "context"

// Collection keys in the record store. One JSON blob per key.
const (
	KindUsers         = "users"
	KindBookings      = "bookings"
	KindConversations = "conversations"
	KindNotifications = "notifications"
	KindCurrentUser   = "currentUser"
	KindLikedBlogs    = "likedBlogs"
)

// RecordStore persists whole collections as JSON blobs under fixed keys.
// Every Save is an upsert by id followed by a rewrite of the entire
// collection, so callers must read-before-write within one call. Reads on a
// missing or corrupt key return an empty collection, never an error a caller
// has to branch on.
type RecordStore interface {
	Users(ctx context.Context) ([]*UserProfile, error)
	SaveUser(ctx context.Context, user *UserProfile) error

	Bookings(ctx context.Context) ([]*Booking, error)
	SaveBooking(ctx context.Context, booking *Booking) error

	Conversations(ctx context.Context) ([]*Conversation, error)
	SaveConversation(ctx context.Context, conversation *Conversation) error

	Notifications(ctx context.Context) ([]*Notification, error)
	SaveNotification(ctx context.Context, notification *Notification) error

	// CurrentUserID is the session slot. It holds only the id of the
	// logged-in entry in users, never a copy of the profile.
	CurrentUserID(ctx context.Context) (string, error)
	SetCurrentUserID(ctx context.Context, id string) error

	LikedBlogs(ctx context.Context) ([]string, error)
	SetLikedBlogs(ctx context.Context, ids []string) error
}

// CardCollector is the hosted payment widget. It is mounted in-page by the
// client and hands back an opaque token; card-number validation happens on
// the widget's side.
type CardCollector interface {
	Mount(ctx context.Context) (*CardToken, error)
	Validate(ctx context.Context, token *CardToken) bool
}

type CardToken struct {
	Token string `json:"token"`
}

// Notifier is the user-visible feedback sink. Implementations must not fail
// the operation that triggered the notification.
type Notifier interface {
	Notify(ctx context.Context, userID, message, kind string)
}
