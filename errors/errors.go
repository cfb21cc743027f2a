package errors

import (
	"errors"
	"fmt"
)

const (
	InvalidCredentials        = "Invalid username or password"
	UsernameExist             = "Username already exists"
	EmailAlreadyExist         = "Email already exists in database"
	InvalidRequestFormatError = "Invalid request format"
	BookingNotFound           = "Booking not found"
	ListingNotFound           = "Listing not found"
	UserNotFound              = "User not found"
)

var (
	// ErrUnauthenticated is returned when an operation requires a logged-in
	// user. Handlers translate it to a 401 so the client can redirect to login.
	ErrUnauthenticated = errors.New("user is not authenticated")

	// ErrStoreUnavailable marks persistence failures. It never carries the
	// underlying driver error across the store boundary.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrPaymentDeclined is the simulated card-declined branch. No booking
	// record exists when it is returned.
	ErrPaymentDeclined = errors.New("payment was declined")

	// ErrPaymentFormUnavailable means the hosted card widget failed to mount.
	ErrPaymentFormUnavailable = errors.New("payment form failed to mount")

	// ErrReceiverNotFound aborts a message send before anything is written,
	// instead of silently dropping the receiver-side copy.
	ErrReceiverNotFound = errors.New("message receiver does not exist")

	// ErrForbidden means the caller is authenticated but not the party the
	// operation belongs to, such as a booking decision by a non-host.
	ErrForbidden = errors.New("operation not permitted for this user")
)

// ValidationError reports a form-level constraint violation on a single
// field. The operation that produced it performed no write.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// TransitionError reports a booking status change the lifecycle does not
// allow (for example completed back to pending).
type TransitionError struct {
	From string
	To   string
}

func (t *TransitionError) Error() string {
	return fmt.Sprintf("illegal booking transition from %s to %s", t.From, t.To)
}
