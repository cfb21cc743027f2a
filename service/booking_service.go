package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/domain"
	"marketplace_service/errors"
)

// Fees are fixed for every listing, a deliberate simplification of the
// marketplace pricing model.
const (
	CleaningFee = 30
	ServiceFee  = 50

	MinGuests = 1
	MaxGuests = 10
)

// BookingService drives the reservation workflow: quoting, the
// request-vs-instant submit branch, and the status lifecycle. Exactly one
// booking record is written per successful submit.
type BookingService struct {
	store    domain.RecordStore
	catalog  *CatalogService
	payments *PaymentService
	notifier domain.Notifier
	logger   *logrus.Logger
	tracer   trace.Tracer
}

func NewBookingService(store domain.RecordStore, catalog *CatalogService, payments *PaymentService, notifier domain.Notifier, tracer trace.Tracer, logger *logrus.Logger) *BookingService {
	return &BookingService{
		store:    store,
		catalog:  catalog,
		payments: payments,
		notifier: notifier,
		logger:   logger,
		tracer:   tracer,
	}
}

// Quote prices a stay. Pure function of its inputs, no side effects.
// Nights are whole days rounded up; a missing checkout quotes one night.
func (service *BookingService) Quote(listing *domain.Listing, period domain.DateRange, guests int) *domain.Quote {
	nights := 1
	if !period.To.IsZero() {
		nights = int(math.Ceil(period.To.Sub(period.From).Hours() / 24))
		if nights < 1 {
			nights = 1
		}
	}

	base := nights * listing.Price
	return &domain.Quote{
		Nights:      nights,
		BasePrice:   base,
		CleaningFee: CleaningFee,
		ServiceFee:  ServiceFee,
		Total:       base + CleaningFee + ServiceFee,
	}
}

// Submit creates a booking for the calling user. Request mode persists a
// pending booking immediately; instant mode settles payment first and
// persists the booking as approved only when the payment went through.
// The booking belongs to actorID when the caller presented a token;
// the session slot is only the fallback for unidentified callers.
func (service *BookingService) Submit(ctx context.Context, actorID, listingID string, period domain.DateRange, guests int, mode domain.BookingMode, payment *domain.PaymentRequest) (*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.Submit")
	defer span.End()

	userID := actorID
	if userID == "" {
		sessionID, err := service.store.CurrentUserID(ctx)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		userID = sessionID
	}
	if userID == "" {
		span.SetStatus(codes.Error, errors.ErrUnauthenticated.Error())
		return nil, errors.ErrUnauthenticated
	}

	if period.From.IsZero() {
		return nil, errors.NewValidationError("checkIn", "Check-in date is required")
	}
	if !period.To.IsZero() && !period.To.After(period.From) {
		return nil, errors.NewValidationError("checkOut", "Check-out must be after check-in")
	}
	if guests < MinGuests || guests > MaxGuests {
		return nil, errors.NewValidationError("guests", fmt.Sprintf("Guests must be between %d and %d", MinGuests, MaxGuests))
	}

	listing, err := service.catalog.Get(ctx, listingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Re-submitting the same stay must not create a second record.
	existing, err := service.findDuplicate(ctx, userID, listingID, period)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if existing != nil {
		service.logger.Infof("duplicate submit for booking %s, returning existing record", existing.ID.Hex())
		return existing, nil
	}

	quote := service.Quote(listing, period, guests)

	booking := &domain.Booking{
		ID:         primitive.NewObjectID(),
		ListingID:  listingID,
		UserID:     userID,
		CheckIn:    period.From,
		CheckOut:   period.To,
		Guests:     guests,
		TotalPrice: quote.Total,
		CreatedAt:  time.Now(),
	}

	switch mode {
	case domain.ModeRequest:
		booking.Status = domain.StatusPending
		if err := service.store.SaveBooking(ctx, booking); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		service.notifier.Notify(ctx, userID, "Booking request sent, awaiting host approval", "info")
		return booking, nil

	case domain.ModeInstant:
		if payment == nil {
			return nil, errors.NewValidationError("payment", "Instant booking requires payment details")
		}
		result, err := service.payments.Pay(ctx, payment, quote.Total)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			if err == errors.ErrPaymentDeclined {
				service.notifier.Notify(ctx, userID, "Payment was declined, please try another card", "error")
			}
			return nil, err
		}
		if !result.Approved {
			span.SetStatus(codes.Error, errors.ErrPaymentDeclined.Error())
			return nil, errors.ErrPaymentDeclined
		}

		booking.Status = domain.StatusApproved
		if err := service.store.SaveBooking(ctx, booking); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		service.notifier.Notify(ctx, userID, "Booking confirmed", "success")
		_ = sendBookingConfirmationMail(payment.Billing.Email, listing.Name, quote.Total)
		return booking, nil

	default:
		return nil, errors.NewValidationError("mode", "Booking mode must be instant or request")
	}
}

// Confirm moves a pending booking to approved, the host-approval side of
// the request flow. Only the host of the booked listing may decide.
func (service *BookingService) Confirm(ctx context.Context, bookingID, actorID string) (*domain.Booking, error) {
	return service.transition(ctx, "BookingService.Confirm", bookingID, actorID, domain.StatusApproved, "Your booking request was approved")
}

func (service *BookingService) Decline(ctx context.Context, bookingID, actorID string) (*domain.Booking, error) {
	return service.transition(ctx, "BookingService.Decline", bookingID, actorID, domain.StatusDeclined, "Your booking request was declined")
}

// Complete marks an approved booking as completed after the stay.
func (service *BookingService) Complete(ctx context.Context, bookingID, actorID string) (*domain.Booking, error) {
	return service.transition(ctx, "BookingService.Complete", bookingID, actorID, domain.StatusCompleted, "Your stay is completed, leave a review")
}

func (service *BookingService) transition(ctx context.Context, spanName, bookingID, actorID string, target domain.BookingStatus, notice string) (*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, spanName)
	defer span.End()

	if actorID == "" {
		span.SetStatus(codes.Error, errors.ErrUnauthenticated.Error())
		return nil, errors.ErrUnauthenticated
	}

	booking, err := service.Get(ctx, bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	listing, err := service.catalog.Get(ctx, booking.ListingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if actorID != listing.HostID {
		span.SetStatus(codes.Error, errors.ErrForbidden.Error())
		return nil, errors.ErrForbidden
	}

	if !booking.Status.CanTransitionTo(target) {
		transitionErr := &errors.TransitionError{From: string(booking.Status), To: string(target)}
		span.SetStatus(codes.Error, transitionErr.Error())
		return nil, transitionErr
	}

	booking.Status = target
	if err := service.store.SaveBooking(ctx, booking); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	service.notifier.Notify(ctx, booking.UserID, notice, "info")
	return booking, nil
}

func (service *BookingService) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.Get")
	defer span.End()

	bookings, err := service.store.Bookings(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	for _, booking := range bookings {
		if booking.ID.Hex() == bookingID {
			return booking, nil
		}
	}
	span.SetStatus(codes.Error, errors.BookingNotFound)
	return nil, fmt.Errorf(errors.BookingNotFound)
}

func (service *BookingService) ForUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.ForUser")
	defer span.End()

	bookings, err := service.store.Bookings(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var mine []*domain.Booking
	for _, booking := range bookings {
		if booking.UserID == userID {
			mine = append(mine, booking)
		}
	}
	return mine, nil
}

// findDuplicate treats a non-declined booking for the same user, listing
// and dates as the same submission.
func (service *BookingService) findDuplicate(ctx context.Context, userID, listingID string, period domain.DateRange) (*domain.Booking, error) {
	bookings, err := service.store.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	for _, booking := range bookings {
		if booking.UserID == userID &&
			booking.ListingID == listingID &&
			booking.CheckIn.Equal(period.From) &&
			booking.CheckOut.Equal(period.To) &&
			booking.Status != domain.StatusDeclined {
			return booking, nil
		}
	}
	return nil, nil
}
