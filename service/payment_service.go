package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/domain"
	"marketplace_service/errors"
)

// declinedTokenSuffix marks the designated test card. The hosted widget
// tokenizes it like any other card; the simulated gateway declines it.
const declinedTokenSuffix = "_declined"

// PaymentService simulates settlement. No money moves: the card path runs
// through the hosted collector widget for tokenization, every method then
// settles after a fixed delay. The delay is cancellable, a caller that goes
// away gets ctx.Err() and no side effect is applied afterwards.
type PaymentService struct {
	collector   domain.CardCollector
	logger      *logrus.Logger
	tracer      trace.Tracer
	settleDelay time.Duration
}

func NewPaymentService(collector domain.CardCollector, tracer trace.Tracer, logger *logrus.Logger) *PaymentService {
	return &PaymentService{
		collector:   collector,
		logger:      logger,
		tracer:      tracer,
		settleDelay: 800 * time.Millisecond,
	}
}

func (service *PaymentService) Pay(ctx context.Context, request *domain.PaymentRequest, amount int) (*domain.PaymentResult, error) {
	ctx, span := service.tracer.Start(ctx, "PaymentService.Pay")
	defer span.End()

	switch request.Method {
	case domain.CreditCard, domain.PayPal, domain.Bitcoin, domain.BankTransfer:
	default:
		span.SetStatus(codes.Error, "unknown payment method")
		return nil, errors.NewValidationError("method", "Unknown payment method")
	}

	if amount <= 0 {
		span.SetStatus(codes.Error, "non-positive amount")
		return nil, errors.NewValidationError("amount", "Amount must be positive")
	}

	if err := request.Billing.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, billingFieldError(err)
	}

	var token *domain.CardToken
	if request.Method == domain.CreditCard {
		mounted, err := service.collector.Mount(ctx)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			service.logger.Warnf("card collector failed to mount: %s", err)
			return nil, errors.ErrPaymentFormUnavailable
		}
		if !service.collector.Validate(ctx, mounted) {
			span.SetStatus(codes.Error, "card validation failed")
			return nil, errors.NewValidationError("card", "Card details failed validation")
		}
		token = mounted
	}

	select {
	case <-time.After(service.settleDelay):
	case <-ctx.Done():
		span.SetStatus(codes.Error, ctx.Err().Error())
		return nil, ctx.Err()
	}

	if token != nil && strings.HasSuffix(token.Token, declinedTokenSuffix) {
		span.SetStatus(codes.Error, errors.ErrPaymentDeclined.Error())
		service.logger.Infof("simulated decline for token %s", token.Token)
		return nil, errors.ErrPaymentDeclined
	}

	result := &domain.PaymentResult{
		Approved:      true,
		TransactionID: uuid.New().String(),
	}
	service.logger.Infof("simulated settlement of %d via %s, transaction %s", amount, request.Method, result.TransactionID)
	return result, nil
}

// billingFieldError maps the first validator violation onto the offending
// billing field.
func billingFieldError(err error) error {
	msg := err.Error()
	for _, field := range []string{"FullName", "Email", "Address", "City", "Country"} {
		if strings.Contains(msg, "'"+field+"'") {
			return errors.NewValidationError(field, "Missing or invalid billing field")
		}
	}
	return errors.NewValidationError("billing", msg)
}
