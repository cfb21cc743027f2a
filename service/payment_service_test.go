package application

import (
	"context"
	"testing"
	"time"

	"marketplace_service/domain"
	"marketplace_service/errors"
)

func newPaymentEnv() (*PaymentService, *HostedCardCollector) {
	collector := NewHostedCardCollector()
	service := NewPaymentService(collector, testTracer(), testLogger())
	service.settleDelay = 0
	return service, collector
}

func TestPayApproves(t *testing.T) {
	service, _ := newPaymentEnv()

	for _, method := range []domain.PaymentMethod{domain.CreditCard, domain.PayPal, domain.Bitcoin, domain.BankTransfer} {
		result, err := service.Pay(context.Background(), &domain.PaymentRequest{Method: method, Billing: validBilling()}, 380)
		if err != nil {
			t.Fatalf("%s: %v", method, err)
		}
		if !result.Approved || result.TransactionID == "" {
			t.Errorf("%s: want approved result with transaction id, got %+v", method, result)
		}
	}
}

func TestPayUnknownMethod(t *testing.T) {
	service, _ := newPaymentEnv()

	_, err := service.Pay(context.Background(), &domain.PaymentRequest{Method: "cheque", Billing: validBilling()}, 380)
	validationErr, ok := err.(*errors.ValidationError)
	if !ok || validationErr.Field != "method" {
		t.Fatalf("want ValidationError on method, got %v", err)
	}
}

func TestPayNonPositiveAmount(t *testing.T) {
	service, _ := newPaymentEnv()

	for _, amount := range []int{0, -10} {
		_, err := service.Pay(context.Background(), &domain.PaymentRequest{Method: domain.PayPal, Billing: validBilling()}, amount)
		validationErr, ok := err.(*errors.ValidationError)
		if !ok || validationErr.Field != "amount" {
			t.Errorf("amount=%d: want ValidationError on amount, got %v", amount, err)
		}
	}
}

func TestPayBillingValidation(t *testing.T) {
	service, _ := newPaymentEnv()

	cases := []struct {
		field  string
		mutate func(*domain.BillingInfo)
	}{
		{"FullName", func(b *domain.BillingInfo) { b.FullName = "" }},
		{"Email", func(b *domain.BillingInfo) { b.Email = "not-an-address" }},
		{"Address", func(b *domain.BillingInfo) { b.Address = "" }},
		{"City", func(b *domain.BillingInfo) { b.City = "" }},
		{"Country", func(b *domain.BillingInfo) { b.Country = "" }},
	}

	for _, c := range cases {
		t.Run(c.field, func(t *testing.T) {
			billing := validBilling()
			c.mutate(&billing)
			_, err := service.Pay(context.Background(), &domain.PaymentRequest{Method: domain.PayPal, Billing: billing}, 380)
			validationErr, ok := err.(*errors.ValidationError)
			if !ok || validationErr.Field != c.field {
				t.Fatalf("want ValidationError on %s, got %v", c.field, err)
			}
		})
	}
}

func TestPayDeclinedCard(t *testing.T) {
	service, collector := newPaymentEnv()
	collector.IssueDeclined = true

	_, err := service.Pay(context.Background(), &domain.PaymentRequest{Method: domain.CreditCard, Billing: validBilling()}, 380)
	if err != errors.ErrPaymentDeclined {
		t.Fatalf("want ErrPaymentDeclined, got %v", err)
	}
}

func TestPayDeclineOnlyAffectsCardPath(t *testing.T) {
	service, collector := newPaymentEnv()
	collector.IssueDeclined = true

	result, err := service.Pay(context.Background(), &domain.PaymentRequest{Method: domain.PayPal, Billing: validBilling()}, 380)
	if err != nil || !result.Approved {
		t.Fatalf("non-card methods never hit the collector, got %v, %+v", err, result)
	}
}

func TestPayMountFailure(t *testing.T) {
	service, collector := newPaymentEnv()
	collector.FailMount = true

	_, err := service.Pay(context.Background(), &domain.PaymentRequest{Method: domain.CreditCard, Billing: validBilling()}, 380)
	if err != errors.ErrPaymentFormUnavailable {
		t.Fatalf("want ErrPaymentFormUnavailable, got %v", err)
	}
}

func TestPayCancelledDuringSettle(t *testing.T) {
	service, _ := newPaymentEnv()
	service.settleDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Pay(ctx, &domain.PaymentRequest{Method: domain.PayPal, Billing: validBilling()}, 380)
	if err != context.Canceled {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
