package application

import (
	"context"

	"github.com/google/uuid"

	"marketplace_service/domain"
)

// HostedCardCollector stands in for the third-party card widget. The real
// widget mounts in-page and returns an opaque token; here a token is minted
// directly. Mount failure and declined-card tokens are reproducible through
// the two knobs.
type HostedCardCollector struct {
	FailMount     bool
	IssueDeclined bool
}

func NewHostedCardCollector() *HostedCardCollector {
	return &HostedCardCollector{}
}

func (collector *HostedCardCollector) Mount(ctx context.Context) (*domain.CardToken, error) {
	if collector.FailMount {
		return nil, context.DeadlineExceeded
	}
	token := "tok_" + uuid.New().String()
	if collector.IssueDeclined {
		token += declinedTokenSuffix
	}
	return &domain.CardToken{Token: token}, nil
}

func (collector *HostedCardCollector) Validate(ctx context.Context, token *domain.CardToken) bool {
	return token != nil && token.Token != ""
}
