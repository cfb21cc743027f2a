package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/domain"
	"marketplace_service/errors"
)

var (
	catalogSourceHost = os.Getenv("CATALOG_SOURCE_HOST")
	catalogSourcePort = os.Getenv("CATALOG_SOURCE_PORT")
)

// CatalogService serves the static listing dataset and optionally a remote
// catalog source. The remote call sits behind a circuit breaker and a
// per-request timeout; the static dataset is the fallback when the source
// is down or the breaker is open.
type CatalogService struct {
	listings   []*domain.Listing
	client     *http.Client
	cb         *gobreaker.CircuitBreaker
	logger     *log.Logger
	tracer     trace.Tracer
	fetchDelay time.Duration
}

func NewCatalogService(tracer trace.Tracer, logger *log.Logger) *CatalogService {
	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        30,
			MaxIdleConnsPerHost: 30,
			MaxConnsPerHost:     30,
		},
		Timeout: 10 * time.Second,
	}

	return &CatalogService{
		listings:   staticListings,
		client:     httpClient,
		cb:         CircuitBreaker("catalogSource"),
		logger:     logger,
		tracer:     tracer,
		fetchDelay: 300 * time.Millisecond,
	}
}

// Listings applies the filter predicates over the static dataset. The
// simulated fetch latency is cancellable, a dismissed caller gets ctx.Err()
// back and no result is delivered late.
func (service *CatalogService) Listings(ctx context.Context, filter *domain.ListingFilter) ([]*domain.Listing, error) {
	ctx, span := service.tracer.Start(ctx, "CatalogService.Listings")
	defer span.End()

	select {
	case <-time.After(service.fetchDelay):
	case <-ctx.Done():
		span.SetStatus(codes.Error, ctx.Err().Error())
		return nil, ctx.Err()
	}

	if filter == nil {
		return service.listings, nil
	}

	var matched []*domain.Listing
	for _, listing := range service.listings {
		if matchesFilter(listing, filter) {
			matched = append(matched, listing)
		}
	}
	return matched, nil
}

func (service *CatalogService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, span := service.tracer.Start(ctx, "CatalogService.Get")
	defer span.End()

	for _, listing := range service.listings {
		if listing.ID == id {
			return listing, nil
		}
	}
	span.SetStatus(codes.Error, errors.ListingNotFound)
	return nil, fmt.Errorf(errors.ListingNotFound)
}

// FetchRegion asks the remote catalog source for listings in a region,
// falling back to the static dataset filtered by province when the source
// cannot answer.
func (service *CatalogService) FetchRegion(ctx context.Context, region string) ([]*domain.Listing, error) {
	ctx, span := service.tracer.Start(ctx, "CatalogService.FetchRegion")
	defer span.End()

	result, breakerErr := service.cb.Execute(func() (interface{}, error) {
		catalogEndpoint := fmt.Sprintf("http://%s:%s/listings/%s", catalogSourceHost, catalogSourcePort, region)
		catalogRequest, err := http.NewRequestWithContext(ctx, "GET", catalogEndpoint, nil)
		if err != nil {
			return nil, err
		}
		otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(catalogRequest.Header))

		response, err := service.client.Do(catalogRequest)
		if err != nil {
			return nil, err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog source returned %s", response.Status)
		}

		var listings []*domain.Listing
		if err := responseToType(response.Body, &listings); err != nil {
			return nil, err
		}
		return listings, nil
	})
	if breakerErr != nil {
		span.SetStatus(codes.Error, breakerErr.Error())
		service.logger.Println("catalog source unavailable, serving static dataset:", breakerErr)
		return service.Listings(ctx, &domain.ListingFilter{Province: region})
	}

	return result.([]*domain.Listing), nil
}

func matchesFilter(listing *domain.Listing, filter *domain.ListingFilter) bool {
	if filter.Type != "" && listing.Type != filter.Type {
		return false
	}
	if filter.Province != "" && listing.Province != filter.Province {
		return false
	}
	if filter.MinPrice > 0 && listing.Price < filter.MinPrice {
		return false
	}
	if filter.MaxPrice > 0 && listing.Price > filter.MaxPrice {
		return false
	}
	if filter.Guests > 0 && listing.MaxGuests < filter.Guests {
		return false
	}
	if filter.PetsOnly && !listing.AcceptsPets {
		return false
	}
	for _, wanted := range filter.Amenities {
		found := false
		for _, amenity := range listing.Amenities {
			if amenity == wanted {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func CircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Printf("Circuit Breaker '%s' changed from '%s' to '%s'\n", name, from, to)
			},
		},
	)
}

func responseToType(response io.Reader, any interface{}) error {
	responseBodyBytes, err := io.ReadAll(response)
	if err != nil {
		log.Printf("err in readAll %s", err.Error())
		return err
	}

	err = json.Unmarshal(responseBodyBytes, &any)
	if err != nil {
		log.Printf("err in Unmarshal %s", err.Error())
		return err
	}

	return nil
}
