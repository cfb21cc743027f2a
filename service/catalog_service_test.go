package application

import (
	"context"
	"testing"
	"time"

	"marketplace_service/domain"
	"marketplace_service/errors"
)

func TestListingsNoFilter(t *testing.T) {
	catalog := newTestCatalog()

	listings, err := catalog.Listings(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != len(staticListings) {
		t.Fatalf("nil filter must return everything, got %d of %d", len(listings), len(staticListings))
	}
}

func TestListingsFilter(t *testing.T) {
	catalog := newTestCatalog()
	ctx := context.Background()

	cases := []struct {
		name   string
		filter domain.ListingFilter
		check  func(*domain.Listing) bool
	}{
		{
			"by type",
			domain.ListingFilter{Type: domain.Hotel},
			func(l *domain.Listing) bool { return l.Type == domain.Hotel },
		},
		{
			"by province",
			domain.ListingFilter{Province: "Western"},
			func(l *domain.Listing) bool { return l.Province == "Western" },
		},
		{
			"by price band",
			domain.ListingFilter{MinPrice: 80, MaxPrice: 150},
			func(l *domain.Listing) bool { return l.Price >= 80 && l.Price <= 150 },
		},
		{
			"by capacity",
			domain.ListingFilter{Guests: 6},
			func(l *domain.Listing) bool { return l.MaxGuests >= 6 },
		},
		{
			"pets only",
			domain.ListingFilter{PetsOnly: true},
			func(l *domain.Listing) bool { return l.AcceptsPets },
		},
		{
			"combined",
			domain.ListingFilter{Type: domain.Airbnb, Province: "Western", PetsOnly: true},
			func(l *domain.Listing) bool {
				return l.Type == domain.Airbnb && l.Province == "Western" && l.AcceptsPets
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			matched, err := catalog.Listings(ctx, &c.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(matched) == 0 {
				t.Fatal("dataset must contain at least one match")
			}
			for _, listing := range matched {
				if !c.check(listing) {
					t.Errorf("listing %s does not satisfy the filter", listing.ID)
				}
			}
			want := 0
			for _, listing := range staticListings {
				if c.check(listing) {
					want++
				}
			}
			if len(matched) != want {
				t.Errorf("want %d matches, got %d", want, len(matched))
			}
		})
	}
}

func TestListingsAmenityFilter(t *testing.T) {
	catalog := newTestCatalog()

	matched, err := catalog.Listings(context.Background(), &domain.ListingFilter{Amenities: []string{"wifi"}})
	if err != nil {
		t.Fatal(err)
	}
	for _, listing := range matched {
		found := false
		for _, amenity := range listing.Amenities {
			if amenity == "wifi" {
				found = true
			}
		}
		if !found {
			t.Errorf("listing %s lacks the requested amenity", listing.ID)
		}
	}
}

func TestListingsNoMatch(t *testing.T) {
	catalog := newTestCatalog()

	matched, err := catalog.Listings(context.Background(), &domain.ListingFilter{MinPrice: 100000})
	if err != nil {
		t.Fatal(err)
	}
	if len(matched) != 0 {
		t.Errorf("want empty result, got %d", len(matched))
	}
}

func TestListingsCancelled(t *testing.T) {
	catalog := newTestCatalog()
	catalog.fetchDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := catalog.Listings(ctx, nil)
	if err != context.Canceled {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestGet(t *testing.T) {
	catalog := newTestCatalog()
	ctx := context.Background()

	listing, err := catalog.Get(ctx, "htl-001")
	if err != nil {
		t.Fatal(err)
	}
	if listing.ID != "htl-001" {
		t.Errorf("got %s", listing.ID)
	}

	_, err = catalog.Get(ctx, "no-such-id")
	if err == nil || err.Error() != errors.ListingNotFound {
		t.Fatalf("want listing not found, got %v", err)
	}
}
