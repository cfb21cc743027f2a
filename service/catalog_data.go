package application

import "marketplace_service/domain"

// staticListings is the built-in catalog. It stands in for a real inventory
// API and is read-only from the workflow's perspective.
var staticListings = []*domain.Listing{
	{
		ID:        "htl-001",
		Type:      domain.Hotel,
		Name:      "Kigali Marriott Hotel",
		Location:  "KN 3 Avenue, Kigali",
		Province:  "Kigali",
		District:  "Nyarugenge",
		Price:     250,
		Rating:    4.7,
		Amenities: []string{"wifi", "pool", "spa", "restaurant", "gym"},
		Images:    []string{"/images/htl-001-1.jpg", "/images/htl-001-2.jpg"},
		Rooms:     254, Beds: 300, Bathrooms: 254,
		MaxGuests: 4, AcceptsPets: false,
		HostID: "host-marriott",
	},
	{
		ID:        "htl-002",
		Type:      domain.Hotel,
		Name:      "Lake Kivu Serena Hotel",
		Location:  "Avenue de la Cooperation, Gisenyi",
		Province:  "Western",
		District:  "Rubavu",
		Price:     180,
		Rating:    4.5,
		Amenities: []string{"wifi", "beach", "restaurant", "bar"},
		Images:    []string{"/images/htl-002-1.jpg"},
		Rooms:     66, Beds: 80, Bathrooms: 66,
		MaxGuests: 3, AcceptsPets: false,
		HostID: "host-serena",
	},
	{
		ID:        "htl-003",
		Type:      domain.Hotel,
		Name:      "Five Volcanoes Boutique Hotel",
		Location:  "Musanze Town",
		Province:  "Northern",
		District:  "Musanze",
		Price:     140,
		Rating:    4.3,
		Amenities: []string{"wifi", "garden", "restaurant"},
		Images:    []string{"/images/htl-003-1.jpg"},
		Rooms:     15, Beds: 20, Bathrooms: 15,
		MaxGuests: 2, AcceptsPets: true,
		HostID: "host-volcanoes",
	},
	{
		ID:        "bnb-001",
		Type:      domain.Airbnb,
		Name:      "Modern Loft in Kimihurura",
		Location:  "KG 624 St, Kigali",
		Province:  "Kigali",
		District:  "Gasabo",
		Price:     100,
		Rating:    4.8,
		Amenities: []string{"wifi", "kitchen", "parking", "workspace"},
		Images:    []string{"/images/bnb-001-1.jpg", "/images/bnb-001-2.jpg"},
		Rooms:     2, Beds: 2, Bathrooms: 1,
		MaxGuests: 4, AcceptsPets: true,
		HostID: "host-loft",
	},
	{
		ID:        "bnb-002",
		Type:      domain.Airbnb,
		Name:      "Garden Cottage near Nyungwe",
		Location:  "Gisakura Village",
		Province:  "Western",
		District:  "Nyamasheke",
		Price:     65,
		Rating:    4.4,
		Amenities: []string{"wifi", "garden", "kitchen"},
		Images:    []string{"/images/bnb-002-1.jpg"},
		Rooms:     1, Beds: 2, Bathrooms: 1,
		MaxGuests: 3, AcceptsPets: true,
		HostID: "host-cottage",
	},
	{
		ID:        "bnb-003",
		Type:      domain.Airbnb,
		Name:      "Lakeview Studio Karongi",
		Location:  "Karongi Waterfront",
		Province:  "Western",
		District:  "Karongi",
		Price:     80,
		Rating:    4.6,
		Amenities: []string{"wifi", "kitchen", "balcony"},
		Images:    []string{"/images/bnb-003-1.jpg"},
		Rooms:     1, Beds: 1, Bathrooms: 1,
		MaxGuests: 2, AcceptsPets: false,
		HostID: "host-lakeview",
	},
	{
		ID:        "bnb-004",
		Type:      domain.Airbnb,
		Name:      "Family House Huye",
		Location:  "Huye Town",
		Province:  "Southern",
		District:  "Huye",
		Price:     90,
		Rating:    4.2,
		Amenities: []string{"wifi", "kitchen", "parking", "garden"},
		Images:    []string{"/images/bnb-004-1.jpg"},
		Rooms:     3, Beds: 4, Bathrooms: 2,
		MaxGuests: 8, AcceptsPets: true,
		HostID: "host-huye",
	},
}
