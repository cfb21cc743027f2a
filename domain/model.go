package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserType string

const (
	Guest UserType = "guest"
	Host  UserType = "host"
)

// UserProfile is the single source of truth for an account. The logged-in
// user is a pointer into the users collection, never a duplicated blob.
// The password hash must serialize with the rest of the profile because the
// record store persists it as JSON; handlers blank it before responding.
type UserProfile struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	FirstName     string             `bson:"firstName,omitempty" json:"firstName,omitempty" validate:"required,min=2,max=30"`
	LastName      string             `bson:"lastName,omitempty" json:"lastName,omitempty" validate:"required,min=2,max=30"`
	Email         string             `bson:"email" json:"email" validate:"required,email"`
	Username      string             `bson:"username" json:"username" validate:"required,min=4,max=30"`
	Password      string             `bson:"password" json:"password,omitempty"`
	UserType      UserType           `bson:"userType" json:"userType" validate:"required,oneof=guest host"`
	SavedListings []string           `bson:"savedListings,omitempty" json:"savedListings,omitempty"`
	Applications  []Application      `bson:"applications,omitempty" json:"applications,omitempty"`
	Reviews       []UserReview       `bson:"reviews,omitempty" json:"reviews,omitempty"`
}

type Application struct {
	ListingID string    `bson:"listingId" json:"listingId"`
	AppliedAt time.Time `bson:"appliedAt" json:"appliedAt"`
}

type UserReview struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	ListingID string             `bson:"listingId" json:"listingId"`
	Rating    int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment   string             `bson:"comment" json:"comment"`
	Date      time.Time          `bson:"date" json:"date"`
}

type BookingMode string

const (
	ModeInstant BookingMode = "instant"
	ModeRequest BookingMode = "request"
)

type Booking struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	ListingID  string             `bson:"serviceId" json:"serviceId"`
	UserID     string             `bson:"userId" json:"userId"`
	CheckIn    time.Time          `bson:"checkIn" json:"checkIn"`
	CheckOut   time.Time          `bson:"checkOut" json:"checkOut"`
	Guests     int                `bson:"guests" json:"guests"`
	TotalPrice int                `bson:"totalPrice" json:"totalPrice"`
	Status     BookingStatus      `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Quote is a pure function result, never persisted.
type Quote struct {
	Nights      int `json:"nights"`
	BasePrice   int `json:"basePrice"`
	CleaningFee int `json:"cleaningFee"`
	ServiceFee  int `json:"serviceFee"`
	Total       int `json:"total"`
}

type Message struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	SenderID   string             `bson:"senderId" json:"senderId"`
	ReceiverID string             `bson:"receiverId" json:"receiverId"`
	Content    string             `bson:"content" json:"content"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Read       bool               `bson:"read" json:"read"`
}

// Conversation is the canonical log of messages between exactly two users,
// keyed by the unordered participant pair. Both sides read the same record,
// so there is no mirror copy to drift.
type Conversation struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Key          string             `bson:"key" json:"key"`
	Participants [2]string          `bson:"participants" json:"participants"`
	Messages     []Message          `bson:"messages" json:"messages"`
}

type ListingType string

const (
	Hotel  ListingType = "hotel"
	Airbnb ListingType = "airbnb"
)

// Listing is a read-only catalog entity.
type Listing struct {
	ID          string      `json:"id"`
	Type        ListingType `json:"type"`
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	Province    string      `json:"province"`
	District    string      `json:"district"`
	Price       int         `json:"price"`
	Rating      float64     `json:"rating"`
	Amenities   []string    `json:"amenities"`
	Images      []string    `json:"images"`
	Rooms       int         `json:"rooms"`
	Beds        int         `json:"beds"`
	Bathrooms   int         `json:"bathrooms"`
	MaxGuests   int         `json:"maxGuests"`
	AcceptsPets bool        `json:"acceptsPets"`
	HostID      string      `json:"hostId"`
}

type ListingFilter struct {
	Type      ListingType `json:"type,omitempty"`
	Province  string      `json:"province,omitempty"`
	MinPrice  int         `json:"minPrice,omitempty"`
	MaxPrice  int         `json:"maxPrice,omitempty"`
	Amenities []string    `json:"amenities,omitempty"`
	Guests    int         `json:"guests,omitempty"`
	PetsOnly  bool        `json:"petsOnly,omitempty"`
}

type PaymentMethod string

const (
	CreditCard   PaymentMethod = "credit_card"
	PayPal       PaymentMethod = "paypal"
	Bitcoin      PaymentMethod = "bitcoin"
	BankTransfer PaymentMethod = "bank_transfer"
)

type BillingInfo struct {
	FullName string `json:"fullName" validate:"required,min=2,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required,min=3,max=80"`
	City     string `json:"city" validate:"required,min=2,max=40"`
	Country  string `json:"country" validate:"required,min=2,max=40"`
}

type PaymentRequest struct {
	Method  PaymentMethod `json:"method"`
	Billing BillingInfo   `json:"billing"`
}

type PaymentResult struct {
	Approved      bool   `json:"approved"`
	TransactionID string `json:"transactionId,omitempty"`
}

type Notification struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Message   string             `bson:"message" json:"message"`
	Kind      string             `bson:"kind" json:"kind"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Claims struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      UserType  `json:"userType"`
	ExpiresAt time.Time `json:"expires_at"`
}

var validate = validator.New()

func (b *BillingInfo) Validate() error {
	return validate.Struct(b)
}

func (u *UserProfile) Validate() error {
	return validate.Struct(u)
}

func (r *UserReview) Validate() error {
	return validate.Struct(r)
}
