package domain

import (
	"context"
	"time"
)

type CatalogRepository interface {
	ListHotels(ctx context.Context, q HotelsQuery) ([]Hotel, error)
	GetHotel(ctx context.Context, id string) (Hotel, error)
	ListRooms(ctx context.Context, hotelID string) ([]Room, error)
	GetRoom(ctx context.Context, id string) (Room, error)

	// Seed paths
	UpsertHotel(ctx context.Context, h Hotel) error
	UpsertRoom(ctx context.Context, r Room) error
	UpsertDiscount(ctx context.Context, d Discount) error
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b Booking) error
	// GetBooking is always owner-filtered: a booking another user owns is
	// indistinguishable from a missing one.
	GetBooking(ctx context.Context, id, userID string) (Booking, error)
	ListBookings(ctx context.Context, userID string) ([]BookingView, error)
	UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) error
}

type DiscountRepository interface {
	// GetActiveDiscount returns the active, not-yet-expired row for a
	// normalized code, or ErrNotFound.
	GetActiveDiscount(ctx context.Context, code string, now time.Time) (Discount, error)
}

type ReviewRepository interface {
	ListReviews(ctx context.Context, hotelID string, limit int) ([]Review, error)
	CreateReview(ctx context.Context, r Review) error
	// HasCompletedStay gates review creation on a completed booking.
	HasCompletedStay(ctx context.Context, userID, hotelID string) (bool, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u User, fullName *string) error
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
	GetProfile(ctx context.Context, userID string) (Profile, error)
	UpdateProfile(ctx context.Context, p Profile) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// PaymentRequest is what a simulator needs to "charge": the amount, the
// method, and a transfer reference shown to the guest.
type PaymentRequest struct {
	Method    PaymentMethod
	Amount    int64
	Reference string
	Card      *CardDetails // debit_card only
}

type PaymentReceipt struct {
	Method    PaymentMethod `json:"method"`
	Reference string        `json:"reference"`
	PaidAt    time.Time     `json:"paid_at"`
}

// PaymentSimulator stands in for a real gateway. Confirm resolves after a
// fixed delay and has no failure branch; a future integration replaces this
// behind the same interface without touching the orchestration.
type PaymentSimulator interface {
	Confirm(ctx context.Context, req PaymentRequest) (PaymentReceipt, error)
}

type Email struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// Sessions is the injectable auth capability: issue a token at sign-in,
// resolve a bearer token back to a user id on each request.
type Sessions interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}
