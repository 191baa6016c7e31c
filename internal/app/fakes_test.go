package app_test

import (
	"context"
	"sync"
	"time"

	"vungtau_stay/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// ---- fakes ----

type fakeCatalog struct {
	hotels map[string]domain.Hotel
	rooms  map[string]domain.Room
}

func (f *fakeCatalog) ListHotels(ctx context.Context, q domain.HotelsQuery) ([]domain.Hotel, error) {
	var out []domain.Hotel
	for _, h := range f.hotels {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeCatalog) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeCatalog) ListRooms(ctx context.Context, hotelID string) ([]domain.Room, error) {
	var out []domain.Room
	for _, r := range f.rooms {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeCatalog) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	if f.hotels == nil {
		f.hotels = map[string]domain.Hotel{}
	}
	f.hotels[h.ID] = h
	return nil
}

func (f *fakeCatalog) UpsertRoom(ctx context.Context, r domain.Room) error {
	if f.rooms == nil {
		f.rooms = map[string]domain.Room{}
	}
	f.rooms[r.ID] = r
	return nil
}

func (f *fakeCatalog) UpsertDiscount(ctx context.Context, d domain.Discount) error { return nil }

type fakeBookings struct {
	mu    sync.Mutex
	rows  map[string]domain.Booking
	views map[string]domain.BookingView
}

func (f *fakeBookings) CreateBooking(ctx context.Context, b domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows == nil {
		f.rows = map[string]domain.Booking{}
	}
	f.rows[b.ID] = b
	return nil
}

func (f *fakeBookings) GetBooking(ctx context.Context, id, userID string) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok || b.UserID != userID {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookings) ListBookings(ctx context.Context, userID string) ([]domain.BookingView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BookingView
	for _, v := range f.views {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeBookings) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	f.rows[id] = b
	return nil
}

func (f *fakeBookings) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakeBookings) only() domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.rows {
		return b
	}
	return domain.Booking{}
}

type fakeDiscounts struct {
	byCode map[string]domain.Discount
}

func (f *fakeDiscounts) GetActiveDiscount(ctx context.Context, code string, now time.Time) (domain.Discount, error) {
	d, ok := f.byCode[code]
	if !ok || !d.IsActive || d.ValidUntil.Before(now) {
		return domain.Discount{}, domain.ErrNotFound
	}
	return d, nil
}

type fakeReviews struct {
	mu        sync.Mutex
	rows      []domain.Review
	completed map[string]bool // userID|hotelID
}

func (f *fakeReviews) ListReviews(ctx context.Context, hotelID string, limit int) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Review
	for _, r := range f.rows {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviews) CreateReview(ctx context.Context, r domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, r)
	return nil
}

func (f *fakeReviews) HasCompletedStay(ctx context.Context, userID, hotelID string) (bool, error) {
	return f.completed[userID+"|"+hotelID], nil
}

type fakeSim struct {
	mu       sync.Mutex
	requests []domain.PaymentRequest
	paidAt   time.Time
}

func (f *fakeSim) Confirm(ctx context.Context, req domain.PaymentRequest) (domain.PaymentReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return domain.PaymentReceipt{Method: req.Method, Reference: req.Reference, PaidAt: f.paidAt}, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []domain.Email
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, e domain.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, e)
	return nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	case *[]domain.Hotel:
		*d = v.([]domain.Hotel)
	case *[]domain.Room:
		*d = v.([]domain.Room)
	case *[]domain.Review:
		*d = v.([]domain.Review)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type fakeUsers struct {
	mu       sync.Mutex
	byID     map[string]domain.User
	profiles map[string]domain.Profile
}

func (f *fakeUsers) CreateUser(ctx context.Context, u domain.User, fullName *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byID == nil {
		f.byID = map[string]domain.User{}
		f.profiles = map[string]domain.Profile{}
	}
	for _, ex := range f.byID {
		if ex.Email == u.Email {
			return domain.ErrConflict
		}
	}
	f.byID[u.ID] = u
	f.profiles[u.ID] = domain.Profile{UserID: u.ID, FullName: fullName}
	return nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, p domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profiles == nil {
		f.profiles = map[string]domain.Profile{}
	}
	f.profiles[p.UserID] = p
	return nil
}

type fakeSessions struct{}

func (fakeSessions) Issue(userID string) (string, error) { return "tok-" + userID, nil }

func (fakeSessions) Verify(token string) (string, error) {
	if len(token) > 4 && token[:4] == "tok-" {
		return token[4:], nil
	}
	return "", domain.ErrUnauthorized
}
