package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"vungtau_stay/internal/adapters/observability"
	"vungtau_stay/internal/domain"
)

// BookingDraft is the single-session form state collected across the booking
// steps, handed over whole at submission.
type BookingDraft struct {
	HotelID         string
	RoomID          string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	RoomCount       int
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	SpecialRequests *string
	PaymentMethod   domain.PaymentMethod
	DiscountCode    string
	Card            *domain.CardDetails
}

// BookingResult is what the confirmation screen and invoice render from.
type BookingResult struct {
	Booking  domain.Booking
	Quote    Quote
	Discount *domain.AppliedDiscount
	Receipt  *domain.PaymentReceipt // nil for pay_later
	Code     string
}

// ConfirmationSender is the asynchronous notifier boundary; failures are
// logged, never surfaced to the guest.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, userID, bookingID string, method domain.PaymentMethod) error
}

type BookingService struct {
	bookings  domain.BookingRepository
	catalog   domain.CatalogRepository
	discounts *DiscountService
	sim       domain.PaymentSimulator
	notifier  ConfirmationSender
	now       func() time.Time
}

func NewBookingService(
	bookings domain.BookingRepository,
	catalog domain.CatalogRepository,
	discounts *DiscountService,
	sim domain.PaymentSimulator,
	notifier ConfirmationSender,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		catalog:   catalog,
		discounts: discounts,
		sim:       sim,
		notifier:  notifier,
		now:       time.Now,
	}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Bounds on a single booking. Kept far above anything a real guest submits;
// they exist so nights*rate*rooms stays well inside int64.
const (
	maxRoomsPerBooking = 10
	maxStayNights      = 365
)

func (s *BookingService) validateDraft(d BookingDraft) error {
	if utf8.RuneCountInString(strings.TrimSpace(d.GuestName)) < 2 {
		return domain.Invalid("guest_name", "tên phải có ít nhất 2 ký tự")
	}
	if !emailRe.MatchString(d.GuestEmail) {
		return domain.Invalid("guest_email", "email không hợp lệ")
	}
	if countDigits(d.GuestPhone) < 10 {
		return domain.Invalid("guest_phone", "số điện thoại không hợp lệ")
	}
	if d.Guests < 1 {
		return domain.Invalid("guests", "số khách phải lớn hơn 0")
	}
	if d.RoomCount > maxRoomsPerBooking {
		return domain.Invalid("room_count", "tối đa 10 phòng mỗi lần đặt")
	}
	if !domain.ValidPaymentMethod(d.PaymentMethod) {
		return domain.Invalid("payment_method", "phương thức thanh toán không hợp lệ")
	}

	today := truncateToDay(s.now())
	if truncateToDay(d.CheckIn).Before(today) {
		return domain.Invalid("check_in", "ngày nhận phòng không được ở quá khứ")
	}
	nights := Nights(d.CheckIn, d.CheckOut)
	if nights <= 0 {
		return domain.Invalid("check_out", "ngày trả phòng phải sau ngày nhận phòng")
	}
	if nights > maxStayNights {
		return domain.Invalid("check_out", "thời gian lưu trú tối đa 365 đêm")
	}
	return nil
}

// Create runs the whole submission: draft validation, room/hotel lookup,
// pricing, optional discount, payment simulation for paid methods, one
// insert, then the confirmation email fired in the background.
//
// Deliberately absent, matching the flow this replaces: no idempotency key,
// no availability lock over the date range, and no re-validation of the room
// price after the quote.
func (s *BookingService) Create(ctx context.Context, userID string, d BookingDraft) (BookingResult, error) {
	if userID == "" {
		return BookingResult{}, domain.ErrUnauthorized
	}
	if err := s.validateDraft(d); err != nil {
		return BookingResult{}, err
	}

	room, err := s.catalog.GetRoom(ctx, d.RoomID)
	if err != nil {
		return BookingResult{}, fmt.Errorf("load room: %w", err)
	}
	if room.HotelID != d.HotelID {
		return BookingResult{}, domain.Invalid("room_id", "phòng không thuộc khách sạn đã chọn")
	}
	if !room.Available {
		return BookingResult{}, domain.Invalid("room_id", "phòng hiện không nhận đặt")
	}
	hotel, err := s.catalog.GetHotel(ctx, d.HotelID)
	if err != nil {
		return BookingResult{}, fmt.Errorf("load hotel: %w", err)
	}

	nights := Nights(d.CheckIn, d.CheckOut)
	quote := PriceStay(room.Price, nights, d.RoomCount, nil)

	var applied *domain.AppliedDiscount
	if d.DiscountCode != "" {
		got, err := s.discounts.Validate(ctx, d.DiscountCode, quote.Subtotal, hotel.PropertyType)
		if err != nil {
			return BookingResult{}, err
		}
		applied = &got
		quote = PriceStay(room.Price, nights, d.RoomCount, applied)
	}

	status := domain.StatusPending
	var receipt *domain.PaymentReceipt
	if d.PaymentMethod != domain.PayLater {
		if d.PaymentMethod == domain.DebitCard {
			if d.Card == nil {
				return BookingResult{}, domain.Invalid("card", "thiếu thông tin thẻ")
			}
			if err := d.Card.Validate(); err != nil {
				return BookingResult{}, err
			}
		}
		rc, err := s.sim.Confirm(ctx, domain.PaymentRequest{
			Method:    d.PaymentMethod,
			Amount:    quote.Total,
			Reference: paymentReference(s.now()),
			Card:      d.Card,
		})
		if err != nil {
			// only context cancellation reaches here; the simulator itself
			// has no failure branch
			return BookingResult{}, err
		}
		receipt = &rc
		status = domain.StatusConfirmed
	}

	b := domain.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		HotelID:         hotel.ID,
		RoomID:          room.ID,
		CheckIn:         truncateToDay(d.CheckIn),
		CheckOut:        truncateToDay(d.CheckOut),
		Guests:          d.Guests,
		GuestName:       strings.TrimSpace(d.GuestName),
		GuestEmail:      strings.TrimSpace(d.GuestEmail),
		GuestPhone:      strings.TrimSpace(d.GuestPhone),
		SpecialRequests: d.SpecialRequests,
		TotalPrice:      quote.Total,
		Status:          status,
		PaymentMethod:   d.PaymentMethod,
		CreatedAt:       s.now(),
	}
	if err := s.bookings.CreateBooking(ctx, b); err != nil {
		return BookingResult{}, fmt.Errorf("persist booking: %w", err)
	}
	observability.ObserveBooking(string(b.PaymentMethod), string(b.Status))

	// Best-effort confirmation email; the write above is the source of truth.
	if s.notifier != nil {
		go func(bookingID, userID string, method domain.PaymentMethod) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.notifier.SendConfirmation(ctx, userID, bookingID, method); err != nil {
				log.Warn().Err(err).Str("booking", bookingID).Msg("confirmation email failed")
			}
		}(b.ID, b.UserID, b.PaymentMethod)
	}

	return BookingResult{Booking: b, Quote: quote, Discount: applied, Receipt: receipt, Code: b.Code()}, nil
}

// Cancel moves an owned pending/confirmed booking to cancelled.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) (domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, bookingID, userID)
	if err != nil {
		return domain.Booking{}, err
	}
	switch b.Status {
	case domain.StatusPending, domain.StatusConfirmed:
	default:
		return domain.Booking{}, domain.ErrConflict
	}
	if err := s.bookings.UpdateBookingStatus(ctx, b.ID, domain.StatusCancelled); err != nil {
		return domain.Booking{}, err
	}
	b.Status = domain.StatusCancelled
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, userID, bookingID string) (domain.Booking, error) {
	return s.bookings.GetBooking(ctx, bookingID, userID)
}

func (s *BookingService) History(ctx context.Context, userID string) ([]domain.BookingView, error) {
	return s.bookings.ListBookings(ctx, userID)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// paymentReference mirrors the transfer note shown on the QR screens:
// "BOOKING" plus the last six digits of the current unix timestamp.
func paymentReference(now time.Time) string {
	return fmt.Sprintf("BOOKING%06d", now.Unix()%1_000_000)
}
