package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

type PaymentMethod string

const (
	PayLater  PaymentMethod = "pay_later"
	DebitCard PaymentMethod = "debit_card"
	BankApp   PaymentMethod = "bank_app"
	Momo      PaymentMethod = "momo"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PayLater, DebitCard, BankApp, Momo:
		return true
	}
	return false
}

// PaymentMethodLabel returns the customer-facing display name used on
// invoices and confirmation emails.
func PaymentMethodLabel(m PaymentMethod) string {
	switch m {
	case PayLater:
		return "Thanh toán tại khách sạn"
	case DebitCard:
		return "Thẻ ghi nợ (Visa/Mastercard)"
	case Momo:
		return "Ví MoMo"
	case BankApp:
		return "Chuyển khoản ngân hàng"
	default:
		return string(m)
	}
}

type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	HotelID         string        `json:"hotel_id"`
	RoomID          string        `json:"room_id"`
	CheckIn         time.Time     `json:"check_in"` // date only, midnight UTC
	CheckOut        time.Time     `json:"check_out"`
	Guests          int           `json:"guests"`
	GuestName       string        `json:"guest_name"`
	GuestEmail      string        `json:"guest_email"`
	GuestPhone      string        `json:"guest_phone"`
	SpecialRequests *string       `json:"special_requests,omitempty"`
	TotalPrice      int64         `json:"total_price"`
	Status          BookingStatus `json:"status"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	CreatedAt       time.Time     `json:"created_at"`
}

// Code derives the short human-presentable booking code shown on invoices
// and in the confirmation email: "BK" plus the first 8 hex chars of the id.
func (b Booking) Code() string {
	id := strings.ReplaceAll(b.ID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return "BK" + strings.ToUpper(id)
}

// BookingView is a booking row joined with the hotel and room fields the
// history screen displays. Assembled by an explicit fetch, never by the
// client echoing content back.
type BookingView struct {
	Booking
	HotelName    string `json:"hotel_name"`
	HotelAddress string `json:"hotel_address"`
	RoomName     string `json:"room_name"`
	RoomType     string `json:"room_type"`
}

type Review struct {
	ID        string    `json:"id"`
	HotelID   string    `json:"hotel_id"`
	UserID    string    `json:"user_id"`
	BookingID *string   `json:"booking_id,omitempty"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
