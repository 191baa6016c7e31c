package app

import (
	"time"

	"vungtau_stay/internal/domain"
)

// Invoice is the print-ready summary of a finalized booking. Everything
// here is derived from the stored row; no amounts are recomputed from
// client input.
type Invoice struct {
	BookingCode     string `json:"booking_code"`
	Status          string `json:"status"`
	IssuedAt        string `json:"issued_at"`
	HotelName       string `json:"hotel_name"`
	HotelAddress    string `json:"hotel_address"`
	RoomName        string `json:"room_name"`
	RoomType        string `json:"room_type"`
	GuestName       string `json:"guest_name"`
	GuestEmail      string `json:"guest_email"`
	GuestPhone      string `json:"guest_phone"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Nights          int    `json:"nights"`
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"special_requests,omitempty"`
	PaymentMethod   string `json:"payment_method"`
	PaymentLabel    string `json:"payment_label"`
	TotalPrice      int64  `json:"total_price"`
	TotalDisplay    string `json:"total_display"`
}

// BuildInvoice assembles the display snapshot for a booking view.
func BuildInvoice(v domain.BookingView, issuedAt time.Time) Invoice {
	inv := Invoice{
		BookingCode:   v.Code(),
		Status:        string(v.Status),
		IssuedAt:      issuedAt.Format("02/01/2006 15:04"),
		HotelName:     v.HotelName,
		HotelAddress:  v.HotelAddress,
		RoomName:      v.RoomName,
		RoomType:      v.RoomType,
		GuestName:     v.GuestName,
		GuestEmail:    v.GuestEmail,
		GuestPhone:    v.GuestPhone,
		CheckIn:       v.CheckIn.Format("02/01/2006"),
		CheckOut:      v.CheckOut.Format("02/01/2006"),
		Nights:        Nights(v.CheckIn, v.CheckOut),
		Guests:        v.Guests,
		PaymentMethod: string(v.PaymentMethod),
		PaymentLabel:  domain.PaymentMethodLabel(v.PaymentMethod),
		TotalPrice:    v.TotalPrice,
		TotalDisplay:  FormatVND(v.TotalPrice),
	}
	if v.SpecialRequests != nil {
		inv.SpecialRequests = *v.SpecialRequests
	}
	return inv
}
