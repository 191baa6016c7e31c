package app

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"vungtau_stay/internal/domain"
)

// ErrBookingCancelled is returned when a confirmation is requested for a
// cancelled booking; handlers map it to 400.
var ErrBookingCancelled = fmt.Errorf("booking is cancelled")

// NotifierService sends the booking confirmation email. It trusts nothing
// from the caller beyond the booking id and payment method: the booking is
// re-read filtered by the authenticated owner, and hotel/room names come
// straight from the store.
type NotifierService struct {
	bookings domain.BookingRepository
	catalog  domain.CatalogRepository
	mailer   domain.Mailer
}

func NewNotifierService(bookings domain.BookingRepository, catalog domain.CatalogRepository, mailer domain.Mailer) *NotifierService {
	return &NotifierService{bookings: bookings, catalog: catalog, mailer: mailer}
}

func (s *NotifierService) SendConfirmation(ctx context.Context, userID, bookingID string, method domain.PaymentMethod) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	b, err := s.bookings.GetBooking(ctx, bookingID, userID)
	if err != nil {
		return err // ErrNotFound covers both missing and not-owned
	}
	if b.Status == domain.StatusCancelled {
		return ErrBookingCancelled
	}

	hotel, err := s.catalog.GetHotel(ctx, b.HotelID)
	if err != nil {
		return fmt.Errorf("load hotel: %w", err)
	}
	room, err := s.catalog.GetRoom(ctx, b.RoomID)
	if err != nil {
		return fmt.Errorf("load room: %w", err)
	}

	html, err := renderConfirmationHTML(b, hotel, room, method)
	if err != nil {
		return fmt.Errorf("render email: %w", err)
	}
	return s.mailer.Send(ctx, domain.Email{
		To:      b.GuestEmail,
		Subject: fmt.Sprintf("Xác nhận đặt phòng tại %s", hotel.Name),
		HTML:    html,
	})
}

// html/template escapes every interpolated field, which covers the guest-
// supplied free text as well.
var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Xác nhận đặt phòng</title></head>
<body style="font-family:sans-serif;max-width:600px;margin:0 auto;padding:20px">
  <h1 style="color:#1a73e8">Đặt phòng thành công!</h1>
  <p>Xin chào <strong>{{.GuestName}}</strong>,</p>
  <p>Cảm ơn bạn đã đặt phòng. Dưới đây là thông tin chi tiết đặt phòng của bạn:</p>
  <h2>Mã đặt phòng: {{.Code}}</h2>
  <table style="width:100%;border-collapse:collapse">
    <tr><td>Khách sạn:</td><td style="text-align:right"><strong>{{.HotelName}}</strong></td></tr>
    <tr><td>Địa chỉ:</td><td style="text-align:right">{{.HotelAddress}}</td></tr>
    <tr><td>Phòng:</td><td style="text-align:right"><strong>{{.RoomName}}</strong></td></tr>
    <tr><td>Nhận phòng:</td><td style="text-align:right">{{.CheckIn}}</td></tr>
    <tr><td>Trả phòng:</td><td style="text-align:right">{{.CheckOut}}</td></tr>
    <tr><td>Số khách:</td><td style="text-align:right">{{.Guests}} người</td></tr>
    <tr><td>Thanh toán:</td><td style="text-align:right">{{.PaymentLabel}}</td></tr>
  </table>
  <p style="font-size:24px"><strong>Tổng thanh toán: {{.Total}}</strong></p>
  <p><strong>Lưu ý:</strong> Thời gian nhận phòng từ 14:00 và trả phòng trước 12:00.</p>
  <p>Chúc bạn có một kỳ nghỉ tuyệt vời!</p>
</body>
</html>`))

func renderConfirmationHTML(b domain.Booking, hotel domain.Hotel, room domain.Room, method domain.PaymentMethod) (string, error) {
	data := struct {
		GuestName    string
		Code         string
		HotelName    string
		HotelAddress string
		RoomName     string
		CheckIn      string
		CheckOut     string
		Guests       int
		PaymentLabel string
		Total        string
	}{
		GuestName:    b.GuestName,
		Code:         b.Code(),
		HotelName:    hotel.Name,
		HotelAddress: hotel.Address,
		RoomName:     room.Name,
		CheckIn:      formatDate(b.CheckIn),
		CheckOut:     formatDate(b.CheckOut),
		Guests:       b.Guests,
		PaymentLabel: domain.PaymentMethodLabel(method),
		Total:        FormatVND(b.TotalPrice),
	}
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatDate(t time.Time) string { return t.Format("02/01/2006") }

// FormatVND renders an amount with dot thousand separators and the đ suffix,
// e.g. 3600000 -> "3.600.000đ".
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	var buf bytes.Buffer
	pre := len(s) % 3
	if pre > 0 {
		buf.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(s[i : i+3])
	}
	out := buf.String()
	if neg {
		out = "-" + out
	}
	return out + "đ"
}
