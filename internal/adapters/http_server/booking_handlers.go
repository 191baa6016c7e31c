package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vungtau_stay/internal/adapters/invoice"
	"vungtau_stay/internal/adapters/payment"
	"vungtau_stay/internal/app"
	"vungtau_stay/internal/domain"
)

type bookingRequest struct {
	HotelID         string              `json:"hotel_id"`
	RoomID          string              `json:"room_id"`
	CheckIn         string              `json:"check_in"`  // YYYY-MM-DD
	CheckOut        string              `json:"check_out"` // YYYY-MM-DD
	Guests          int                 `json:"guests"`
	RoomCount       int                 `json:"room_count"`
	GuestName       string              `json:"guest_name"`
	GuestEmail      string              `json:"guest_email"`
	GuestPhone      string              `json:"guest_phone"`
	SpecialRequests *string             `json:"special_requests"`
	PaymentMethod   string              `json:"payment_method"`
	DiscountCode    string              `json:"discount_code"`
	Card            *domain.CardDetails `json:"card"`
}

type bookingResponse struct {
	Booking  domain.Booking          `json:"booking"`
	Code     string                  `json:"booking_code"`
	Quote    app.Quote               `json:"quote"`
	Discount *domain.AppliedDiscount `json:"discount,omitempty"`
	Receipt  *domain.PaymentReceipt  `json:"receipt,omitempty"`
	Payment  *payment.Instructions   `json:"payment,omitempty"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	checkIn, err := time.Parse("2006-01-02", req.CheckIn)
	if err != nil {
		writeError(w, domain.Invalid("check_in", "ngày nhận phòng không hợp lệ"))
		return
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOut)
	if err != nil {
		writeError(w, domain.Invalid("check_out", "ngày trả phòng không hợp lệ"))
		return
	}

	draft := app.BookingDraft{
		HotelID:         req.HotelID,
		RoomID:          req.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		RoomCount:       req.RoomCount,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		SpecialRequests: req.SpecialRequests,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		DiscountCode:    req.DiscountCode,
		Card:            req.Card,
	}

	res, err := h.Bookings.Create(r.Context(), UserID(r.Context()), draft)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := bookingResponse{
		Booking:  res.Booking,
		Code:     res.Code,
		Quote:    res.Quote,
		Discount: res.Discount,
		Receipt:  res.Receipt,
	}
	if m := res.Booking.PaymentMethod; m == domain.BankApp || m == domain.Momo {
		ref := res.Booking.Code()
		if res.Receipt != nil {
			ref = res.Receipt.Reference
		}
		ins := h.Pay.Describe(m, res.Booking.TotalPrice, ref)
		if m == domain.BankApp {
			ins.QRImageURL = h.QR.ImageURL(h.Pay.BankCode(), h.Pay.BankAccount(), res.Booking.TotalPrice, ref, h.Pay.BankHolder())
		}
		resp.Payment = &ins
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	out, err := h.Bookings.History(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingList{Items: out})
}

type bookingList struct {
	Items []domain.BookingView `json:"items"`
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.Get(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.Cancel(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// bookingView re-joins hotel and room names from the store for invoices.
func (h *Handlers) bookingView(r *http.Request) (domain.BookingView, error) {
	b, err := h.Bookings.Get(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		return domain.BookingView{}, err
	}
	hotel, err := h.Q.GetHotel(r.Context(), b.HotelID)
	if err != nil {
		return domain.BookingView{}, err
	}
	room, err := h.Q.GetRoom(r.Context(), b.RoomID)
	if err != nil {
		return domain.BookingView{}, err
	}
	return domain.BookingView{
		Booking:      b,
		HotelName:    hotel.Name,
		HotelAddress: hotel.Address,
		RoomName:     room.Name,
		RoomType:     room.Type,
	}, nil
}

func (h *Handlers) getInvoice(w http.ResponseWriter, r *http.Request) {
	v, err := h.bookingView(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.BuildInvoice(v, time.Now()))
}

func (h *Handlers) getInvoicePDF(w http.ResponseWriter, r *http.Request) {
	v, err := h.bookingView(r)
	if err != nil {
		writeError(w, err)
		return
	}
	pdf, err := invoice.Render(app.BuildInvoice(v, time.Now()))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=hoa-don-"+v.Code()+".pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handlers) sendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	// Body is optional; an empty or malformed one falls back to the stored method.
	_ = decodeOptionalJSON(r, &req)

	userID := UserID(r.Context())
	id := chi.URLParam(r, "id")

	method := domain.PaymentMethod(req.PaymentMethod)
	if !domain.ValidPaymentMethod(method) {
		b, err := h.Bookings.Get(r.Context(), userID, id)
		if err != nil {
			writeError(w, err)
			return
		}
		method = b.PaymentMethod
	}

	if err := h.Notifier.SendConfirmation(r.Context(), userID, id, method); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"sent": true})
}
