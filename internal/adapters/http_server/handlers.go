package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"vungtau_stay/internal/adapters/payment"
	"vungtau_stay/internal/adapters/qrimg"
	"vungtau_stay/internal/app"
	"vungtau_stay/internal/domain"
)

type Handlers struct {
	Q         *app.QueryService
	Auth      *app.AuthService
	Bookings  *app.BookingService
	Discounts *app.DiscountService
	Reviews   *app.ReviewService
	Profiles  *app.ProfileService
	Notifier  *app.NotifierService
	Pay       *payment.Directory
	QR        *qrimg.Client
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Field  string `json:"field,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers, sessions domain.Sessions) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Post("/auth/signup", h.signUp)
		r.Post("/auth/signin", h.signIn)

		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/{id}", h.getHotel)
		r.Get("/hotels/{id}/rooms", h.listRooms)
		r.Get("/hotels/{id}/reviews", h.listReviews)
		r.Get("/rooms/{id}", h.getRoom)

		r.Post("/discounts/validate", h.validateDiscount)
		r.Get("/payments/methods", h.paymentMethods)
		r.Get("/payments/qr", h.paymentQR)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(sessions))
			r.Get("/auth/me", h.me)
			r.Post("/hotels/{id}/reviews", h.createReview)
			r.Post("/bookings", h.createBooking)
			r.Get("/bookings", h.listBookings)
			r.Get("/bookings/{id}", h.getBooking)
			r.Post("/bookings/{id}/cancel", h.cancelBooking)
			r.Get("/bookings/{id}/invoice", h.getInvoice)
			r.Get("/bookings/{id}/invoice.pdf", h.getInvoicePDF)
			r.Post("/bookings/{id}/confirmation-email", h.sendConfirmation)
			r.Get("/profile", h.getProfile)
			r.Put("/profile", h.updateProfile)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto the problem vocabulary. Unknown errors
// become a generic 500; the guest never sees backend detail.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(problem{
			Type: "about:blank", Title: "Validation Failed",
			Status: http.StatusBadRequest, Detail: ve.Message, Field: ve.Field,
		})
		return
	}
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "")
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", "")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "")
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Conflict", "")
	case errors.Is(err, app.ErrBookingCancelled):
		writeProblem(w, http.StatusBadRequest, "Booking Cancelled", "đặt phòng đã bị hủy")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "đã có lỗi xảy ra, vui lòng thử lại")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decodeOptionalJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return false
	}
	return true
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached sends v with an ETag, short-circuiting on If-None-Match.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// ---- catalog ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	var q domain.HotelsQuery
	if v := r.URL.Query().Get("ward"); v != "" {
		q.Ward = &v
	}
	if v := r.URL.Query().Get("type"); v != "" {
		if !domain.ValidPropertyType(v) {
			writeProblem(w, http.StatusBadRequest, "Invalid Type", "unknown property type")
			return
		}
		q.PropertyType = &v
	}
	if v := r.URL.Query().Get("q"); v != "" {
		q.Q = &v
	}
	q.FeaturedOnly = r.URL.Query().Get("featured") == "true"
	q.Limit = 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		q.Limit = l
	}

	out, err := h.Q.ListHotels(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, hotelList{Items: out})
}

type hotelList struct {
	Items []domain.Hotel `json:"items"`
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Q.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, hotel)
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Q.ListRooms(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, roomList{Items: rooms})
}

type roomList struct {
	Items []domain.Room `json:"items"`
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.Q.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, room)
}

// ---- reviews ----

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 100 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 100")
			return
		}
		limit = l
	}
	out, err := h.Q.ListReviews(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, reviewList{Items: out})
}

type reviewList struct {
	Items []domain.Review `json:"items"`
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating  int     `json:"rating"`
		Comment *string `json:"comment"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	rv, err := h.Reviews.Create(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

// ---- discounts ----

// validateDiscount always answers 200 for an evaluated code: the outcome is
// either the applied discount or the rejection reason the form shows inline.
func (h *Handlers) validateDiscount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code         string `json:"code"`
		OrderTotal   int64  `json:"order_total"`
		PropertyType string `json:"property_type"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	applied, err := h.Discounts.Validate(r.Context(), req.Code, req.OrderTotal, req.PropertyType)
	if err != nil {
		var rej *domain.DiscountRejectedError
		if errors.As(err, &rej) {
			writeJSON(w, http.StatusOK, discountOutcome{Valid: false, Reason: rej.Reason, Message: rej.Message})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discountOutcome{Valid: true, Discount: &applied})
}

type discountOutcome struct {
	Valid    bool                    `json:"valid"`
	Discount *domain.AppliedDiscount `json:"discount,omitempty"`
	Reason   string                  `json:"reason,omitempty"`
	Message  string                  `json:"message,omitempty"`
}
