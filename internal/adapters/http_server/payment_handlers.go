package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"vungtau_stay/internal/adapters/payment"
	"vungtau_stay/internal/domain"
)

func (h *Handlers) paymentMethods(w http.ResponseWriter, r *http.Request) {
	methods := []domain.PaymentMethod{domain.PayLater, domain.DebitCard, domain.BankApp, domain.Momo}
	out := make([]payment.Instructions, 0, len(methods))
	for _, m := range methods {
		ins := h.Pay.Describe(m, 0, "")
		if m == domain.BankApp {
			ins.QRImageURL = qrURLTemplate
		}
		out = append(out, ins)
	}
	writeCached(w, r, methodList{Items: out})
}

type methodList struct {
	Items []payment.Instructions `json:"items"`
}

// qrURLTemplate tells the client where to fetch the transfer QR once it
// knows the order amount and reference.
const qrURLTemplate = "/v1/payments/qr?amount={amount}&reference={reference}"

// paymentQR proxies the third-party QR generator. When the generator is
// down the guest falls back to manual transfer, so failures answer with a
// problem document rather than a broken image.
func (h *Handlers) paymentQR(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid Amount", "amount must be a positive integer")
		return
	}
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		writeProblem(w, http.StatusBadRequest, "Missing Reference", "reference is required")
		return
	}

	url := h.QR.ImageURL(h.Pay.BankCode(), h.Pay.BankAccount(), amount, reference, h.Pay.BankHolder())
	img, contentType, err := h.QR.Fetch(r.Context(), url)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "QR Not Available", "vui lòng chuyển khoản thủ công")
			return
		}
		writeProblem(w, http.StatusBadGateway, "QR Unavailable", "vui lòng chuyển khoản thủ công")
		return
	}
	if contentType == "" {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
