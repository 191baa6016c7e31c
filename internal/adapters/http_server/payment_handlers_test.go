package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vungtau_stay/internal/adapters/payment"
	"vungtau_stay/internal/domain"
)

func TestPaymentMethodsListing(t *testing.T) {
	h := &Handlers{
		Pay: payment.NewDirectory(
			"Vietcombank", "970436", "0123456789", "CONG TY VUNG TAU STAY",
			"0901234567", "VUNG TAU STAY", 600,
		),
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/payments/methods", nil)
	rec := httptest.NewRecorder()
	h.paymentMethods(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body methodList
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 4 {
		t.Fatalf("want 4 methods, got %d", len(body.Items))
	}

	byMethod := map[domain.PaymentMethod]payment.Instructions{}
	for _, ins := range body.Items {
		byMethod[ins.Method] = ins
	}

	bank, ok := byMethod[domain.BankApp]
	if !ok {
		t.Fatal("bank_app missing")
	}
	if bank.Transfer == nil || bank.Transfer.AccountNumber != "0123456789" {
		t.Fatalf("bank transfer info: %+v", bank.Transfer)
	}
	if bank.QRImageURL != qrURLTemplate {
		t.Fatalf("qr template = %q", bank.QRImageURL)
	}
	if bank.ExpiresInSeconds != 600 {
		t.Fatalf("expires_in_seconds = %d", bank.ExpiresInSeconds)
	}

	momo := byMethod[domain.Momo]
	if momo.Transfer == nil || momo.Transfer.AccountNumber != "0901234567" {
		t.Fatalf("momo transfer info: %+v", momo.Transfer)
	}
	if momo.QRImageURL != "" {
		t.Fatalf("momo must not advertise a QR url, got %q", momo.QRImageURL)
	}

	later := byMethod[domain.PayLater]
	if later.Transfer != nil || later.QRImageURL != "" {
		t.Fatalf("pay_later carries transfer details: %+v", later)
	}
}
