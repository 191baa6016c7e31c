package payment

import (
	"vungtau_stay/internal/domain"
)

// TransferInfo is the manual-transfer fallback shown next to the QR code.
type TransferInfo struct {
	BankName      string `json:"bank_name,omitempty"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
}

// Instructions describes one payment method for the checkout screen.
// ExpiresInSeconds is advisory only: the countdown nudges the guest to
// finish, nothing server-side cancels the booking when it elapses.
type Instructions struct {
	Method           domain.PaymentMethod `json:"method"`
	Label            string               `json:"label"`
	Transfer         *TransferInfo        `json:"transfer,omitempty"`
	Amount           int64                `json:"amount,omitempty"`
	Reference        string               `json:"reference,omitempty"`
	QRImageURL       string               `json:"qr_image_url,omitempty"`
	ExpiresInSeconds int                  `json:"expires_in_seconds,omitempty"`
}

// Directory knows the merchant's receiving accounts.
type Directory struct {
	bankName    string
	bankCode    string
	bankAccount string
	bankHolder  string
	momoPhone   string
	momoHolder  string
	windowSecs  int
}

func NewDirectory(bankName, bankCode, bankAccount, bankHolder, momoPhone, momoHolder string, windowSecs int) *Directory {
	return &Directory{
		bankName:    bankName,
		bankCode:    bankCode,
		bankAccount: bankAccount,
		bankHolder:  bankHolder,
		momoPhone:   momoPhone,
		momoHolder:  momoHolder,
		windowSecs:  windowSecs,
	}
}

// Methods lists every supported method with its display label.
func (d *Directory) Methods() []Instructions {
	out := make([]Instructions, 0, 4)
	for _, m := range []domain.PaymentMethod{domain.PayLater, domain.DebitCard, domain.BankApp, domain.Momo} {
		out = append(out, Instructions{Method: m, Label: domain.PaymentMethodLabel(m)})
	}
	return out
}

// Describe fills in the account details for a specific order.
func (d *Directory) Describe(m domain.PaymentMethod, amount int64, reference string) Instructions {
	ins := Instructions{
		Method:    m,
		Label:     domain.PaymentMethodLabel(m),
		Amount:    amount,
		Reference: reference,
	}
	switch m {
	case domain.BankApp:
		ins.Transfer = &TransferInfo{
			BankName:      d.bankName,
			AccountNumber: d.bankAccount,
			AccountHolder: d.bankHolder,
		}
		ins.ExpiresInSeconds = d.windowSecs
	case domain.Momo:
		ins.Transfer = &TransferInfo{
			AccountNumber: d.momoPhone,
			AccountHolder: d.momoHolder,
		}
		ins.ExpiresInSeconds = d.windowSecs
	}
	return ins
}

// BankCode is the transfer-network identifier used in QR deep links.
func (d *Directory) BankCode() string { return d.bankCode }

func (d *Directory) BankAccount() string { return d.bankAccount }

func (d *Directory) BankHolder() string { return d.bankHolder }
