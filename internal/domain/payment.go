package domain

import (
	"strconv"
	"strings"
)

// CardDetails is collected for debit_card payments. Validation is format
// masking only; nothing is ever charged.
type CardDetails struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"` // MM/YY
	CVV    string `json:"cvv"`
}

func (c CardDetails) Validate() error {
	digits := strings.ReplaceAll(strings.ReplaceAll(c.Number, " ", ""), "-", "")
	if len(digits) < 16 || !luhnOK(digits) {
		return Invalid("card_number", "số thẻ không hợp lệ")
	}
	if len(strings.TrimSpace(c.Holder)) < 2 {
		return Invalid("card_holder", "tên chủ thẻ không hợp lệ")
	}
	if !expiryOK(c.Expiry) {
		return Invalid("card_expiry", "ngày hết hạn không hợp lệ")
	}
	if n := len(c.CVV); n < 3 || n > 4 {
		return Invalid("card_cvv", "mã CVV không hợp lệ")
	}
	for _, r := range c.CVV {
		if r < '0' || r > '9' {
			return Invalid("card_cvv", "mã CVV không hợp lệ")
		}
	}
	return nil
}

func luhnOK(digits string) bool {
	sum := 0
	alt := false
	for i := len(digits) - 1; i >= 0; i-- {
		r := digits[i]
		if r < '0' || r > '9' {
			return false
		}
		d := int(r - '0')
		if alt {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		alt = !alt
	}
	return sum%10 == 0
}

func expiryOK(exp string) bool {
	parts := strings.Split(exp, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return false
	}
	return true
}
