package domain

import (
	"strings"
	"time"
)

type Discount struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"`
	Description     string     `json:"description"`
	DiscountPercent int        `json:"discount_percent"`
	MinOrderAmount  *int64     `json:"min_order_amount,omitempty"`
	MaxUses         *int       `json:"max_uses,omitempty"`
	UsedCount       int        `json:"used_count"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidUntil      time.Time  `json:"valid_until"`
	ApplicableTo    []string   `json:"applicable_to"` // property types, or "all"; empty means all
	IsActive        bool       `json:"is_active"`
}

// AppliedDiscount is the in-session result of a successful validation. It is
// never persisted; used_count enforcement lives elsewhere.
type AppliedDiscount struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
	Description     string `json:"description"`
}

// NormalizeCode trims and uppercases a user-entered promo code before lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// AppliesTo reports whether the discount covers the given property type.
// An empty set or an "all" entry covers everything.
func (d Discount) AppliesTo(propertyType string) bool {
	if len(d.ApplicableTo) == 0 {
		return true
	}
	for _, t := range d.ApplicableTo {
		if t == "all" || strings.EqualFold(t, propertyType) {
			return true
		}
	}
	return false
}
