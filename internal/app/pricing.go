package app

import (
	"time"

	"vungtau_stay/internal/domain"
)

// Quote is the derived pricing for a stay. Recomputed from scratch on every
// input change; nothing here is persisted except the final total.
type Quote struct {
	Nights          int   `json:"nights"`
	RoomCount       int   `json:"room_count"`
	Subtotal        int64 `json:"subtotal"`
	DiscountPercent int   `json:"discount_percent,omitempty"`
	DiscountAmount  int64 `json:"discount_amount,omitempty"`
	Total           int64 `json:"total"`
}

// Nights returns the whole-day difference between check-out and check-in.
// Callers must reject values <= 0 before any persistence.
func Nights(checkIn, checkOut time.Time) int {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)
	return int(out.Sub(in) / (24 * time.Hour))
}

// PriceStay computes nightly rate x nights x rooms, then applies the discount
// percentage when one was validated. No taxes, fees, or proration.
func PriceStay(nightlyRate int64, nights, roomCount int, d *domain.AppliedDiscount) Quote {
	if roomCount < 1 {
		roomCount = 1
	}
	q := Quote{Nights: nights, RoomCount: roomCount}
	q.Subtotal = nightlyRate * int64(nights) * int64(roomCount)
	q.Total = q.Subtotal
	if d != nil {
		q.DiscountPercent = d.DiscountPercent
		q.DiscountAmount = q.Subtotal * int64(d.DiscountPercent) / 100
		q.Total = q.Subtotal - q.DiscountAmount
	}
	return q
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
