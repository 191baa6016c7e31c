package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vungtau_stay/internal/app"
	"vungtau_stay/internal/domain"
)

func tetDiscount() domain.Discount {
	return domain.Discount{
		ID:              "d-1",
		Code:            "TET2025",
		Description:     "Ưu đãi Tết Nguyên Đán",
		DiscountPercent: 15,
		MinOrderAmount:  ptr(int64(1000000)),
		MaxUses:         ptr(500),
		UsedCount:       0,
		ValidUntil:      time.Now().Add(30 * 24 * time.Hour),
		ApplicableTo:    []string{"all"},
		IsActive:        true,
	}
}

func rejectionReason(t *testing.T, err error) string {
	t.Helper()
	var rej *domain.DiscountRejectedError
	if !errors.As(err, &rej) {
		t.Fatalf("expected rejection, got %v", err)
	}
	return rej.Reason
}

func TestValidateApplied(t *testing.T) {
	svc := app.NewDiscountService(&fakeDiscounts{byCode: map[string]domain.Discount{"TET2025": tetDiscount()}})

	got, err := svc.Validate(context.Background(), "tet2025", 1200000, domain.PropertyVilla)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.Code != "TET2025" || got.DiscountPercent != 15 {
		t.Fatalf("applied = %+v", got)
	}
}

func TestValidateMinOrder(t *testing.T) {
	svc := app.NewDiscountService(&fakeDiscounts{byCode: map[string]domain.Discount{"TET2025": tetDiscount()}})

	_, err := svc.Validate(context.Background(), "TET2025", 900000, domain.PropertyVilla)
	if got := rejectionReason(t, err); got != "min_order" {
		t.Fatalf("reason = %s", got)
	}
}

func TestValidateUnknownCode(t *testing.T) {
	svc := app.NewDiscountService(&fakeDiscounts{byCode: map[string]domain.Discount{}})

	_, err := svc.Validate(context.Background(), "NOPE", 1200000, domain.PropertyVilla)
	if got := rejectionReason(t, err); got != "invalid_or_expired" {
		t.Fatalf("reason = %s", got)
	}
}

func TestValidateExpired(t *testing.T) {
	d := tetDiscount()
	d.ValidUntil = time.Now().Add(-time.Hour)
	svc := app.NewDiscountService(&fakeDiscounts{byCode: map[string]domain.Discount{"TET2025": d}})

	_, err := svc.Validate(context.Background(), "TET2025", 1200000, domain.PropertyVilla)
	if got := rejectionReason(t, err); got != "invalid_or_expired" {
		t.Fatalf("reason = %s", got)
	}
}

func TestValidateUsageCap(t *testing.T) {
	d := tetDiscount()
	d.MaxUses = ptr(10)
	d.UsedCount = 10
	svc := app.NewDiscountService(&fakeDiscounts{byCode: map[string]domain.Discount{"TET2025": d}})

	_, err := svc.Validate(context.Background(), "TET2025", 1200000, domain.PropertyVilla)
	if got := rejectionReason(t, err); got != "usage_cap" {
		t.Fatalf("reason = %s", got)
	}
}

func TestValidateNotYetValid(t *testing.T) {
	d := tetDiscount()
	d.ValidFrom = ptr(time.Now().Add(24 * time.Hour))
	svc := app.NewDiscountService(&fakeDiscounts{byCode: map[string]domain.Discount{"TET2025": d}})

	_, err := svc.Validate(context.Background(), "TET2025", 1200000, domain.PropertyVilla)
	if got := rejectionReason(t, err); got != "not_yet_valid" {
		t.Fatalf("reason = %s", got)
	}
}

func TestValidateNotApplicable(t *testing.T) {
	d := tetDiscount()
	d.ApplicableTo = []string{domain.PropertyVilla}
	svc := app.NewDiscountService(&fakeDiscounts{byCode: map[string]domain.Discount{"TET2025": d}})

	_, err := svc.Validate(context.Background(), "TET2025", 1200000, domain.PropertyHotel)
	if got := rejectionReason(t, err); got != "not_applicable" {
		t.Fatalf("reason = %s", got)
	}

	// The same code applies to the covered type.
	if _, err := svc.Validate(context.Background(), "TET2025", 1200000, domain.PropertyVilla); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

// Min-order rejection wins over other field states regardless of caps or
// applicability.
func TestValidateMinOrderCheckedFirst(t *testing.T) {
	d := tetDiscount()
	d.MaxUses = ptr(10)
	d.UsedCount = 10
	d.ApplicableTo = []string{domain.PropertyVilla}
	svc := app.NewDiscountService(&fakeDiscounts{byCode: map[string]domain.Discount{"TET2025": d}})

	_, err := svc.Validate(context.Background(), "TET2025", 900000, domain.PropertyHotel)
	if got := rejectionReason(t, err); got != "min_order" {
		t.Fatalf("reason = %s", got)
	}
}

func TestValidateEmptyCode(t *testing.T) {
	svc := app.NewDiscountService(&fakeDiscounts{})
	_, err := svc.Validate(context.Background(), "   ", 1200000, domain.PropertyVilla)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
