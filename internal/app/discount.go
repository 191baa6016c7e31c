package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vungtau_stay/internal/domain"
)

type DiscountService struct {
	repo domain.DiscountRepository
	now  func() time.Time
}

func NewDiscountService(repo domain.DiscountRepository) *DiscountService {
	return &DiscountService{repo: repo, now: time.Now}
}

// Validate runs the eligibility chain for a user-entered code against the
// current order. Each check short-circuits; the first failure decides the
// rejection message. Success returns the AppliedDiscount held in session
// state only — used_count is not incremented here.
func (s *DiscountService) Validate(ctx context.Context, code string, orderTotal int64, propertyType string) (domain.AppliedDiscount, error) {
	normalized := domain.NormalizeCode(code)
	if normalized == "" {
		return domain.AppliedDiscount{}, domain.Invalid("code", "vui lòng nhập mã khuyến mãi")
	}

	now := s.now()
	d, err := s.repo.GetActiveDiscount(ctx, normalized, now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.AppliedDiscount{}, &domain.DiscountRejectedError{
				Reason:  "invalid_or_expired",
				Message: "mã khuyến mãi không hợp lệ hoặc đã hết hạn",
			}
		}
		// backend failure: generic message, no retry
		return domain.AppliedDiscount{}, fmt.Errorf("check discount code: %w", err)
	}

	if d.MinOrderAmount != nil && orderTotal < *d.MinOrderAmount {
		return domain.AppliedDiscount{}, &domain.DiscountRejectedError{
			Reason:  "min_order",
			Message: fmt.Sprintf("đơn hàng tối thiểu %dđ để sử dụng mã này", *d.MinOrderAmount),
		}
	}
	if d.MaxUses != nil && d.UsedCount >= *d.MaxUses {
		return domain.AppliedDiscount{}, &domain.DiscountRejectedError{
			Reason:  "usage_cap",
			Message: "mã khuyến mãi đã hết lượt sử dụng",
		}
	}
	if d.ValidFrom != nil && d.ValidFrom.After(now) {
		return domain.AppliedDiscount{}, &domain.DiscountRejectedError{
			Reason:  "not_yet_valid",
			Message: "mã khuyến mãi chưa có hiệu lực",
		}
	}
	if !d.AppliesTo(propertyType) {
		return domain.AppliedDiscount{}, &domain.DiscountRejectedError{
			Reason:  "not_applicable",
			Message: "mã này không áp dụng cho loại hình lưu trú đã chọn",
		}
	}

	return domain.AppliedDiscount{
		Code:            d.Code,
		DiscountPercent: d.DiscountPercent,
		Description:     d.Description,
	}, nil
}
