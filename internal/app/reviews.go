package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"vungtau_stay/internal/domain"
)

type ReviewService struct {
	reviews domain.ReviewRepository
	queries *QueryService
	now     func() time.Time
}

func NewReviewService(reviews domain.ReviewRepository, queries *QueryService) *ReviewService {
	return &ReviewService{reviews: reviews, queries: queries, now: time.Now}
}

// Create accepts a review only from guests with a completed stay at the hotel.
func (s *ReviewService) Create(ctx context.Context, userID, hotelID string, rating int, comment *string) (domain.Review, error) {
	if userID == "" {
		return domain.Review{}, domain.ErrUnauthorized
	}
	if rating < 1 || rating > 5 {
		return domain.Review{}, domain.Invalid("rating", "đánh giá phải từ 1 đến 5 sao")
	}
	if comment != nil {
		trimmed := strings.TrimSpace(*comment)
		if trimmed == "" {
			comment = nil
		} else {
			comment = &trimmed
		}
	}

	ok, err := s.reviews.HasCompletedStay(ctx, userID, hotelID)
	if err != nil {
		return domain.Review{}, err
	}
	if !ok {
		return domain.Review{}, domain.ErrForbidden
	}

	r := domain.Review{
		ID:        uuid.NewString(),
		HotelID:   hotelID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now(),
	}
	if err := s.reviews.CreateReview(ctx, r); err != nil {
		return domain.Review{}, err
	}
	if s.queries != nil {
		s.queries.InvalidateReviews(ctx, hotelID)
	}
	return r, nil
}
