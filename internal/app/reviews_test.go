package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vungtau_stay/internal/app"
	"vungtau_stay/internal/domain"
)

func reviewEnv(completed bool) (*app.ReviewService, *fakeReviews, *fakeCache) {
	reviews := &fakeReviews{completed: map[string]bool{}}
	if completed {
		reviews.completed["u-1|h-1"] = true
	}
	cache := &fakeCache{}
	q := app.NewQueryService(&fakeCatalog{}, reviews, cache, 10*time.Minute)
	return app.NewReviewService(reviews, q), reviews, cache
}

func TestCreateReview(t *testing.T) {
	svc, reviews, _ := reviewEnv(true)

	r, err := svc.Create(context.Background(), "u-1", "h-1", 5, ptr("Tuyệt vời, sẽ quay lại!"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Rating != 5 || r.Comment == nil {
		t.Fatalf("review = %+v", r)
	}
	if len(reviews.rows) != 1 {
		t.Fatalf("stored %d reviews", len(reviews.rows))
	}
}

func TestCreateReviewRequiresCompletedStay(t *testing.T) {
	svc, reviews, _ := reviewEnv(false)

	_, err := svc.Create(context.Background(), "u-1", "h-1", 4, nil)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if len(reviews.rows) != 0 {
		t.Fatal("review must not be stored")
	}
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc, _, _ := reviewEnv(true)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), "u-1", "h-1", rating, nil)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("rating %d: want validation error, got %v", rating, err)
		}
	}
}

func TestCreateReviewBlankCommentDropped(t *testing.T) {
	svc, reviews, _ := reviewEnv(true)

	r, err := svc.Create(context.Background(), "u-1", "h-1", 3, ptr("   "))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Comment != nil {
		t.Fatalf("blank comment should be dropped, got %q", *r.Comment)
	}
	_ = reviews
}

func TestCreateReviewInvalidatesCache(t *testing.T) {
	svc, _, cache := reviewEnv(true)

	_ = cache.Set(context.Background(), "reviews:h-1", []domain.Review{}, 600)
	if _, err := svc.Create(context.Background(), "u-1", "h-1", 5, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := cache.store["reviews:h-1"]; ok {
		t.Fatal("review cache key survived creation")
	}
}

func TestCreateReviewUnauthenticated(t *testing.T) {
	svc, _, _ := reviewEnv(true)
	if _, err := svc.Create(context.Background(), "", "h-1", 5, nil); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}
