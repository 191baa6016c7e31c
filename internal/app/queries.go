package app

import (
	"context"
	"fmt"
	"time"

	"vungtau_stay/internal/domain"
)

type QueryService struct {
	catalog  domain.CatalogRepository
	reviews  domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(catalog domain.CatalogRepository, reviews domain.ReviewRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{catalog: catalog, reviews: reviews, cache: c, cacheTTL: ttl}
}

func (s *QueryService) ListHotels(ctx context.Context, q domain.HotelsQuery) ([]domain.Hotel, error) {
	key := hotelsKey(q)
	var out []domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	hs, err := s.catalog.ListHotels(ctx, q)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, hs, int(s.cacheTTL.Seconds()))
	return hs, nil
}

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := "hotel:" + id
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.catalog.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	return h, nil
}

func (s *QueryService) ListRooms(ctx context.Context, hotelID string) ([]domain.Room, error) {
	key := "rooms:" + hotelID
	var out []domain.Room
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	rs, err := s.catalog.ListRooms(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	// copy to avoid aliasing the repo's backing array in the cached value
	cp := make([]domain.Room, len(rs))
	copy(cp, rs)
	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}

// GetRoom reads through without caching: the booking flow prices from this
// row and a stale rate would widen the existing price-drift window.
func (s *QueryService) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	return s.catalog.GetRoom(ctx, id)
}

// reviewCacheDepth is the most reviews kept per hotel; every limit the API
// accepts is a prefix of it, so one key per hotel covers all of them.
const reviewCacheDepth = 100

func (s *QueryService) ListReviews(ctx context.Context, hotelID string, limit int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	key := "reviews:" + hotelID
	var out []domain.Review
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return capReviews(out, limit), nil
	}
	rs, err := s.reviews.ListReviews(ctx, hotelID, reviewCacheDepth)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, rs, int(s.cacheTTL.Seconds()))
	return capReviews(rs, limit), nil
}

func capReviews(rs []domain.Review, limit int) []domain.Review {
	if len(rs) > limit {
		return rs[:limit]
	}
	return rs
}

func (s *QueryService) InvalidateReviews(ctx context.Context, hotelID string) {
	_ = s.cache.Del(ctx, "reviews:"+hotelID)
}

func hotelsKey(q domain.HotelsQuery) string {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return fmt.Sprintf("hotels:%s:%s:%s:%t:%d", deref(q.Ward), deref(q.PropertyType), deref(q.Q), q.FeaturedOnly, q.Limit)
}
