package app

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"vungtau_stay/internal/domain"
)

type ProfileService struct {
	users domain.UserRepository
}

func NewProfileService(users domain.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (domain.Profile, error) {
	return s.users.GetProfile(ctx, userID)
}

func (s *ProfileService) Update(ctx context.Context, userID string, fullName, phone *string) (domain.Profile, error) {
	if fullName != nil {
		trimmed := strings.TrimSpace(*fullName)
		if trimmed == "" {
			fullName = nil
		} else {
			if utf8.RuneCountInString(trimmed) < 2 {
				return domain.Profile{}, domain.Invalid("full_name", "tên phải có ít nhất 2 ký tự")
			}
			fullName = &trimmed
		}
	}
	if phone != nil {
		trimmed := strings.TrimSpace(*phone)
		if trimmed == "" {
			phone = nil
		} else {
			if countDigits(trimmed) < 10 {
				return domain.Profile{}, domain.Invalid("phone", "số điện thoại không hợp lệ")
			}
			phone = &trimmed
		}
	}
	// Omitted or blank fields keep their stored values; the upsert writes
	// the whole row, so merge before persisting.
	cur, err := s.users.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, err
	}
	if fullName == nil {
		fullName = cur.FullName
	}
	if phone == nil {
		phone = cur.Phone
	}
	p := domain.Profile{UserID: userID, FullName: fullName, Phone: phone, AvatarURL: cur.AvatarURL}
	if err := s.users.UpdateProfile(ctx, p); err != nil {
		return domain.Profile{}, err
	}
	return s.users.GetProfile(ctx, userID)
}
