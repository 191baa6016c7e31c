package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vungtau_stay/internal/adapters/auth"
	"vungtau_stay/internal/domain"
)

type AuthService struct {
	users    domain.UserRepository
	sessions domain.Sessions
	now      func() time.Time
}

func NewAuthService(users domain.UserRepository, sessions domain.Sessions) *AuthService {
	return &AuthService{users: users, sessions: sessions, now: time.Now}
}

type SignedIn struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

func (s *AuthService) SignUp(ctx context.Context, email, password string, fullName *string) (SignedIn, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return SignedIn{}, domain.Invalid("email", "email không hợp lệ")
	}
	if len(password) < 8 {
		return SignedIn{}, domain.Invalid("password", "mật khẩu phải có ít nhất 8 ký tự")
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return SignedIn{}, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return SignedIn{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return SignedIn{}, err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.CreateUser(ctx, u, fullName); err != nil {
		return SignedIn{}, err
	}
	return s.issue(u)
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (SignedIn, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return SignedIn{}, domain.ErrUnauthorized
		}
		return SignedIn{}, err
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return SignedIn{}, domain.ErrUnauthorized
	}
	return s.issue(u)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (domain.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

func (s *AuthService) issue(u domain.User) (SignedIn, error) {
	tok, err := s.sessions.Issue(u.ID)
	if err != nil {
		return SignedIn{}, err
	}
	return SignedIn{UserID: u.ID, Email: u.Email, Token: tok}, nil
}
