package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/metrics"
	"github.com/antonkor/logboard/internal/repo"
	errorsUtils "github.com/antonkor/logboard/pkg/errors"
	"github.com/antonkor/logboard/pkg/hasher"
)

const defaultTokenTTL = time.Hour

type TokenClaims struct {
	jwt.RegisteredClaims
	UserID int64    `json:"uid"`
	Roles  []string `json:"roles"`
}

type AuthService struct {
	userRepo repo.User
	hasher   hasher.PasswordHasher
	counters *metrics.Counters
	signKey  []byte
	tokenTTL time.Duration
}

func NewAuthService(ur repo.User, h hasher.PasswordHasher, cnt *metrics.Counters, signKey []byte, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		userRepo: ur,
		hasher:   h,
		counters: cnt,
		signKey:  signKey,
		tokenTTL: tokenTTL,
	}
}

// Login verifies credentials and issues a signed token. Unknown email,
// wrong password and inactive account all return the same error so the
// response never reveals whether the email exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.counters.AuthAttempts.Inc("login", "failed")
		return "", domain.User{}, ErrInvalidCredentials
	}

	if !s.hasher.Compare(user.Password, password) || !user.IsActive {
		s.counters.AuthAttempts.Inc("login", "failed")
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", domain.User{}, errorsUtils.WrapPathErr(err)
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return "", domain.User{}, errorsUtils.WrapPathErr(err)
	}
	user.LastLoginAt = &now

	s.counters.AuthAttempts.Inc("login", "ok")
	return token, user, nil
}

// Validate checks signature and expiry, then re-checks the referenced
// account so a deactivated user cannot keep using an old token.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (domain.Principal, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.signKey, nil
	})
	if err != nil || !token.Valid {
		return domain.Principal{}, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return domain.Principal{}, ErrInvalidToken
	}

	return domain.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
	}, nil
}

// Refresh re-issues a token for an already validated principal and
// bumps last_login_at.
func (s *AuthService) Refresh(ctx context.Context, principal domain.Principal) (string, domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return "", domain.User{}, ErrInvalidToken
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", domain.User{}, errorsUtils.WrapPathErr(err)
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return "", domain.User{}, errorsUtils.WrapPathErr(err)
	}
	user.LastLoginAt = &now

	s.counters.AuthAttempts.Inc("refresh", "ok")
	return token, user, nil
}

func (s *AuthService) Stats(ctx context.Context) (domain.AuthStats, error) {
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return domain.AuthStats{}, errorsUtils.WrapPathErr(err)
	}

	active, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return domain.AuthStats{}, errorsUtils.WrapPathErr(err)
	}

	admins, err := s.userRepo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return domain.AuthStats{}, errorsUtils.WrapPathErr(err)
	}

	now := time.Now().UTC()
	recent, err := s.userRepo.CountRecentLogins(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return domain.AuthStats{}, errorsUtils.WrapPathErr(err)
	}

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	newThisMonth, err := s.userRepo.CountCreatedSince(ctx, startOfMonth)
	if err != nil {
		return domain.AuthStats{}, errorsUtils.WrapPathErr(err)
	}

	return domain.AuthStats{
		TotalUsers:        total,
		ActiveUsers:       active,
		AdminUsers:        admins,
		RecentLogins:      recent,
		NewUsersThisMonth: newThisMonth,
	}, nil
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: user.ID,
		Roles:  user.Roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signKey)
}
