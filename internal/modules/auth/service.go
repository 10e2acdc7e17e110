package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"apibasics/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// Service composes the credential hasher, the access token codec and
// the refresh token store into register/login/refresh/revoke.
type Service struct {
	users         UserRepositoryInterface
	refreshTokens RefreshTokenRepositoryInterface
	hasher        PasswordHasher
	tokens        AccessTokenIssuer
	refreshTTL    time.Duration
}

func NewService(
	users UserRepositoryInterface,
	refreshTokens RefreshTokenRepositoryInterface,
	hasher PasswordHasher,
	tokens AccessTokenIssuer,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:         users,
		refreshTokens: refreshTokens,
		hasher:        hasher,
		tokens:        tokens,
		refreshTTL:    refreshTTL,
	}
}

// Register creates an account with a fresh opaque id, an empty bio and
// empty-object preferences. Emails are stored and matched exactly as
// given. The returned user never carries the password hash.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Bio:          "",
		Preferences:  "{}",
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Two concurrent registrations for the same email race past the
		// existence check; the unique index resolves the race and the
		// loser surfaces as a conflict.
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// Unknown email and wrong password produce the identical error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateOpaqueToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.refreshTokens.Create(ctx, &domain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: now.Add(s.refreshTTL),
	}); err != nil {
		return nil, err
	}

	return &TokenResponse{
		TokenType:    "Bearer",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.tokens.TTL().Seconds()),
	}, nil
}

// Refresh exchanges a stored refresh token for a new access token. The
// refresh token itself is not rotated and stays valid until its own
// expiry or an explicit revoke. An expired row is deleted on detection
// so the same token cannot be retried indefinitely.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	row, err := s.refreshTokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if row.IsExpired(time.Now()) {
		if _, err := s.refreshTokens.DeleteByToken(ctx, refreshToken); err != nil {
			return nil, err
		}
		return nil, ErrInvalidRefreshToken
	}

	accessToken, err := s.tokens.Issue(row.User.ID, row.User.Email)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		TokenType:   "Bearer",
		AccessToken: accessToken,
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
	}, nil
}

// Revoke deletes the refresh token row. A second revoke of the same
// token reports not-found again, not success.
func (s *Service) Revoke(ctx context.Context, refreshToken string) error {
	deleted, err := s.refreshTokens.DeleteByToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTokenNotFound
	}
	return nil
}

func validateRegistration(req RegisterRequest) error {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fmt.Errorf("%w: email, password and name are required", ErrValidation)
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: email must contain @", ErrValidation)
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	return nil
}

func generateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
