package auth

import (
	"context"
	"time"

	"apibasics/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepositoryInterface — persistence for refresh tokens
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByToken(ctx context.Context, tok string) (*domain.RefreshToken, error)
	DeleteByToken(ctx context.Context, tok string) (bool, error)
}

// PasswordHasher — one-way credential hashing
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// AccessTokenIssuer — signs self-contained access tokens
type AccessTokenIssuer interface {
	Issue(userID, email string) (string, error)
	TTL() time.Duration
}
