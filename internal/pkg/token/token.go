package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TypeAccess is the discriminator carried by every access token. Verify
// rejects any other value, so a future token class signed with the same
// secret cannot be replayed against protected endpoints.
const TypeAccess = "access"

var ErrInvalidToken = errors.New("invalid token")

// Codec issues and verifies self-contained access tokens. Validity is
// decided purely by signature and expiry; there is no server-side lookup.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwtlib.RegisteredClaims
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL is the configured access token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

func (c *Codec) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: TypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(c.ttl)),
		},
	}

	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify returns the claims only for a well-formed, unexpired token
// signed with this codec's secret and carrying the access discriminator.
// Every failure collapses to ErrInvalidToken: the caller never learns
// which check an attacker-controlled token failed.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	tok, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != TypeAccess {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
