package domain

import "time"

// RefreshToken stores long-lived opaque tokens for users.
//
// The token column holds the raw opaque string (256 bits of entropy,
// hex-encoded); lookups are exact-match and uniqueness is enforced by
// the index. The numeric row id is internal and never leaves the API.
// Expiry is checked by the auth service, not here: an expired row is
// still returned by lookups until the service deletes it.
type RefreshToken struct {
	ID int64 `json:"-" gorm:"primaryKey"`

	Token string `json:"-" gorm:"size:64;uniqueIndex;not null"`

	UserID string `json:"-" gorm:"size:36;index;not null"`
	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	ExpiresAt time.Time `json:"-" gorm:"index;not null"`
	CreatedAt time.Time `json:"-"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
