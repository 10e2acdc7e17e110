package domain

import "time"

// User is a registered account. IDs are random UUIDs so account
// identifiers cannot be enumerated. Accounts are never deleted;
// only profile fields change after registration.
type User struct {
	ID           string    `json:"userId" gorm:"primaryKey;size:36"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name"`
	Bio          string    `json:"bio"`
	Preferences  string    `json:"-" gorm:"default:'{}'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
