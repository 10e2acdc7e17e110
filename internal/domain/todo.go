package domain

import "time"

// Todo belongs to exactly one user. Every read and write is scoped by
// both the todo id and the owning user id; a todo that exists but
// belongs to someone else is indistinguishable from one that does not
// exist.
type Todo struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	UserID      string    `json:"userId" gorm:"size:36;index;not null"`
	User        User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
