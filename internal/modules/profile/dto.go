package profile

import "time"

// UpdateRequest carries the optional profile fields. Pointer fields
// distinguish "absent" from "set to empty". Preferences must be a JSON
// object; binding rejects arrays, strings and numbers before the
// service runs.
type UpdateRequest struct {
	Name        *string        `json:"name"`
	Bio         *string        `json:"bio"`
	Preferences map[string]any `json:"preferences"`
}

type Response struct {
	UserID      string         `json:"userId"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Bio         string         `json:"bio"`
	Preferences map[string]any `json:"preferences"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
