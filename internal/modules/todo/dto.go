package todo

type CreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateRequest uses pointers so a client can clear the description or
// flip completed back to false without touching the other fields.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
