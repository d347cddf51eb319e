package dto

import "time"

// ProfileResponse is the full profile detail payload. Optional text fields
// render as empty strings rather than null.
type ProfileResponse struct {
	User         uint      `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         *string   `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileListItem is the slimmer shape used by the business and customer
// list endpoints. Email and creation time stay private to the owner view.
type ProfileListItem struct {
	User         uint    `json:"user"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	File         *string `json:"file"`
	Location     string  `json:"location"`
	Tel          string  `json:"tel"`
	Description  string  `json:"description"`
	WorkingHours string  `json:"working_hours"`
	Type         string  `json:"type"`
}

// UpdateProfileRequest carries a partial update. Nil fields are left
// untouched. Email, first and last name live on the user record; the rest
// belongs to the profile. Username and type are not updatable.
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,max=150"`
	LastName     *string `json:"last_name" validate:"omitempty,max=150"`
	Email        *string `json:"email" validate:"omitempty,email"`
	File         *string `json:"file"`
	Location     *string `json:"location" validate:"omitempty,max=255"`
	Tel          *string `json:"tel" validate:"omitempty,max=50"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours" validate:"omitempty,max=100"`
}
