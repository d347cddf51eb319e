package dto

// RegistrationRequest is the signup payload. RepeatedPassword must match
// Password; the service compares them after binding.
type RegistrationRequest struct {
	Username         string `json:"username" validate:"required,min=3,max=150"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	RepeatedPassword string `json:"repeated_password" validate:"required"`
	Type             string `json:"type" validate:"required,oneof=customer business"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both registration and login.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserID   uint   `json:"user_id"`
}
