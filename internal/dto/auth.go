package dto

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserSummary is the abbreviated account info returned by login
type UserSummary struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// LoginResponse carries the bearer token plus a user summary
type LoginResponse struct {
	Message     string      `json:"message"`
	User        UserSummary `json:"user"`
	AccessToken string      `json:"access_token"`
}

// UpdateProfileRequest is a partial self-update; nil fields are left alone
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// UpdatePasswordRequest replaces the stored password hash
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// GoogleUserInfo is the subset of the Google userinfo payload we consume
type GoogleUserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Verified bool   `json:"verified"`
}
