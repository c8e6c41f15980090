package dto

// CreateUserRequest represents the payload for POST /user
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is a partial update; nil fields are left alone
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserEnvelope wraps a user with an action message
type UserEnvelope struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// UserWithEventsResponse is one element of the GET /users listing
type UserWithEventsResponse struct {
	ID         string         `json:"id"`
	Email      string         `json:"email"`
	IsApproved bool           `json:"is_approved"`
	IsAdmin    bool           `json:"is_admin"`
	Username   string         `json:"username"`
	Events     []EventSummary `json:"events"`
}
