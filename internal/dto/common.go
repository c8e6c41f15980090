package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is the body for endpoints that only acknowledge
type MessageResponse struct {
	Message string `json:"message"`
}
