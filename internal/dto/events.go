package dto

// CreateEventRequest represents the payload for POST /event
type CreateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	EventDate   string `json:"event_date" validate:"required"`
	UserID      string `json:"user_id" validate:"required"`
}

// UpdateEventRequest is a partial update of title/description/event_date
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	EventDate   *string `json:"event_date,omitempty"`
}

// EventResponse represents event data in API responses
type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
	UserID      string `json:"user_id"`
}

// EventEnvelope wraps an event with an action message
type EventEnvelope struct {
	Message string        `json:"message"`
	Event   EventResponse `json:"event"`
}

// EventSummary omits the owner, for listings already scoped to a user
type EventSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
}
