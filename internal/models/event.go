package models

import (
	"time"

	"github.com/google/uuid"
)

// Event belongs to exactly one user. EventDate is kept as the string the
// client sent; there is no FK constraint, so events outlive a deleted owner.
type Event struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	EventDate   string    `json:"event_date" db:"event_date"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
