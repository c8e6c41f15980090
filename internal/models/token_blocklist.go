package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenBlocklistEntry marks a JWT id (jti) as revoked. Entries are written on
// logout and checked by the auth middleware until the token expires anyway.
type TokenBlocklistEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	JTI       string    `json:"jti" db:"jti"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
