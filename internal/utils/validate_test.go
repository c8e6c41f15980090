package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(sampleRequest{Username: "alice", Email: "alice@example.com"})
	assert.NoError(t, err)
}

func TestValidateStructMessages(t *testing.T) {
	err := ValidateStruct(sampleRequest{})
	assert.EqualError(t, err, "username is required; email is required")

	err = ValidateStruct(sampleRequest{Username: "alice", Email: "nope"})
	assert.EqualError(t, err, "email must be a valid email address")
}

type taggedRequest struct {
	EventDate   string `json:"event_date" validate:"required"`
	OldPassword string `json:"old_password" validate:"required"`
	Internal    string `json:"-" validate:"required"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	// Snake_case wire names must survive into the message; fields hidden
	// from JSON fall back to the Go name.
	err := ValidateStruct(taggedRequest{})
	assert.EqualError(t, err,
		"event_date is required; old_password is required; internal is required")
}
