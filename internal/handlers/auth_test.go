package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub-app/backend/internal/dto"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodPost, "/register", "", dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp dto.MessageResponse
	env.decode(rr, &resp)
	assert.Equal(t, "User registered successfully", resp.Message)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodPost, "/register", "", dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, env.errorMessage(rr), "password is required")

	rr = env.do(http.MethodPost, "/register", "", dto.RegisterRequest{
		Username: "alice",
		Email:    "not-an-email",
		Password: "s3cret",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, env.errorMessage(rr), "email must be a valid email address")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "s3cret")

	rr := env.do(http.MethodPost, "/register", "", dto.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "other",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "User with this email already exists", env.errorMessage(rr))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "s3cret")

	rr := env.do(http.MethodPost, "/login", "", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dto.LoginResponse
	env.decode(rr, &resp)
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodPost, "/login", "", dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Email not found", env.errorMessage(rr))
}

func TestLoginIncorrectPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "s3cret")

	rr := env.do(http.MethodPost, "/login", "", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Incorrect password", env.errorMessage(rr))
}

func TestCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "s3cret")
	token := env.login("alice@example.com", "s3cret")

	rr := env.do(http.MethodGet, "/current_user", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dto.UserResponse
	env.decode(rr, &resp)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.NotEmpty(t, resp.ID)
}

func TestCurrentUserRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodGet, "/current_user", "", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Authorization header required", env.errorMessage(rr))

	rr = env.do(http.MethodGet, "/current_user", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid or expired token", env.errorMessage(rr))
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "s3cret")
	token := env.login("alice@example.com", "s3cret")

	rr := env.do(http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dto.MessageResponse
	env.decode(rr, &resp)
	assert.Equal(t, "Successfully logged out", resp.Message)

	// The same token must stop working immediately.
	rr = env.do(http.MethodGet, "/current_user", token, nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Token has been revoked", env.errorMessage(rr))

	// A fresh login issues a new jti, so it is unaffected.
	token = env.login("alice@example.com", "s3cret")
	rr = env.do(http.MethodGet, "/current_user", token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "s3cret")
	token := env.login("alice@example.com", "s3cret")

	username := "alice_v2"
	rr := env.do(http.MethodPut, "/user/update", token, dto.UpdateProfileRequest{
		Username: &username,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dto.UserEnvelope
	env.decode(rr, &resp)
	assert.Equal(t, "User profile updated successfully", resp.Message)
	assert.Equal(t, "alice_v2", resp.User.Username)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestUpdateProfileConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "s3cret")
	env.register("bob", "bob@example.com", "s3cret")
	token := env.login("alice@example.com", "s3cret")

	username := "bob"
	rr := env.do(http.MethodPut, "/user/update", token, dto.UpdateProfileRequest{
		Username: &username,
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Username already exists", env.errorMessage(rr))

	email := "bob@example.com"
	rr = env.do(http.MethodPut, "/user/update", token, dto.UpdateProfileRequest{
		Email: &email,
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email already exists", env.errorMessage(rr))

	// Re-submitting your own current values is not a conflict.
	own := "alice"
	rr = env.do(http.MethodPut, "/user/update", token, dto.UpdateProfileRequest{
		Username: &own,
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "s3cret")
	token := env.login("alice@example.com", "s3cret")

	rr := env.do(http.MethodPut, "/user/updatepassword", token, dto.UpdatePasswordRequest{
		OldPassword: "s3cret",
		NewPassword: "n3w-s3cret",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dto.MessageResponse
	env.decode(rr, &resp)
	assert.Equal(t, "Password updated successfully", resp.Message)

	// Old credentials stop working, new ones take over.
	rr = env.do(http.MethodPost, "/login", "", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	env.login("alice@example.com", "n3w-s3cret")
}

func TestUpdatePasswordIncorrectOld(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "s3cret")
	token := env.login("alice@example.com", "s3cret")

	rr := env.do(http.MethodPut, "/user/updatepassword", token, dto.UpdatePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "n3w-s3cret",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Incorrect old password", env.errorMessage(rr))
}

func TestDeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "s3cret")
	token := env.login("alice@example.com", "s3cret")

	rr := env.do(http.MethodDelete, "/user/delete_account", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dto.MessageResponse
	env.decode(rr, &resp)
	assert.Equal(t, "User account deleted successfully", resp.Message)

	// The token still validates but the account is gone.
	rr = env.do(http.MethodGet, "/current_user", token, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User not found", env.errorMessage(rr))
}
