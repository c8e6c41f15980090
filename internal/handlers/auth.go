package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventhub-app/backend/internal/config"
	"github.com/eventhub-app/backend/internal/dto"
	"github.com/eventhub-app/backend/internal/middleware"
	"github.com/eventhub-app/backend/internal/models"
	"github.com/eventhub-app/backend/internal/store"
	"github.com/eventhub-app/backend/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	store store.Store
	cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(st store.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{store: st, cfg: cfg}
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Register handles user registration
// @Summary Register a new user
// @Description Create an account with username, email, and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	ctx := r.Context()

	// Registration only guards the email; POST /user additionally guards the
	// username. The unique index backstops both either way.
	_, err := h.store.Users().GetByEmail(ctx, req.Email)
	if err == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "User with this email already exists")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "Failed to hash password")
		return
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "Username or email already exists")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.MessageResponse{Message: "User registered successfully"})
}

// Login handles user login
// @Summary Log in
// @Description Authenticate with email and password, returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Email and password are required")
		return
	}

	user, err := h.store.Users().GetByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Email not found")
		return
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Incorrect password")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, &h.cfg.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "Failed to generate token")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		User: dto.UserSummary{
			Email:    user.Email,
			Username: user.Username,
		},
		AccessToken: token,
	})
}

// CurrentUser returns the account resolved from the bearer token
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /current_user [get]
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Missing user in context")
		return
	}

	user, err := h.store.Users().Get(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "User not found")
		return
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	})
}

// Logout revokes the presented token
// @Summary Log out
// @Description Records the token's jti in the blocklist; the token stops working immediately
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Missing user in context")
		return
	}

	if err := h.store.Tokens().Block(r.Context(), claims.ID); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}

// UpdateProfile updates the authenticated user's username and/or email
// @Summary Update own profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.UserEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user/update [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Missing user in context")
		return
	}

	var req dto.UpdateProfileRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	ctx := r.Context()
	user, err := h.store.Users().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "User not found")
		return
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	if req.Username != nil && *req.Username != user.Username {
		if taken, err := h.usernameTaken(ctx, *req.Username, user.ID); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		} else if taken {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "Username already exists")
			return
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		if taken, err := h.emailTaken(ctx, *req.Email, user.ID); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		} else if taken {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "Email already exists")
			return
		}
		user.Email = *req.Email
	}

	user.UpdatedAt = time.Now()
	if err := h.store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "Username or email already exists")
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "User not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UserEnvelope{
		Message: "User profile updated successfully",
		User: dto.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

// UpdatePassword replaces the authenticated user's password
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdatePasswordRequest true "Old and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user/updatepassword [put]
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Missing user in context")
		return
	}

	var req dto.UpdatePasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Old and new passwords are required")
		return
	}

	ctx := r.Context()
	user, err := h.store.Users().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "User not found")
		return
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Incorrect old password")
		return
	}

	passwordHash, err := hashPassword(req.NewPassword)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "Failed to hash password")
		return
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	if err := h.store.Users().Update(ctx, user); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}

// DeleteAccount removes the authenticated user's account
// @Summary Delete own account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user/delete_account [delete]
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Missing user in context")
		return
	}

	err := h.store.Users().Delete(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "User not found")
		return
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "User account deleted successfully"})
}

// usernameTaken reports whether another user already holds the username.
func (h *AuthHandler) usernameTaken(ctx context.Context, username string, self uuid.UUID) (bool, error) {
	existing, err := h.store.Users().GetByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ID != self, nil
}

func (h *AuthHandler) emailTaken(ctx context.Context, email string, self uuid.UUID) (bool, error) {
	existing, err := h.store.Users().GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ID != self, nil
}
