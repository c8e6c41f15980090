package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/eventhub-app/backend/internal/dto"
	"github.com/eventhub-app/backend/internal/models"
	"github.com/eventhub-app/backend/internal/store"
	"github.com/eventhub-app/backend/internal/utils"
)

// UsersHandler manages the user CRUD endpoints
type UsersHandler struct {
	store store.Store
}

// NewUsersHandler creates a new UsersHandler
func NewUsersHandler(st store.Store) *UsersHandler {
	return &UsersHandler{store: st}
}

// userIDParam parses the {id} path parameter. A malformed id behaves like a
// missing record.
func userIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "User not found")
		return uuid.Nil, false
	}
	return id, true
}

// List returns every user with their nested events
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} dto.UserWithEventsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [get]
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users, err := h.store.Users().List(ctx)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	out := make([]dto.UserWithEventsResponse, 0, len(users))
	for _, u := range users {
		events, err := h.store.Events().ListByUser(ctx, u.ID)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}

		summaries := make([]dto.EventSummary, 0, len(events))
		for _, e := range events {
			summaries = append(summaries, dto.EventSummary{
				ID:          e.ID.String(),
				Title:       e.Title,
				Description: e.Description,
				EventDate:   e.EventDate,
			})
		}

		out = append(out, dto.UserWithEventsResponse{
			ID:         u.ID.String(),
			Email:      u.Email,
			IsApproved: u.IsApproved,
			IsAdmin:    u.IsAdmin,
			Username:   u.Username,
			Events:     summaries,
		})
	}

	utils.WriteJSONResponse(w, http.StatusOK, out)
}

// Create handles POST /user
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User payload"
// @Success 201 {object} dto.UserEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user [post]
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	ctx := r.Context()

	if _, err := h.store.Users().GetByUsername(ctx, req.Username); err == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "Username already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	if _, err := h.store.Users().GetByEmail(ctx, req.Email); err == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "Email already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
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

	utils.WriteJSONResponse(w, http.StatusCreated, dto.UserEnvelope{
		Message: "User created",
		User: dto.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

// Get handles GET /user/{id}
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user/{id} [get]
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	user, err := h.store.Users().Get(r.Context(), id)
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

// Update handles PUT /user/{id}
// @Summary Update a user
// @Description Partial update; uniqueness is checked against all other users
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user/{id} [put]
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	ctx := r.Context()
	user, err := h.store.Users().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "User not found")
		return
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	if req.Username != nil && *req.Username != user.Username {
		existing, err := h.store.Users().GetByUsername(ctx, *req.Username)
		if err == nil && existing.ID != user.ID {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "Username already exists")
			return
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := h.store.Users().GetByEmail(ctx, *req.Email)
		if err == nil && existing.ID != user.ID {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "Email already exists")
			return
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		user.Email = *req.Email
	}

	if req.Password != nil && *req.Password != "" {
		passwordHash, err := hashPassword(*req.Password)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "Failed to hash password")
			return
		}
		user.PasswordHash = passwordHash
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
		Message: "User updated",
		User: dto.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

// Delete handles DELETE /user/{id}. Events owned by the user are left in
// place (no cascade).
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user/{id} [delete]
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	err := h.store.Users().Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "User not found")
		return
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "User deleted"})
}
