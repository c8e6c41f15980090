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

// EventsHandler manages the event CRUD endpoints
type EventsHandler struct {
	store store.Store
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(st store.Store) *EventsHandler {
	return &EventsHandler{store: st}
}

func eventIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Event not found")
		return uuid.Nil, false
	}
	return id, true
}

func eventResponse(e *models.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.EventDate,
		UserID:      e.UserID.String(),
	}
}

// Create handles POST /event
// @Summary Create an event
// @Description The user_id must reference an existing user
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event payload"
// @Success 201 {object} dto.EventEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /event [post]
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "user_id must be a valid id")
		return
	}

	ctx := r.Context()
	if _, err := h.store.Users().Get(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "User not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	now := time.Now()
	event := &models.Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.Events().Create(ctx, event); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.EventEnvelope{
		Message: "Event created",
		Event:   eventResponse(event),
	})
}

// Get handles GET /event/{id}
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /event/{id} [get]
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDParam(w, r)
	if !ok {
		return
	}

	event, err := h.store.Events().Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Event not found")
		return
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, eventResponse(event))
}

// ListByUser handles GET /user/{id}/events. An empty result is reported as
// 404, not an empty list; clients depend on that.
// @Summary List a user's events
// @Tags events
// @Produce json
// @Param id path string true "User id"
// @Success 200 {array} dto.EventSummary
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user/{id}/events [get]
func (h *EventsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "No events found for this user")
		return
	}

	events, err := h.store.Events().ListByUser(r.Context(), userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	if len(events) == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "No events found for this user")
		return
	}

	out := make([]dto.EventSummary, 0, len(events))
	for _, e := range events {
		out = append(out, dto.EventSummary{
			ID:          e.ID.String(),
			Title:       e.Title,
			Description: e.Description,
			EventDate:   e.EventDate,
		})
	}

	utils.WriteJSONResponse(w, http.StatusOK, out)
}

// Update handles PUT /event/{id}
// @Summary Update an event
// @Description Partial update of title, description, and event_date
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event id"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} dto.EventEnvelope
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /event/{id} [put]
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	ctx := r.Context()
	event, err := h.store.Events().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Event not found")
		return
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	if req.Title != nil && *req.Title != "" {
		event.Title = *req.Title
	}
	if req.Description != nil && *req.Description != "" {
		event.Description = *req.Description
	}
	if req.EventDate != nil && *req.EventDate != "" {
		event.EventDate = *req.EventDate
	}

	event.UpdatedAt = time.Now()
	if err := h.store.Events().Update(ctx, event); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Event not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.EventEnvelope{
		Message: "Event updated",
		Event:   eventResponse(event),
	})
}

// Delete handles DELETE /event/{id}
// @Summary Delete an event
// @Tags events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /event/{id} [delete]
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDParam(w, r)
	if !ok {
		return
	}

	err := h.store.Events().Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Event not found")
		return
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Event deleted"})
}
