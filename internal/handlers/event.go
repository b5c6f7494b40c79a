package handlers

import (
	"net/http"
	"strconv"

	"github.com/wpsadi/AssessKit-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type EventRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=255"`
	DurationMinutes int    `json:"duration_minutes"`
}

// CreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body EventRequest true "Event data"
// @Success      201 {object} models.Event
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	event, err := h.eventService.CreateEvent(organizerID, services.EventInput{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListEvents godoc
// @Summary      List organizer events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Event
// @Router       /api/v1/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")

	events, err := h.eventService.ListEvents(organizerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary      Get an event with its rounds and questions
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Event ID"
// @Success      200 {object} models.Event
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	event, err := h.eventService.GetEvent(uint(eventID), organizerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Event ID"
// @Param        request body EventRequest true "Event data"
// @Success      200 {object} models.Event
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	event, err := h.eventService.UpdateEvent(uint(eventID), organizerID, services.EventInput{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary      Delete an event and everything under it
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Event ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	if err := h.eventService.DeleteEvent(uint(eventID), organizerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "event deleted"})
}
