package handlers

import (
	"net/http"
	"strconv"

	"github.com/wpsadi/AssessKit-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type RoundHandler struct {
	roundService *services.RoundService
}

func NewRoundHandler(roundService *services.RoundService) *RoundHandler {
	return &RoundHandler{roundService: roundService}
}

type RoundRequest struct {
	Title             string `json:"title" binding:"required,min=1,max=255"`
	OrderIndex        int    `json:"order_index"`
	TimeLimitMinutes  *int   `json:"time_limit_minutes"`
	UsesEventDuration bool   `json:"uses_event_duration"`
}

// CreateRound godoc
// @Summary      Add a round to an event
// @Tags         rounds
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Event ID"
// @Param        request body RoundRequest true "Round data"
// @Success      201 {object} models.Round
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/events/{id}/rounds [post]
func (h *RoundHandler) CreateRound(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	var req RoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	round, err := h.roundService.CreateRound(uint(eventID), organizerID, services.RoundInput{
		Title:             req.Title,
		OrderIndex:        req.OrderIndex,
		TimeLimitMinutes:  req.TimeLimitMinutes,
		UsesEventDuration: req.UsesEventDuration,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, round)
}

// UpdateRound godoc
// @Summary      Update a round
// @Tags         rounds
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Round ID"
// @Param        request body RoundRequest true "Round data"
// @Success      200 {object} models.Round
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rounds/{id} [put]
func (h *RoundHandler) UpdateRound(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	roundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid round id"})
		return
	}

	var req RoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	round, err := h.roundService.UpdateRound(uint(roundID), organizerID, services.RoundInput{
		Title:             req.Title,
		OrderIndex:        req.OrderIndex,
		TimeLimitMinutes:  req.TimeLimitMinutes,
		UsesEventDuration: req.UsesEventDuration,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, round)
}

// DeleteRound godoc
// @Summary      Delete a round
// @Tags         rounds
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Round ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rounds/{id} [delete]
func (h *RoundHandler) DeleteRound(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	roundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid round id"})
		return
	}

	if err := h.roundService.DeleteRound(uint(roundID), organizerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "round deleted"})
}
