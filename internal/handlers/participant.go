package handlers

import (
	"net/http"
	"strconv"

	"github.com/wpsadi/AssessKit-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
	progressionService *services.ProgressionService
}

func NewParticipantHandler(participantService *services.ParticipantService, progressionService *services.ProgressionService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService, progressionService: progressionService}
}

type ParticipantRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	Active      *bool  `json:"active"`
}

// CreateParticipant godoc
// @Summary      Register a participant in an event
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Event ID"
// @Param        request body ParticipantRequest true "Participant data"
// @Success      201 {object} models.Participant
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/events/{id}/participants [post]
func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	var req ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	participant, err := h.participantService.CreateParticipant(uint(eventID), organizerID, services.ParticipantInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Active:      req.Active,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// ListParticipants godoc
// @Summary      List event participants
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Event ID"
// @Success      200 {array} models.Participant
// @Router       /api/v1/events/{id}/participants [get]
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	participants, err := h.participantService.ListParticipants(uint(eventID), organizerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

// UpdateParticipant godoc
// @Summary      Update a participant (including the active flag)
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Participant ID"
// @Param        request body ParticipantRequest true "Participant data"
// @Success      200 {object} models.Participant
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/participants/{id} [put]
func (h *ParticipantHandler) UpdateParticipant(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	participantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid participant id"})
		return
	}

	var req ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	participant, err := h.participantService.UpdateParticipant(uint(participantID), organizerID, services.ParticipantInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Active:      req.Active,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, participant)
}

// DeleteParticipant godoc
// @Summary      Delete a participant and their session, responses and scores
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Participant ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/participants/{id} [delete]
func (h *ParticipantHandler) DeleteParticipant(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	participantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid participant id"})
		return
	}

	if err := h.participantService.DeleteParticipant(uint(participantID), organizerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "participant deleted"})
}

// RecalculateScore godoc
// @Summary      Rebuild a participant's round score from their responses
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Participant ID"
// @Param        roundId path int true "Round ID"
// @Success      200 {object} models.Score
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/participants/{id}/recalculate/{roundId} [post]
func (h *ParticipantHandler) RecalculateScore(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	participantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid participant id"})
		return
	}
	roundID, err := strconv.ParseUint(c.Param("roundId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid round id"})
		return
	}

	if _, err := h.participantService.GetParticipant(uint(participantID), organizerID); err != nil {
		respondServiceError(c, err)
		return
	}

	score, err := h.progressionService.RecalculateScore(uint(participantID), uint(roundID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}
