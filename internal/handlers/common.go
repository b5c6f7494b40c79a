package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/wpsadi/AssessKit-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// respondServiceError maps domain errors to status codes in one place.
// Precondition errors carry their structured detail alongside the message so
// clients can self-correct without guessing.
func respondServiceError(c *gin.Context, err error) {
	var roundNotComplete *services.RoundNotCompleteError
	if errors.As(err, &roundNotComplete) {
		c.JSON(http.StatusConflict, gin.H{
			"error":    err.Error(),
			"round_id": roundNotComplete.RoundID,
			"answered": roundNotComplete.Answered,
			"total":    roundNotComplete.Total,
		})
		return
	}

	var outOfOrder *services.OutOfOrderError
	if errors.As(err, &outOfOrder) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     err.Error(),
			"expected":  outOfOrder.Expected,
			"submitted": outOfOrder.Submitted,
		})
		return
	}

	var timeExpired *services.TimeExpiredError
	if errors.As(err, &timeExpired) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":                err.Error(),
			"elapsed_seconds":      timeExpired.ElapsedSeconds,
			"effective_time_limit": timeExpired.EffectiveLimitSeconds,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrAlreadyAnswered):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNoActiveSession),
		errors.Is(err, services.ErrQuestionNotInActiveRound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrRoundNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrParticipantNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrParticipantInactive):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInternalState):
		log.Printf("internal consistency error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}
