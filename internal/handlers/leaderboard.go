package handlers

import (
	"net/http"
	"strconv"

	"github.com/wpsadi/AssessKit-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetEventLeaderboard godoc
// @Summary      Event-wide standings
// @Tags         leaderboards
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Event ID"
// @Success      200 {array} services.LeaderboardEntry
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/events/{id}/leaderboard [get]
func (h *LeaderboardHandler) GetEventLeaderboard(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	entries, err := h.leaderboardService.EventLeaderboard(uint(eventID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetRoundLeaderboard godoc
// @Summary      Round-scoped standings
// @Tags         leaderboards
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Round ID"
// @Success      200 {array} services.LeaderboardEntry
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/rounds/{id}/leaderboard [get]
func (h *LeaderboardHandler) GetRoundLeaderboard(c *gin.Context) {
	roundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid round id"})
		return
	}

	entries, err := h.leaderboardService.RoundLeaderboard(uint(roundID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
