package handlers

import (
	"net/http"

	"github.com/wpsadi/AssessKit-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type PlayHandler struct {
	authService        *services.AuthService
	progressionService *services.ProgressionService
	leaderboardService *services.LeaderboardService
}

func NewPlayHandler(authService *services.AuthService, progressionService *services.ProgressionService, leaderboardService *services.LeaderboardService) *PlayHandler {
	return &PlayHandler{
		authService:        authService,
		progressionService: progressionService,
		leaderboardService: leaderboardService,
	}
}

type PlayLoginRequest struct {
	EventCode string `json:"event_code" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

type StartQuestionRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
	RoundID    uint `json:"round_id" binding:"required"`
}

type SubmitAnswerRequest struct {
	QuestionCode string `json:"question_code" binding:"required"`
	Answer       string `json:"answer" binding:"required"`
}

// Login godoc
// @Summary      Participant login with event code and email
// @Tags         play
// @Accept       json
// @Produce      json
// @Param        request body PlayLoginRequest true "Credentials"
// @Success      200 {object} TokenResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/play/login [post]
func (h *PlayHandler) Login(c *gin.Context) {
	var req PlayLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	token, err := h.authService.ParticipantLogin(req.EventCode, req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// StartRound godoc
// @Summary      Start the first round or advance past a completed one
// @Tags         play
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} services.StartRoundResult
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/play/rounds/start [post]
func (h *PlayHandler) StartRound(c *gin.Context) {
	participantID := c.GetUint("participant_id")
	eventID := c.GetUint("event_id")

	result, err := h.progressionService.StartRound(participantID, eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CurrentQuestion godoc
// @Summary      Get the first unanswered question of the current round
// @Tags         play
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} services.CurrentQuestionResult
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/play/questions/current [get]
func (h *PlayHandler) CurrentQuestion(c *gin.Context) {
	participantID := c.GetUint("participant_id")

	result, err := h.progressionService.CurrentQuestion(participantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// StartQuestion godoc
// @Summary      Switch the session to a specific question
// @Tags         play
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body StartQuestionRequest true "Question reference"
// @Success      200 {object} services.StartQuestionResult
// @Failure      429 {object} ErrorResponse
// @Router       /api/v1/play/questions/start [post]
func (h *PlayHandler) StartQuestion(c *gin.Context) {
	participantID := c.GetUint("participant_id")

	var req StartQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.progressionService.StartQuestion(participantID, req.QuestionID, req.RoundID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SubmitAnswer godoc
// @Summary      Submit an answer for the current round's next question
// @Tags         play
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SubmitAnswerRequest true "Answer"
// @Success      200 {object} services.SubmitResult
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/play/answers [post]
func (h *PlayHandler) SubmitAnswer(c *gin.Context) {
	participantID := c.GetUint("participant_id")

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.progressionService.SubmitAnswer(participantID, req.QuestionCode, req.Answer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.leaderboardService.Invalidate(result.EventID, result.RoundID)

	c.JSON(http.StatusOK, result)
}
