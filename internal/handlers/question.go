package handlers

import (
	"net/http"
	"strconv"

	"github.com/wpsadi/AssessKit-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

type QuestionRequest struct {
	Code             string   `json:"code" binding:"required,min=1,max=50"`
	Prompt           string   `json:"prompt" binding:"required"`
	OrderIndex       int      `json:"order_index"`
	PositivePoints   int      `json:"positive_points"`
	NegativePoints   int      `json:"negative_points"`
	TimeLimitSeconds *int     `json:"time_limit_seconds"`
	AcceptedAnswers  []string `json:"accepted_answers" binding:"required,min=1"`
}

// CreateQuestion godoc
// @Summary      Add a question to a round
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Round ID"
// @Param        request body QuestionRequest true "Question data"
// @Success      201 {object} models.Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/rounds/{id}/questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	roundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid round id"})
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.CreateQuestion(uint(roundID), organizerID, services.QuestionInput{
		Code:             req.Code,
		Prompt:           req.Prompt,
		OrderIndex:       req.OrderIndex,
		PositivePoints:   req.PositivePoints,
		NegativePoints:   req.NegativePoints,
		TimeLimitSeconds: req.TimeLimitSeconds,
		AcceptedAnswers:  req.AcceptedAnswers,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary      Update a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Param        request body QuestionRequest true "Question data"
// @Success      200 {object} models.Question
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.UpdateQuestion(uint(questionID), organizerID, services.QuestionInput{
		Code:             req.Code,
		Prompt:           req.Prompt,
		OrderIndex:       req.OrderIndex,
		PositivePoints:   req.PositivePoints,
		NegativePoints:   req.NegativePoints,
		TimeLimitSeconds: req.TimeLimitSeconds,
		AcceptedAnswers:  req.AcceptedAnswers,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	organizerID := c.GetUint("organizer_id")
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	if err := h.questionService.DeleteQuestion(uint(questionID), organizerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}
