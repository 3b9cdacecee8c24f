package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tennis-rally-api/internal/dto"
	"tennis-rally-api/internal/response"
	"tennis-rally-api/internal/service"
)

type QuizHandler struct {
	quizService service.QuizService
	logger      *zap.Logger
}

func NewQuizHandler(quizService service.QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		logger:      logger,
	}
}

// GetQuiz godoc
// @Summary      Skill questionnaire
// @Description  Questions with their choices, plus the caller's latest result
// @Tags         quiz
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.QuizResponse}
// @Security     BearerAuth
// @Router       /quiz [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	result, err := h.quizService.GetQuiz(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// SubmitQuiz godoc
// @Summary      Submit questionnaire
// @Description  Scores every answer and overwrites the caller's skill level
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        request body dto.QuizSubmitRequest true "Answers keyed by question"
// @Success      200 {object} response.SuccessResponse{data=dto.QuizResultResponse}
// @Failure      400 {object} response.ErrorResponse "Missing or invalid answer"
// @Security     BearerAuth
// @Router       /quiz [post]
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.QuizSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBindError(c, err)
		return
	}

	result, err := h.quizService.Submit(c.Request.Context(), auth.UserID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
