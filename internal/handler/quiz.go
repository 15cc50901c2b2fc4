package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// QuizHandler handles quiz play requests
type QuizHandler struct {
	service domain.TriviaService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(service domain.TriviaService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// Register registers the quiz routes
func (h *QuizHandler) Register(e *echo.Echo) {
	e.POST("/quizzes", h.NextQuestion)
	e.POST("/quizzes/answers", h.CheckAnswer)
}

// QuizResponse carries the next question, or null once the quiz is exhausted
type QuizResponse struct {
	Success         bool             `json:"success"`
	CurrentQuestion *domain.Question `json:"current_question"`
}

// AnswerResponse reports whether a submitted answer was correct
type AnswerResponse struct {
	Success    bool   `json:"success"`
	QuestionID int    `json:"question_id"`
	Correct    bool   `json:"correct"`
	Answer     string `json:"answer"`
}

// NextQuestion returns a random question from the quiz category that is not
// one of the previous questions
func (h *QuizHandler) NextQuestion(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}

	question, err := h.service.NextQuizQuestion(c.Request().Context(), req.QuizCategory.ID, req.PreviousQuestions)
	if err != nil {
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}

	return c.JSON(http.StatusOK, QuizResponse{
		Success:         true,
		CurrentQuestion: question,
	})
}

// CheckAnswer compares a submitted answer with the stored one
func (h *QuizHandler) CheckAnswer(c echo.Context) error {
	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}

	if err := c.Validate(&req); err != nil {
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}

	check, err := h.service.CheckAnswer(c.Request().Context(), req.QuestionID, req.Answer)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return NewAPIError(http.StatusNotFound, err)
		}
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}

	return c.JSON(http.StatusOK, AnswerResponse{
		Success:    true,
		QuestionID: check.QuestionID,
		Correct:    check.Correct,
		Answer:     check.Answer,
	})
}
