package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// QuestionHandler handles category and question HTTP requests
type QuestionHandler struct {
	service domain.TriviaService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(service domain.TriviaService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

// Register registers the category and question routes. write is applied to
// routes that may modify questions.
func (h *QuestionHandler) Register(e *echo.Echo, write ...echo.MiddlewareFunc) {
	e.GET("/categories", h.ListCategories)
	e.GET("/categories/:category_id/questions", h.ListQuestionsByCategory)

	e.GET("/questions", h.ListQuestions)
	e.POST("/questions", h.PostQuestions, write...)
	e.POST("/questions/create", h.CreateQuestion, write...)
	e.POST("/questions/search", h.SearchQuestions)
	e.DELETE("/questions/:question_id", h.DeleteQuestion, write...)
}

// CategoriesResponse lists every category
type CategoriesResponse struct {
	Success    bool               `json:"success"`
	Categories []*domain.Category `json:"categories"`
}

// QuestionsResponse is one page of the full question listing
type QuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []*domain.Question `json:"questions"`
	TotalQuestions  int                `json:"totalQuestions"`
	Categories      []*domain.Category `json:"categories"`
	CurrentCategory *int               `json:"current_category"`
}

// CategoryQuestionsResponse is one page of a category's questions
type CategoryQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []*domain.Question `json:"questions"`
	CurrentCategory int                `json:"current_category"`
	TotalQuestions  int                `json:"totalQuestions"`
}

// SearchResponse is one page of search results
type SearchResponse struct {
	Success        bool               `json:"success"`
	Questions      []*domain.Question `json:"questions"`
	TotalQuestions int                `json:"totalQuestions"`
}

// CreatedResponse reports a newly created question
type CreatedResponse struct {
	Success  bool             `json:"success"`
	Created  int              `json:"created"`
	Question *domain.Question `json:"question"`
}

// DeletedResponse reports a deleted question id
type DeletedResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

// ListCategories returns every category
func (h *QuestionHandler) ListCategories(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}

	return c.JSON(http.StatusOK, CategoriesResponse{
		Success:    true,
		Categories: categories,
	})
}

// ListQuestions returns a page of questions with the category list
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	ctx := c.Request().Context()

	page, err := h.service.ListQuestions(ctx, pageParam(c))
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			return NewAPIError(http.StatusNotFound, err)
		}
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}

	categories, err := h.service.ListCategories(ctx)
	if err != nil {
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}

	return c.JSON(http.StatusOK, QuestionsResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.Total,
		Categories:      categories,
		CurrentCategory: nil,
	})
}

// ListQuestionsByCategory returns a page of one category's questions
func (h *QuestionHandler) ListQuestionsByCategory(c echo.Context) error {
	categoryID, err := idParam(c, "category_id")
	if err != nil {
		return NewAPIError(http.StatusNotFound, err)
	}

	page, err := h.service.ListQuestionsByCategory(c.Request().Context(), categoryID, pageParam(c))
	if err != nil {
		return NewAPIError(http.StatusNotFound, err)
	}

	return c.JSON(http.StatusOK, CategoryQuestionsResponse{
		Success:         true,
		Questions:       page.Questions,
		CurrentCategory: categoryID,
		TotalQuestions:  page.Total,
	})
}

// PostQuestions serves the shared POST /questions route. A body with a
// "search" key is a search; any other body creates a question.
func (h *QuestionHandler) PostQuestions(c echo.Context) error {
	req := c.Request()
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	var keys map[string]json.RawMessage
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &keys); err != nil {
			return NewAPIError(http.StatusUnprocessableEntity, err)
		}
	}

	if _, ok := keys["search"]; ok {
		return h.SearchQuestions(c)
	}
	return h.CreateQuestion(c)
}

// CreateQuestion creates a new question. Every failure maps to 405.
func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	var req CreateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return NewAPIError(http.StatusMethodNotAllowed, err)
	}

	if err := c.Validate(&req); err != nil {
		return NewAPIError(http.StatusMethodNotAllowed, err)
	}

	question, err := h.service.CreateQuestion(c.Request().Context(), domain.NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   *req.Category,
		Difficulty: *req.Difficulty,
	})
	if err != nil {
		return NewAPIError(http.StatusMethodNotAllowed, err)
	}

	return c.JSON(http.StatusOK, CreatedResponse{
		Success:  true,
		Created:  question.ID,
		Question: question,
	})
}

// SearchQuestions returns a page of questions containing the search term
func (h *QuestionHandler) SearchQuestions(c echo.Context) error {
	var req SearchQuestionsRequest
	if err := c.Bind(&req); err != nil {
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}

	page, err := h.service.SearchQuestions(c.Request().Context(), req.Search, pageParam(c))
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			return NewAPIError(http.StatusNotFound, err)
		}
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
	})
}

// DeleteQuestion deletes a question by id
func (h *QuestionHandler) DeleteQuestion(c echo.Context) error {
	id, err := idParam(c, "question_id")
	if err != nil {
		return NewAPIError(http.StatusNotFound, err)
	}

	if err := h.service.DeleteQuestion(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return NewAPIError(http.StatusNotFound, err)
		}
		return NewAPIError(http.StatusUnprocessableEntity, err)
	}

	return c.JSON(http.StatusOK, DeletedResponse{
		Success: true,
		Deleted: id,
	})
}
