package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// CreateQuestionRequest represents the request to create a new question
type CreateQuestionRequest struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   *int   `json:"category" validate:"required,gt=0"`
	Difficulty *int   `json:"difficulty" validate:"required,min=1,max=5"`
}

// SearchQuestionsRequest represents a search over question text. A nil
// Search lists every question.
type SearchQuestionsRequest struct {
	Search *string `json:"search"`
}

// QuizRequest asks for the next quiz question
type QuizRequest struct {
	PreviousQuestions []int        `json:"previous_questions"`
	QuizCategory      QuizCategory `json:"quiz_category"`
}

// QuizCategory is the category a quiz draws from. ID 0 means every category.
// It decodes from a bare id or from a {"id", "type"} object.
type QuizCategory struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// UnmarshalJSON accepts 3, "3", {"id": 3} and {"id": "3", "type": "Art"}
func (q *QuizCategory) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '{' {
		id, err := parseID(data)
		if err != nil {
			return err
		}
		q.ID = id
		return nil
	}

	var raw struct {
		ID   json.RawMessage `json:"id"`
		Type string          `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	q.Type = raw.Type
	if len(raw.ID) == 0 || bytes.Equal(raw.ID, []byte("null")) {
		return nil
	}
	id, err := parseID(raw.ID)
	if err != nil {
		return err
	}
	q.ID = id
	return nil
}

// parseID decodes a JSON number or numeric string
func parseID(data []byte) (int, error) {
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		return id, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, fmt.Errorf("invalid id %s", data)
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// AnswerRequest submits an answer to a quiz question
type AnswerRequest struct {
	QuestionID int    `json:"question_id" validate:"required,gt=0"`
	Answer     string `json:"answer" validate:"required"`
}

// pageParam reads the 1-indexed page query parameter, defaulting to 1 when
// it is missing or not an integer
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return 1
	}
	return page
}

// idParam reads an integer path parameter
func idParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, c.Param(name), err)
	}
	return id, nil
}
