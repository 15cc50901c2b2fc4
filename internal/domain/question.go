package domain

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrPageNotFound     = errors.New("page not found")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidInput     = errors.New("invalid input")
)

// Question represents a trivia question
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionFilter narrows a question query. Zero values match everything.
type QuestionFilter struct {
	CategoryID int    // 0 means every category
	Search     string // case-insensitive substring of the question text
	Exclude    []int  // question ids to leave out
}

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List retrieves questions matching filter ordered by id
	List(ctx context.Context, filter QuestionFilter, limit, offset int) ([]*Question, error)

	// Count returns the number of questions matching filter
	Count(ctx context.Context, filter QuestionFilter) (int, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// GetRandom retrieves one random question matching filter
	GetRandom(ctx context.Context, filter QuestionFilter) (*Question, error)

	// Create persists a new question and assigns its ID
	Create(ctx context.Context, question *Question) error

	// Delete deletes a question
	Delete(ctx context.Context, id int) error
}
