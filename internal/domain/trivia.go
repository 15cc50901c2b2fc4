package domain

import "context"

// QuestionPage is one page of an id-ordered question listing
type QuestionPage struct {
	Questions []*Question
	Total     int // rows matching the query across all pages
	Page      int
}

// NewQuestion holds the fields of a question to be created
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// AnswerCheck is the outcome of comparing a submitted answer
type AnswerCheck struct {
	QuestionID int
	Correct    bool
	Answer     string
}

// TriviaService defines the operations exposed over HTTP
type TriviaService interface {
	// Categories
	ListCategories(ctx context.Context) ([]*Category, error)

	// Questions
	ListQuestions(ctx context.Context, page int) (*QuestionPage, error)
	ListQuestionsByCategory(ctx context.Context, categoryID, page int) (*QuestionPage, error)
	SearchQuestions(ctx context.Context, search *string, page int) (*QuestionPage, error)
	CreateQuestion(ctx context.Context, q NewQuestion) (*Question, error)
	DeleteQuestion(ctx context.Context, id int) error

	// Quiz
	NextQuizQuestion(ctx context.Context, categoryID int, previous []int) (*Question, error)
	CheckAnswer(ctx context.Context, questionID int, answer string) (*AnswerCheck, error)

	// Health
	Ping(ctx context.Context) error
}

// EventPublisher receives notifications about question changes
type EventPublisher interface {
	Publish(eventType string, payload any)
}

// Question event types
const (
	EventQuestionCreated = "question_created"
	EventQuestionDeleted = "question_deleted"
)
