package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/validation"
)

// Pinger checks that the storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

var _ domain.TriviaService = (*TriviaService)(nil)

// TriviaService implements the domain.TriviaService interface
type TriviaService struct {
	categoryRepo domain.CategoryRepository
	questionRepo domain.QuestionRepository
	pinger       Pinger
	events       domain.EventPublisher
	perPage      int
}

// NewTriviaService creates a new trivia service. events may be nil.
func NewTriviaService(
	categoryRepo domain.CategoryRepository,
	questionRepo domain.QuestionRepository,
	pinger Pinger,
	events domain.EventPublisher,
	perPage int,
) *TriviaService {
	if perPage < 1 {
		perPage = DefaultQuestionsPerPage
	}
	return &TriviaService{
		categoryRepo: categoryRepo,
		questionRepo: questionRepo,
		pinger:       pinger,
		events:       events,
		perPage:      perPage,
	}
}

// DefaultQuestionsPerPage is used when no positive page size is configured
const DefaultQuestionsPerPage = 10

// ListCategories returns every category
func (s *TriviaService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// ListQuestions returns one page of all questions. An empty page is ErrPageNotFound.
func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*domain.QuestionPage, error) {
	result, err := s.page(ctx, domain.QuestionFilter{}, page)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return nil, domain.ErrPageNotFound
	}
	return result, nil
}

// ListQuestionsByCategory returns one page of a category's questions.
// An empty page is ErrPageNotFound.
func (s *TriviaService) ListQuestionsByCategory(ctx context.Context, categoryID, page int) (*domain.QuestionPage, error) {
	if categoryID < 1 {
		return nil, domain.ErrCategoryNotFound
	}
	result, err := s.page(ctx, domain.QuestionFilter{CategoryID: categoryID}, page)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return nil, domain.ErrPageNotFound
	}
	return result, nil
}

// SearchQuestions returns one page of questions whose text contains search,
// ignoring case. A nil search lists every question. Pages past the end are empty.
func (s *TriviaService) SearchQuestions(ctx context.Context, search *string, page int) (*domain.QuestionPage, error) {
	var filter domain.QuestionFilter
	if search != nil {
		filter.Search = *search
	}
	return s.page(ctx, filter, page)
}

// CreateQuestion validates and persists a new question
func (s *TriviaService) CreateQuestion(ctx context.Context, q domain.NewQuestion) (*domain.Question, error) {
	question := &domain.Question{
		Question:   strings.TrimSpace(q.Question),
		Answer:     strings.TrimSpace(q.Answer),
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
	switch {
	case question.Question == "":
		return nil, fmt.Errorf("question text is empty: %w", domain.ErrInvalidInput)
	case question.Answer == "":
		return nil, fmt.Errorf("answer is empty: %w", domain.ErrInvalidInput)
	case question.Category < 1:
		return nil, fmt.Errorf("category %d: %w", question.Category, domain.ErrInvalidCategory)
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}

	s.publish(domain.EventQuestionCreated, question)
	return question, nil
}

// DeleteQuestion deletes a question, returning ErrQuestionNotFound if it does not exist
func (s *TriviaService) DeleteQuestion(ctx context.Context, id int) error {
	if _, err := s.questionRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(domain.EventQuestionDeleted, map[string]int{"id": id})
	return nil
}

// NextQuizQuestion picks a random question from categoryID (0 for any
// category) that is not in previous. It returns nil, nil once every
// eligible question has been asked.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, categoryID int, previous []int) (*domain.Question, error) {
	if categoryID < 0 {
		return nil, fmt.Errorf("quiz category %d: %w", categoryID, domain.ErrInvalidInput)
	}

	question, err := s.questionRepo.GetRandom(ctx, domain.QuestionFilter{
		CategoryID: categoryID,
		Exclude:    previous,
	})
	if errors.Is(err, domain.ErrQuestionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return question, nil
}

// CheckAnswer compares a submitted answer against the stored one
func (s *TriviaService) CheckAnswer(ctx context.Context, questionID int, answer string) (*domain.AnswerCheck, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	return &domain.AnswerCheck{
		QuestionID: question.ID,
		Correct:    validation.IsSimilarAnswer(answer, question.Answer),
		Answer:     question.Answer,
	}, nil
}

// Ping checks the storage backend
func (s *TriviaService) Ping(ctx context.Context) error {
	if s.pinger == nil {
		return nil
	}
	return s.pinger.Ping(ctx)
}

func (s *TriviaService) page(ctx context.Context, filter domain.QuestionFilter, page int) (*domain.QuestionPage, error) {
	if page < 1 || page > math.MaxInt32/s.perPage {
		return nil, domain.ErrPageNotFound
	}

	questions, err := s.questionRepo.List(ctx, filter, s.perPage, (page-1)*s.perPage)
	if err != nil {
		return nil, err
	}

	total, err := s.questionRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &domain.QuestionPage{
		Questions: questions,
		Total:     total,
		Page:      page,
	}, nil
}

func (s *TriviaService) publish(eventType string, payload any) {
	if s.events != nil {
		s.events.Publish(eventType, payload)
	}
}
