package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

type fakeCategoryRepo struct {
	categories []*domain.Category
	err        error
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	return r.categories, r.err
}

// fakeQuestionRepo keeps questions in id order and applies filters like the SQL repository
type fakeQuestionRepo struct {
	questions []*domain.Question
	nextID    int
	err       error
}

func newFakeQuestionRepo(n int, categoryOf func(i int) int) *fakeQuestionRepo {
	r := &fakeQuestionRepo{nextID: 1}
	for i := 0; i < n; i++ {
		r.questions = append(r.questions, &domain.Question{
			ID:         r.nextID,
			Question:   fmt.Sprintf("Question number %d?", r.nextID),
			Answer:     fmt.Sprintf("Answer %d", r.nextID),
			Category:   categoryOf(i),
			Difficulty: 1 + i%5,
		})
		r.nextID++
	}
	return r
}

func (r *fakeQuestionRepo) match(filter domain.QuestionFilter) []*domain.Question {
	var out []*domain.Question
	for _, q := range r.questions {
		if filter.CategoryID != 0 && q.Category != filter.CategoryID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(q.Question), strings.ToLower(filter.Search)) {
			continue
		}
		if slices.Contains(filter.Exclude, q.ID) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func (r *fakeQuestionRepo) List(ctx context.Context, filter domain.QuestionFilter, limit, offset int) ([]*domain.Question, error) {
	if r.err != nil {
		return nil, r.err
	}
	matched := r.match(filter)
	if offset >= len(matched) {
		return []*domain.Question{}, nil
	}
	return matched[offset:min(offset+limit, len(matched))], nil
}

func (r *fakeQuestionRepo) Count(ctx context.Context, filter domain.QuestionFilter) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return len(r.match(filter)), nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, q := range r.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, domain.ErrQuestionNotFound
}

func (r *fakeQuestionRepo) GetRandom(ctx context.Context, filter domain.QuestionFilter) (*domain.Question, error) {
	if r.err != nil {
		return nil, r.err
	}
	matched := r.match(filter)
	if len(matched) == 0 {
		return nil, domain.ErrQuestionNotFound
	}
	return matched[len(matched)/2], nil
}

func (r *fakeQuestionRepo) Create(ctx context.Context, q *domain.Question) error {
	if r.err != nil {
		return r.err
	}
	q.ID = r.nextID
	r.nextID++
	r.questions = append(r.questions, q)
	return nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, id int) error {
	if r.err != nil {
		return r.err
	}
	for i, q := range r.questions {
		if q.ID == id {
			r.questions = slices.Delete(r.questions, i, i+1)
			return nil
		}
	}
	return domain.ErrQuestionNotFound
}

type recordedEvent struct {
	eventType string
	payload   any
}

type fakePublisher struct {
	events []recordedEvent
}

func (p *fakePublisher) Publish(eventType string, payload any) {
	p.events = append(p.events, recordedEvent{eventType, payload})
}

func newTestService(repo *fakeQuestionRepo, perPage int) (*TriviaService, *fakePublisher) {
	events := &fakePublisher{}
	categories := &fakeCategoryRepo{categories: []*domain.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}}
	return NewTriviaService(categories, repo, nil, events, perPage), events
}

func TestListQuestionsPages(t *testing.T) {
	repo := newFakeQuestionRepo(23, func(i int) int { return 1 + i%2 })
	svc, _ := newTestService(repo, 10)
	ctx := context.Background()

	for page, want := range map[int]int{1: 10, 2: 10, 3: 3} {
		result, err := svc.ListQuestions(ctx, page)
		require.NoError(t, err, "page %d", page)
		assert.Len(t, result.Questions, want, "page %d", page)
		assert.Equal(t, 23, result.Total)
		assert.Equal(t, (page-1)*10+1, result.Questions[0].ID)
	}

	for _, page := range []int{4, 100, 0, -1} {
		_, err := svc.ListQuestions(ctx, page)
		assert.ErrorIs(t, err, domain.ErrPageNotFound, "page %d", page)
	}
}

func TestListQuestionsPageSizeIsConfigurable(t *testing.T) {
	repo := newFakeQuestionRepo(7, func(int) int { return 1 })
	svc, _ := newTestService(repo, 3)

	result, err := svc.ListQuestions(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, result.Questions, 1)
	assert.Equal(t, 7, result.Questions[0].ID)
}

func TestListQuestionsEmptyTable(t *testing.T) {
	svc, _ := newTestService(newFakeQuestionRepo(0, nil), 10)

	_, err := svc.ListQuestions(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestListQuestionsRepositoryError(t *testing.T) {
	repo := newFakeQuestionRepo(3, func(int) int { return 1 })
	repo.err = errors.New("connection refused")
	svc, _ := newTestService(repo, 10)

	_, err := svc.ListQuestions(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPageNotFound)
}

func TestListQuestionsByCategory(t *testing.T) {
	repo := newFakeQuestionRepo(25, func(i int) int {
		if i < 12 {
			return 4
		}
		return 1
	})
	svc, _ := newTestService(repo, 10)
	ctx := context.Background()

	result, err := svc.ListQuestionsByCategory(ctx, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, 12, result.Total)
	require.Len(t, result.Questions, 2)
	for _, q := range result.Questions {
		assert.Equal(t, 4, q.Category)
	}

	_, err = svc.ListQuestionsByCategory(ctx, 100, 1)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)

	_, err = svc.ListQuestionsByCategory(ctx, 0, 1)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestSearchQuestions(t *testing.T) {
	repo := newFakeQuestionRepo(3, func(int) int { return 1 })
	repo.questions[1].Question = "What was the title of the 1990 fantasy film?"
	svc, _ := newTestService(repo, 10)
	ctx := context.Background()

	for _, term := range []string{"title", "TITLE", "TiTlE"} {
		result, err := svc.SearchQuestions(ctx, &term, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Total, term)
		require.Len(t, result.Questions, 1, term)
		assert.Equal(t, 2, result.Questions[0].ID)
	}

	none := "udacity"
	result, err := svc.SearchQuestions(ctx, &none, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Questions)

	all, err := svc.SearchQuestions(ctx, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Len(t, all.Questions, 3)

	past, err := svc.SearchQuestions(ctx, nil, 5)
	require.NoError(t, err)
	assert.Empty(t, past.Questions)
	assert.Equal(t, 3, past.Total)

	_, err = svc.SearchQuestions(ctx, nil, 0)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)

	_, err = svc.SearchQuestions(ctx, &none, -1)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestCreateQuestion(t *testing.T) {
	repo := newFakeQuestionRepo(2, func(int) int { return 1 })
	svc, events := newTestService(repo, 10)
	ctx := context.Background()

	created, err := svc.CreateQuestion(ctx, domain.NewQuestion{
		Question:   "  Who invented the phonograph? ",
		Answer:     "Thomas Edison",
		Category:   4,
		Difficulty: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)
	assert.Equal(t, "Who invented the phonograph?", created.Question)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, stored)

	require.Len(t, events.events, 1)
	assert.Equal(t, domain.EventQuestionCreated, events.events[0].eventType)
}

func TestCreateQuestionInvalid(t *testing.T) {
	repo := newFakeQuestionRepo(0, nil)
	svc, events := newTestService(repo, 10)

	tests := map[string]domain.NewQuestion{
		"blank question": {Question: "  ", Answer: "A", Category: 1, Difficulty: 1},
		"blank answer":   {Question: "Q?", Answer: "", Category: 1, Difficulty: 1},
		"no category":    {Question: "Q?", Answer: "A", Category: 0, Difficulty: 1},
	}
	for name, q := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateQuestion(context.Background(), q)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, repo.questions)
	assert.Empty(t, events.events)
}

func TestDeleteQuestion(t *testing.T) {
	repo := newFakeQuestionRepo(12, func(int) int { return 1 })
	svc, events := newTestService(repo, 10)
	ctx := context.Background()

	require.NoError(t, svc.DeleteQuestion(ctx, 10))

	_, err := repo.GetByID(ctx, 10)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
	require.Len(t, events.events, 1)
	assert.Equal(t, domain.EventQuestionDeleted, events.events[0].eventType)
	assert.Equal(t, map[string]int{"id": 10}, events.events[0].payload)

	assert.ErrorIs(t, svc.DeleteQuestion(ctx, 10), domain.ErrQuestionNotFound)
	assert.ErrorIs(t, svc.DeleteQuestion(ctx, 1000), domain.ErrQuestionNotFound)
	assert.Len(t, events.events, 1)
}

func TestNextQuizQuestionNeverRepeats(t *testing.T) {
	repo := newFakeQuestionRepo(10, func(i int) int { return 1 + i%2 })
	svc, _ := newTestService(repo, 10)
	ctx := context.Background()

	var previous []int
	for {
		q, err := svc.NextQuizQuestion(ctx, 2, previous)
		require.NoError(t, err)
		if q == nil {
			break
		}
		assert.Equal(t, 2, q.Category)
		assert.NotContains(t, previous, q.ID)
		previous = append(previous, q.ID)
	}
	assert.Len(t, previous, 5)
}

func TestNextQuizQuestionAllCategories(t *testing.T) {
	repo := newFakeQuestionRepo(4, func(i int) int { return 1 + i })
	svc, _ := newTestService(repo, 10)

	q, err := svc.NextQuizQuestion(context.Background(), 0, []int{1, 2, 3})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 4, q.ID)

	q, err = svc.NextQuizQuestion(context.Background(), 0, []int{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestNextQuizQuestionErrors(t *testing.T) {
	repo := newFakeQuestionRepo(1, func(int) int { return 1 })
	svc, _ := newTestService(repo, 10)

	_, err := svc.NextQuizQuestion(context.Background(), -1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.err = errors.New("timeout")
	_, err = svc.NextQuizQuestion(context.Background(), 1, nil)
	assert.Error(t, err)
}

func TestCheckAnswer(t *testing.T) {
	repo := newFakeQuestionRepo(1, func(int) int { return 1 })
	repo.questions[0].Answer = "The Liver"
	svc, _ := newTestService(repo, 10)
	ctx := context.Background()

	check, err := svc.CheckAnswer(ctx, 1, "liver")
	require.NoError(t, err)
	assert.True(t, check.Correct)
	assert.Equal(t, "The Liver", check.Answer)

	check, err = svc.CheckAnswer(ctx, 1, "heart")
	require.NoError(t, err)
	assert.False(t, check.Correct)

	_, err = svc.CheckAnswer(ctx, 2, "liver")
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

func TestPing(t *testing.T) {
	repo := newFakeQuestionRepo(0, nil)
	svc := NewTriviaService(&fakeCategoryRepo{}, repo, fakePinger{errors.New("down")}, nil, 0)
	assert.Error(t, svc.Ping(context.Background()))
	assert.Equal(t, DefaultQuestionsPerPage, svc.perPage)
}
