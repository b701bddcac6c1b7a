package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-engine/internal/cache"
	"github.com/SAP-F-2025/exam-engine/internal/models"
	"github.com/SAP-F-2025/exam-engine/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) GetByID(ctx context.Context, id string) (*models.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exam), args.Error(1)
}

func (m *MockExamRepository) List(ctx context.Context) ([]models.ExamSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExamSummary), args.Error(1)
}

type examRepoOnly struct {
	exam *MockExamRepository
}

func (m *examRepoOnly) Exam() repositories.ExamRepository     { return m.exam }
func (m *examRepoOnly) Result() repositories.ResultRepository { return nil }
func (m *examRepoOnly) Ping(ctx context.Context) error        { return nil }

// memoryCache is a trivial CacheService for exercising the read-through path.
type memoryCache struct {
	mu      sync.Mutex
	exams   map[string]models.Exam
	sets    int
	hits    int
	deletes int
	flushes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{exams: make(map[string]models.Exam)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exams[key] = *(value.(*models.Exam))
	c.sets++
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	exam, ok := c.exams[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	*(dest.(*models.Exam)) = exam
	c.hits++
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.exams, key)
	c.deletes++
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.exams {
		if strings.HasPrefix(key, prefix) {
			delete(c.exams, key)
		}
	}
	c.flushes++
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExamService_GetByID_ReadThroughCache(t *testing.T) {
	repo := new(MockExamRepository)
	mem := newMemoryCache()
	svc := NewExamService(&examRepoOnly{exam: repo}, mem, discardLogger())
	ctx := context.Background()

	repo.On("GetByID", mock.Anything, "exam-1").Return(sampleExam(), nil).Once()

	first, err := svc.GetByID(ctx, "exam-1")
	require.NoError(t, err)
	assert.Equal(t, "exam-1", first.ID)
	assert.Equal(t, 1, mem.sets)

	// Second load is served from cache; the repository is not hit again.
	second, err := svc.GetByID(ctx, "exam-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, mem.hits)
	repo.AssertExpectations(t)
}

func TestExamService_GetByID_NotFound(t *testing.T) {
	repo := new(MockExamRepository)
	svc := NewExamService(&examRepoOnly{exam: repo}, nil, discardLogger())

	repo.On("GetByID", mock.Anything, "missing").Return(nil, repositories.ErrNotFound)

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrExamNotFound)
}

func TestExamService_GetByID_RepositoryFailure(t *testing.T) {
	repo := new(MockExamRepository)
	svc := NewExamService(&examRepoOnly{exam: repo}, nil, discardLogger())

	repo.On("GetByID", mock.Anything, "exam-1").Return(nil, errors.New("connection refused"))

	_, err := svc.GetByID(context.Background(), "exam-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrExamNotFound)
}

func TestExamService_GetByID_InvalidContentRejected(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Exam)
	}{
		{"unknown kind", func(e *models.Exam) { e.Kind = "speaking" }},
		{"non-positive duration", func(e *models.Exam) { e.DurationMinutes = 0 }},
		{"no sections", func(e *models.Exam) { e.Sections = nil }},
		{"empty section", func(e *models.Exam) {
			e.Sections = append(e.Sections, models.Section{Title: "Part 3"})
		}},
		{"duplicate question id", func(e *models.Exam) {
			e.Sections[1].Questions = append(e.Sections[1].Questions, models.Question{ID: "q1"})
		}},
		{"empty question id", func(e *models.Exam) {
			e.Sections[0].Questions[0].ID = ""
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exam := sampleExam()
			tc.mutate(exam)

			repo := new(MockExamRepository)
			repo.On("GetByID", mock.Anything, exam.ID).Return(exam, nil)
			svc := NewExamService(&examRepoOnly{exam: repo}, nil, discardLogger())

			_, err := svc.GetByID(context.Background(), exam.ID)
			assert.ErrorIs(t, err, ErrExamInvalid)
		})
	}
}

func TestExamService_GetByID_DropsInvalidCacheEntry(t *testing.T) {
	repo := new(MockExamRepository)
	mem := newMemoryCache()
	svc := NewExamService(&examRepoOnly{exam: repo}, mem, discardLogger())
	ctx := context.Background()

	// Seed the cache with a copy that no longer validates; the stored row
	// must win and the bad entry must be evicted.
	poisoned := *sampleExam()
	poisoned.DurationMinutes = 0
	mem.exams["exam:exam-1"] = poisoned

	repo.On("GetByID", mock.Anything, "exam-1").Return(sampleExam(), nil).Once()

	exam, err := svc.GetByID(ctx, "exam-1")
	require.NoError(t, err)
	assert.Equal(t, 30, exam.DurationMinutes)
	assert.Equal(t, 1, mem.deletes)
	assert.Equal(t, 1, mem.sets, "repository copy replaces the evicted entry")
	repo.AssertExpectations(t)
}

func TestExamService_InvalidateAll(t *testing.T) {
	repo := new(MockExamRepository)
	mem := newMemoryCache()
	svc := NewExamService(&examRepoOnly{exam: repo}, mem, discardLogger())
	ctx := context.Background()

	repo.On("GetByID", mock.Anything, "exam-1").Return(sampleExam(), nil).Twice()

	_, err := svc.GetByID(ctx, "exam-1")
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateAll(ctx))
	assert.Equal(t, 1, mem.flushes)
	assert.Empty(t, mem.exams)

	// Flushed cache means the next load goes back to the repository.
	_, err = svc.GetByID(ctx, "exam-1")
	require.NoError(t, err)
	assert.Equal(t, 0, mem.hits)
	repo.AssertExpectations(t)
}

func TestExamService_InvalidateAll_NoCache(t *testing.T) {
	svc := NewExamService(&examRepoOnly{exam: new(MockExamRepository)}, nil, discardLogger())
	assert.NoError(t, svc.InvalidateAll(context.Background()))
}

func TestExamService_List(t *testing.T) {
	repo := new(MockExamRepository)
	svc := NewExamService(&examRepoOnly{exam: repo}, nil, discardLogger())

	summaries := []models.ExamSummary{
		{ID: "exam-1", Title: "Listening Practice Test 1", Kind: models.KindListening},
		{ID: "exam-2", Title: "Reading Practice Test 1", Kind: models.KindReading},
	}
	repo.On("List", mock.Anything).Return(summaries, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, summaries, got)
}
