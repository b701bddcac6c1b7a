package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/exam-engine/internal/cache"
	"github.com/SAP-F-2025/exam-engine/internal/models"
	"github.com/SAP-F-2025/exam-engine/internal/repositories"
)

const (
	examCacheTTL    = 10 * time.Minute
	examCachePrefix = "exam:"
)

// ExamService loads and validates immutable exam content. Loaded exams are
// kept in a read-through cache; content failures surface as ErrExamNotFound
// or ErrExamInvalid and leave the caller unable to start a session.
type ExamService interface {
	GetByID(ctx context.Context, id string) (*models.Exam, error)
	List(ctx context.Context) ([]models.ExamSummary, error)
	InvalidateAll(ctx context.Context) error
}

type examService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewExamService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) ExamService {
	return &examService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

func (s *examService) GetByID(ctx context.Context, id string) (*models.Exam, error) {
	cacheKey := examCachePrefix + id

	if s.cache != nil {
		var cached models.Exam
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			if err := validateExam(&cached); err == nil {
				return &cached, nil
			}
			// A cached copy that no longer validates (written by an older
			// build, or content changed underneath it) must not shadow the
			// stored row.
			s.logger.Warn("Dropping invalid cached exam", "exam_id", id)
			if err := s.cache.Delete(ctx, cacheKey); err != nil {
				s.logger.Warn("Failed to drop cached exam", "exam_id", id, "error", err)
			}
		}
	}

	exam, err := s.repo.Exam().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to load exam: %w", err)
	}

	if err := validateExam(exam); err != nil {
		s.logger.Error("Loaded exam failed content validation", "exam_id", id, "error", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, exam, examCacheTTL); err != nil {
			s.logger.Warn("Failed to cache exam", "exam_id", id, "error", err)
		}
	}

	return exam, nil
}

func (s *examService) List(ctx context.Context) ([]models.ExamSummary, error) {
	summaries, err := s.repo.Exam().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	return summaries, nil
}

// InvalidateAll flushes every cached exam. Called at startup: exam rows can
// change between deploys while cached copies persist in redis.
func (s *examService) InvalidateAll(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.DeletePattern(ctx, examCachePrefix+"*"); err != nil {
		return fmt.Errorf("failed to flush exam cache: %w", err)
	}
	return nil
}

// validateExam rejects content that would break the session invariants: the
// cursor must always resolve to a defined question, so every section needs at
// least one question and ids must be unique within the exam.
func validateExam(exam *models.Exam) error {
	if !exam.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrExamInvalid, exam.Kind)
	}
	if exam.DurationMinutes <= 0 {
		return fmt.Errorf("%w: non-positive duration", ErrExamInvalid)
	}
	if len(exam.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrExamInvalid)
	}

	seen := make(map[string]struct{}, exam.TotalQuestions())
	for i, sec := range exam.Sections {
		if len(sec.Questions) == 0 {
			return fmt.Errorf("%w: section %d has no questions", ErrExamInvalid, i)
		}
		for _, q := range sec.Questions {
			if q.ID == "" {
				return fmt.Errorf("%w: question with empty id in section %d", ErrExamInvalid, i)
			}
			if _, dup := seen[q.ID]; dup {
				return fmt.Errorf("%w: duplicate question id %q", ErrExamInvalid, q.ID)
			}
			seen[q.ID] = struct{}{}
		}
	}
	return nil
}
