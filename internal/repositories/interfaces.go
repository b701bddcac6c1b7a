package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/exam-engine/internal/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err means the row does not exist,
// regardless of which layer produced it.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// ExamRepository loads immutable exam content. The engine treats any load
// failure as "cannot start" and does not retry.
type ExamRepository interface {
	GetByID(ctx context.Context, id string) (*models.Exam, error)
	List(ctx context.Context) ([]models.ExamSummary, error)
}

// ResultRepository archives submitted attempts. A failed write is logged by
// the caller and never rolls back the in-memory session state.
type ResultRepository interface {
	Create(ctx context.Context, record *models.ResultRecord) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.ResultRecord, error)
	GetByExam(ctx context.Context, examID string, limit, offset int) ([]*models.ResultRecord, int64, error)
}

// Repository is the storage entry point handed to services.
type Repository interface {
	Exam() ExamRepository
	Result() ResultRepository
	Ping(ctx context.Context) error
}
