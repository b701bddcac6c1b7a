package postgres

import (
	"context"

	"github.com/SAP-F-2025/exam-engine/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	db     *gorm.DB
	exam   *examRepository
	result *resultRepository
}

// NewRepository wires the gorm-backed repositories.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		db:     db,
		exam:   &examRepository{db: db},
		result: &resultRepository{db: db},
	}
}

func (r *gormRepository) Exam() repositories.ExamRepository {
	return r.exam
}

func (r *gormRepository) Result() repositories.ResultRepository {
	return r.result
}

func (r *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
