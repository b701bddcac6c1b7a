package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/exam-engine/internal/models"
	"github.com/SAP-F-2025/exam-engine/internal/repositories"
	"gorm.io/gorm"
)

type resultRepository struct {
	db *gorm.DB
}

func (r *resultRepository) Create(ctx context.Context, record *models.ResultRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create result record: %w", err)
	}
	return nil
}

func (r *resultRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.ResultRecord, error) {
	var record models.ResultRecord
	if err := r.db.WithContext(ctx).First(&record, "session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load result for session %s: %w", sessionID, err)
	}
	return &record, nil
}

func (r *resultRepository) GetByExam(ctx context.Context, examID string, limit, offset int) ([]*models.ResultRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ResultRecord{}).Where("exam_id = ?", examID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count results: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	var records []*models.ResultRecord
	if err := query.Order("submitted_at DESC").Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list results: %w", err)
	}
	return records, total, nil
}
