package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/exam-engine/internal/models"
	"github.com/SAP-F-2025/exam-engine/internal/repositories"
	"gorm.io/gorm"
)

type examRepository struct {
	db *gorm.DB
}

func (r *examRepository) GetByID(ctx context.Context, id string) (*models.Exam, error) {
	var record models.ExamRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load exam %s: %w", id, err)
	}

	var exam models.Exam
	if err := json.Unmarshal(record.Content, &exam); err != nil {
		return nil, fmt.Errorf("malformed exam content for %s: %w", id, err)
	}
	// The JSON content is authoritative for everything except identity.
	exam.ID = record.ID
	return &exam, nil
}

func (r *examRepository) List(ctx context.Context) ([]models.ExamSummary, error) {
	var records []models.ExamRecord
	if err := r.db.WithContext(ctx).
		Select("id", "title", "kind", "duration_minutes").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	summaries := make([]models.ExamSummary, len(records))
	for i, rec := range records {
		summaries[i] = models.ExamSummary{
			ID:              rec.ID,
			Title:           rec.Title,
			Kind:            models.ExamKind(rec.Kind),
			DurationMinutes: rec.DurationMinutes,
		}
	}
	return summaries, nil
}
