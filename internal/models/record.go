package models

import (
	"time"

	"gorm.io/datatypes"
)

// ExamRecord is the storage row for exam content. The full exam (sections and
// questions, answer key included) lives in the JSON content column; the scalar
// columns exist for listing without deserializing content.
type ExamRecord struct {
	ID              string         `json:"id" gorm:"primaryKey;size:64"`
	Title           string         `json:"title" gorm:"not null;size:200"`
	Kind            string         `json:"kind" gorm:"not null;size:20;index"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	Content         datatypes.JSON `json:"content" gorm:"type:jsonb;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ExamRecord) TableName() string {
	return "exams"
}

// ResultRecord is the persisted submission emitted when a session is
// submitted. The in-memory session result stays authoritative for the current
// view; this row is the fire-and-forget archive copy.
type ResultRecord struct {
	ID        string `json:"id" gorm:"primaryKey;size:64"`
	SessionID string `json:"session_id" gorm:"not null;size:64;index"`
	ExamID    string `json:"exam_id" gorm:"not null;size:64;index"`

	Answers          datatypes.JSON `json:"answers" gorm:"type:jsonb"`
	TimeSpentSeconds int            `json:"time_spent_seconds"`

	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Percentage     int     `json:"percentage"`
	BandScore      float64 `json:"band_score"`
	Description    string  `json:"description" gorm:"size:200"`

	SubmittedAt time.Time `json:"submitted_at"`
}

func (ResultRecord) TableName() string {
	return "session_results"
}
