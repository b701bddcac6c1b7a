package events

import (
	"time"

	"github.com/SAP-F-2025/exam-engine/internal/models"
	"github.com/google/uuid"
)

type EventType string

const (
	EventSessionSubmitted EventType = "session.submitted"
)

// SessionEvent is the envelope published for session lifecycle events.
type SessionEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// SessionSubmittedEvent carries everything a downstream consumer needs to
// persist or report on a finished attempt.
type SessionSubmittedEvent struct {
	SessionID        string             `json:"session_id"`
	ExamID           string             `json:"exam_id"`
	ExamKind         models.ExamKind    `json:"exam_kind"`
	Answers          models.Answers     `json:"answers"`
	TimeSpentSeconds int                `json:"time_spent_seconds"`
	Score            models.ScoreResult `json:"score"`
	SubmittedAt      time.Time          `json:"submitted_at"`
}

func NewSessionSubmittedEvent(data SessionSubmittedEvent) *SessionEvent {
	return &SessionEvent{
		ID:        uuid.NewString(),
		Type:      EventSessionSubmitted,
		Source:    "exam-engine",
		Version:   "1.0",
		Timestamp: time.Now(),
		Data:      data,
	}
}
