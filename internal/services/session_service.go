package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/exam-engine/internal/events"
	"github.com/SAP-F-2025/exam-engine/internal/models"
	"github.com/SAP-F-2025/exam-engine/internal/repositories"
	"github.com/SAP-F-2025/exam-engine/internal/scoring"
	"github.com/SAP-F-2025/exam-engine/internal/session"
	"github.com/SAP-F-2025/exam-engine/internal/validator"
	"github.com/google/uuid"
)

// ===== REQUEST / RESPONSE STRUCTURES =====

type CreateSessionRequest struct {
	ExamID string `json:"exam_id" validate:"required"`
}

// SubmitAnswerRequest carries one raw answer value. Value is deliberately not
// tagged required: 0 is a legitimate answer (option index A, label TRUE), and
// required would reject its zero value. Nil is checked explicitly.
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Value      any    `json:"value"`
}

type NavigateRequest struct {
	Direction string `json:"direction" validate:"required,nav_direction"`
}

// SessionResponse is the transport view of a live session. Question content
// sent to the test-taker never includes the answer key.
type SessionResponse struct {
	SessionID            string           `json:"session_id"`
	ExamID               string           `json:"exam_id"`
	ExamTitle            string           `json:"exam_title"`
	ExamKind             models.ExamKind  `json:"exam_kind"`
	State                session.State    `json:"state"`
	TimeRemainingSeconds int              `json:"time_remaining_seconds"`
	Cursor               session.Cursor   `json:"cursor"`
	CurrentQuestion      *models.Question `json:"current_question,omitempty"`
	TotalSections        int              `json:"total_sections"`
	TotalQuestions       int              `json:"total_questions"`
	AnsweredCount        int              `json:"answered_count"`
	Flagged              []string         `json:"flagged"`
}

type ResultResponse struct {
	SessionID        string             `json:"session_id"`
	ExamID           string             `json:"exam_id"`
	TimeSpentSeconds int                `json:"time_spent_seconds"`
	Score            models.ScoreResult `json:"score"`
}

// ArchivedResult is one persisted attempt in an exam's result history.
type ArchivedResult struct {
	SessionID        string             `json:"session_id"`
	TimeSpentSeconds int                `json:"time_spent_seconds"`
	Score            models.ScoreResult `json:"score"`
	SubmittedAt      time.Time          `json:"submitted_at"`
}

type ResultListResponse struct {
	ExamID  string           `json:"exam_id"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	Results []ArchivedResult `json:"results"`
}

type ReviewResponse struct {
	SessionID string                 `json:"session_id"`
	ExamID    string                 `json:"exam_id"`
	Score     models.ScoreResult     `json:"score"`
	Sections  []models.SectionResult `json:"sections"`
}

// ===== SERVICE =====

// SessionService owns the registry of live attempts: one Session per attempt,
// created on the pre-test screen and discarded when the test-taker leaves the
// result screen. Submission persists a result record and publishes a session
// event, both fire-and-forget.
type SessionService interface {
	Create(ctx context.Context, req *CreateSessionRequest) (*SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*SessionResponse, error)
	Start(ctx context.Context, sessionID string) (*SessionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *SubmitAnswerRequest) error
	ToggleFlag(ctx context.Context, sessionID, questionID string) error
	Navigate(ctx context.Context, sessionID string, req *NavigateRequest) (*SessionResponse, error)
	Submit(ctx context.Context, sessionID string) (*ResultResponse, error)
	Result(ctx context.Context, sessionID string) (*ResultResponse, error)
	Review(ctx context.Context, sessionID string) (*ReviewResponse, error)
	ListResults(ctx context.Context, examID string, limit, offset int) (*ResultListResponse, error)
	Discard(ctx context.Context, sessionID string) error
}

type liveSession struct {
	id     string
	exam   *models.Exam
	sess   *session.Session
	cancel context.CancelFunc
}

type sessionService struct {
	mu       sync.RWMutex
	sessions map[string]*liveSession

	exams     ExamService
	repo      repositories.Repository
	engine    *scoring.Engine
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	clock     session.Clock
}

type SessionServiceOption func(*sessionService)

// WithClock overrides the wall clock, used by tests to drive the timer.
func WithClock(c session.Clock) SessionServiceOption {
	return func(s *sessionService) { s.clock = c }
}

func NewSessionService(
	exams ExamService,
	repo repositories.Repository,
	engine *scoring.Engine,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
	opts ...SessionServiceOption,
) SessionService {
	s := &sessionService{
		sessions:  make(map[string]*liveSession),
		exams:     exams,
		repo:      repo,
		engine:    engine,
		publisher: publisher,
		logger:    logger,
		validator: v,
		clock:     session.SystemClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ===== LIFECYCLE OPERATIONS =====

func (s *sessionService) Create(ctx context.Context, req *CreateSessionRequest) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exam, err := s.exams.GetByID(ctx, req.ExamID)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	sess, err := session.New(exam, s.engine,
		session.WithClock(s.clock),
		session.WithSubmitSink(s.submitSink(sessionID, exam)),
	)
	if err != nil {
		return nil, ErrExamInvalid
	}

	live := &liveSession{id: sessionID, exam: exam, sess: sess}

	s.mu.Lock()
	s.sessions[sessionID] = live
	s.mu.Unlock()

	s.logger.Info("Session created",
		"session_id", sessionID,
		"exam_id", exam.ID,
		"exam_kind", exam.Kind)

	return s.buildSessionResponse(live), nil
}

func (s *sessionService) Start(ctx context.Context, sessionID string) (*SessionResponse, error) {
	live, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := live.sess.Start(); err != nil {
		return nil, mapSessionError(err)
	}

	// The runner drives Tick once per second and exits on its own the moment
	// the session leaves InProgress; cancel covers abandonment. The cancel
	// handoff happens under the registry lock: a concurrent Discard either
	// observes the cancel func, or wins the registry race and is detected
	// here before the runner launches.
	runCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if _, registered := s.sessions[sessionID]; !registered {
		s.mu.Unlock()
		cancel()
		return nil, ErrSessionNotFound
	}
	live.cancel = cancel
	s.mu.Unlock()

	go session.NewRunner(live.sess).Run(runCtx)

	s.logger.Info("Session started",
		"session_id", sessionID,
		"exam_id", live.exam.ID,
		"duration_minutes", live.exam.DurationMinutes)

	return s.buildSessionResponse(live), nil
}

func (s *sessionService) SubmitAnswer(ctx context.Context, sessionID string, req *SubmitAnswerRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if req.Value == nil {
		return fmt.Errorf("%w: answer value is required", ErrValidationFailed)
	}

	live, err := s.get(sessionID)
	if err != nil {
		return err
	}

	if err := live.sess.Answer(req.QuestionID, req.Value); err != nil {
		return mapSessionError(err)
	}
	return nil
}

func (s *sessionService) ToggleFlag(ctx context.Context, sessionID, questionID string) error {
	live, err := s.get(sessionID)
	if err != nil {
		return err
	}

	if err := live.sess.ToggleFlag(questionID); err != nil {
		return mapSessionError(err)
	}
	return nil
}

func (s *sessionService) Navigate(ctx context.Context, sessionID string, req *NavigateRequest) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	live, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := live.sess.Navigate(session.Direction(req.Direction)); err != nil {
		return nil, mapSessionError(err)
	}
	return s.buildSessionResponse(live), nil
}

func (s *sessionService) Submit(ctx context.Context, sessionID string) (*ResultResponse, error) {
	live, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := live.sess.Submit(); err != nil {
		return nil, mapSessionError(err)
	}

	s.logger.Info("Session submitted",
		"session_id", sessionID,
		"exam_id", live.exam.ID,
		"answered", live.sess.AnsweredCount())

	return s.buildResultResponse(live)
}

func (s *sessionService) Discard(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	live, ok := s.sessions[sessionID]
	var cancel context.CancelFunc
	if ok {
		delete(s.sessions, sessionID)
		cancel = live.cancel
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	if cancel != nil {
		cancel()
	}

	s.logger.Info("Session discarded",
		"session_id", sessionID,
		"state", live.sess.State())
	return nil
}

// ===== READ OPERATIONS =====

func (s *sessionService) Get(ctx context.Context, sessionID string) (*SessionResponse, error) {
	live, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildSessionResponse(live), nil
}

func (s *sessionService) Result(ctx context.Context, sessionID string) (*ResultResponse, error) {
	if live, err := s.get(sessionID); err == nil {
		return s.buildResultResponse(live)
	}

	// The live session is already discarded; the archived record still
	// serves the result.
	record, err := s.repo.Result().GetBySessionID(ctx, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load archived result: %w", err)
	}
	return &ResultResponse{
		SessionID:        record.SessionID,
		ExamID:           record.ExamID,
		TimeSpentSeconds: record.TimeSpentSeconds,
		Score:            scoreFromRecord(record),
	}, nil
}

const defaultResultPageSize = 50

func (s *sessionService) ListResults(ctx context.Context, examID string, limit, offset int) (*ResultListResponse, error) {
	if limit <= 0 {
		limit = defaultResultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := s.repo.Result().GetByExam(ctx, examID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list exam results: %w", err)
	}

	results := make([]ArchivedResult, len(records))
	for i, record := range records {
		results[i] = ArchivedResult{
			SessionID:        record.SessionID,
			TimeSpentSeconds: record.TimeSpentSeconds,
			Score:            scoreFromRecord(record),
			SubmittedAt:      record.SubmittedAt,
		}
	}
	return &ResultListResponse{
		ExamID:  examID,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		Results: results,
	}, nil
}

func (s *sessionService) Review(ctx context.Context, sessionID string) (*ReviewResponse, error) {
	live, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	score, ok := live.sess.Result()
	if !ok {
		return nil, ErrSessionNotSubmitted
	}
	if err := live.sess.SetReviewing(true); err != nil {
		return nil, mapSessionError(err)
	}

	outcomes := scoring.DetailedResults(live.exam, live.sess.Answers())
	return &ReviewResponse{
		SessionID: live.id,
		ExamID:    live.exam.ID,
		Score:     score,
		Sections:  scoring.GroupBySection(outcomes),
	}, nil
}

// ===== HELPER FUNCTIONS =====

func (s *sessionService) get(sessionID string) (*liveSession, error) {
	s.mu.RLock()
	live, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return live, nil
}

// submitSink builds the exactly-once submission collaborator for one session:
// archive the result and publish the event. Neither failure is allowed to
// reach the session, whose in-memory result stays authoritative for the UI.
func (s *sessionService) submitSink(sessionID string, exam *models.Exam) session.SubmitSink {
	return func(sub session.Submission) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			s.persistResult(ctx, sessionID, exam, sub)
			s.publishSubmitted(ctx, sessionID, exam, sub)
		}()
	}
}

func (s *sessionService) persistResult(ctx context.Context, sessionID string, exam *models.Exam, sub session.Submission) {
	answersJSON, err := json.Marshal(sub.Answers)
	if err != nil {
		s.logger.Error("Failed to marshal answers for result record",
			"session_id", sessionID, "error", err)
		return
	}

	record := &models.ResultRecord{
		ID:               uuid.NewString(),
		SessionID:        sessionID,
		ExamID:           exam.ID,
		Answers:          answersJSON,
		TimeSpentSeconds: sub.TimeSpentSeconds,
		TotalQuestions:   sub.Score.TotalQuestions,
		CorrectAnswers:   sub.Score.CorrectAnswers,
		Percentage:       sub.Score.Percentage,
		BandScore:        sub.Score.BandScore,
		Description:      sub.Score.Description,
		SubmittedAt:      s.clock.Now(),
	}

	if err := s.repo.Result().Create(ctx, record); err != nil {
		// The local result remains the source of truth for the current view.
		s.logger.Error("Failed to persist session result",
			"session_id", sessionID,
			"exam_id", exam.ID,
			"error", err)
	}
}

func (s *sessionService) publishSubmitted(ctx context.Context, sessionID string, exam *models.Exam, sub session.Submission) {
	event := events.NewSessionSubmittedEvent(events.SessionSubmittedEvent{
		SessionID:        sessionID,
		ExamID:           exam.ID,
		ExamKind:         exam.Kind,
		Answers:          sub.Answers,
		TimeSpentSeconds: sub.TimeSpentSeconds,
		Score:            sub.Score,
		SubmittedAt:      s.clock.Now(),
	})

	if err := s.publisher.PublishSessionEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish session submitted event",
			"session_id", sessionID,
			"error", err)
	}
}

func (s *sessionService) buildSessionResponse(live *liveSession) *SessionResponse {
	resp := &SessionResponse{
		SessionID:            live.id,
		ExamID:               live.exam.ID,
		ExamTitle:            live.exam.Title,
		ExamKind:             live.exam.Kind,
		State:                live.sess.State(),
		TimeRemainingSeconds: live.sess.TimeRemaining(),
		Cursor:               live.sess.Cursor(),
		TotalSections:        live.exam.TotalSections(),
		TotalQuestions:       live.exam.TotalQuestions(),
		AnsweredCount:        live.sess.AnsweredCount(),
		Flagged:              live.sess.Flagged(),
	}

	if q, ok := live.sess.CurrentQuestion(); ok {
		sanitized := sanitizeQuestion(q)
		resp.CurrentQuestion = &sanitized
	}
	return resp
}

func (s *sessionService) buildResultResponse(live *liveSession) (*ResultResponse, error) {
	score, ok := live.sess.Result()
	if !ok {
		return nil, ErrSessionNotSubmitted
	}
	return &ResultResponse{
		SessionID:        live.id,
		ExamID:           live.exam.ID,
		TimeSpentSeconds: live.sess.TimeSpent(),
		Score:            score,
	}, nil
}

func scoreFromRecord(record *models.ResultRecord) models.ScoreResult {
	return models.ScoreResult{
		TotalQuestions: record.TotalQuestions,
		CorrectAnswers: record.CorrectAnswers,
		Percentage:     record.Percentage,
		BandScore:      record.BandScore,
		Description:    record.Description,
	}
}

// sanitizeQuestion strips the answer key before question content leaves the
// service.
func sanitizeQuestion(q models.Question) models.Question {
	q.CorrectAnswer = nil
	return q
}

func mapSessionError(err error) error {
	switch err {
	case session.ErrExamNotLoaded:
		return ErrExamInvalid
	case session.ErrAlreadyStarted:
		return ErrSessionAlreadyStarted
	case session.ErrNotActive:
		return ErrSessionNotActive
	case session.ErrNotSubmitted:
		return ErrSessionNotSubmitted
	case session.ErrQuestionNotFound:
		return ErrQuestionNotFound
	case session.ErrInvalidDirection:
		return ErrInvalidDirection
	default:
		return err
	}
}
