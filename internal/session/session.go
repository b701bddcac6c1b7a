// Package session implements the lifecycle of one exam attempt: a state
// machine over NotStarted -> InProgress -> Submitted that owns the countdown
// timer, the answer map, the question cursor and the review-later flags.
// It is independent of any transport or rendering layer.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/SAP-F-2025/exam-engine/internal/models"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateSubmitted  State = "submitted"
)

type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

var (
	ErrExamNotLoaded    = errors.New("exam content not loaded")
	ErrAlreadyStarted   = errors.New("session already started")
	ErrNotActive        = errors.New("session is not in progress")
	ErrNotSubmitted     = errors.New("session is not submitted")
	ErrQuestionNotFound = errors.New("question not found in exam")
	ErrInvalidDirection = errors.New("invalid navigation direction")
)

// Cursor identifies the question currently presented to the test-taker.
type Cursor struct {
	Section  int `json:"section_index"`
	Question int `json:"question_index"`
}

// Clock abstracts wall-clock reads so timer behavior is testable without
// waiting.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock reads the actual wall clock.
func SystemClock() Clock { return realClock{} }

// Scorer computes the result of a finished attempt. It must be pure; the
// session invokes it exactly once per attempt and memoizes the result.
type Scorer interface {
	Score(exam *models.Exam, answers models.Answers) models.ScoreResult
}

// Submission is what the session emits on submit for a collaborator to
// persist. Persistence failure never rolls back the Submitted state.
type Submission struct {
	Answers          models.Answers
	TimeSpentSeconds int
	Score            models.ScoreResult
}

// SubmitSink receives the submission exactly once, fire-and-forget.
type SubmitSink func(Submission)

// Session is one exam attempt. All transitions are guarded by a mutex: ticks
// and user events arrive on different goroutines, and a stray tick racing a
// manual submit must not decrement a frozen timer or score twice.
type Session struct {
	mu sync.Mutex

	exam   *models.Exam
	scorer Scorer
	clock  Clock
	sink   SubmitSink

	state     State
	answers   models.Answers
	flags     map[string]struct{}
	cursor    Cursor
	questions map[string]struct{}

	timeRemaining int
	startedAt     time.Time
	timeSpent     int

	reviewing bool
	result    *models.ScoreResult
}

type Option func(*Session)

func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithSubmitSink installs the collaborator that receives the submission.
func WithSubmitSink(sink SubmitSink) Option {
	return func(s *Session) { s.sink = sink }
}

// New creates a NotStarted session over a loaded exam.
func New(exam *models.Exam, scorer Scorer, opts ...Option) (*Session, error) {
	if exam == nil || exam.TotalQuestions() == 0 {
		return nil, ErrExamNotLoaded
	}
	s := &Session{
		exam:      exam,
		scorer:    scorer,
		clock:     realClock{},
		state:     StateNotStarted,
		answers:   make(models.Answers),
		flags:     make(map[string]struct{}),
		questions: make(map[string]struct{}, exam.TotalQuestions()),
	}
	for _, q := range exam.FlattenQuestions() {
		s.questions[q.ID] = struct{}{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start moves NotStarted -> InProgress, arms the countdown and resets the
// cursor. Starting twice is rejected and never resets a running timer.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return ErrAlreadyStarted
	}
	s.state = StateInProgress
	s.startedAt = s.clock.Now()
	s.timeRemaining = s.exam.DurationMinutes * 60
	s.cursor = Cursor{}
	return nil
}

// Tick is the pure one-second timer reducer, called by an external scheduler
// on a fixed cadence. It is a no-op outside InProgress, so a late tick after
// submission can never touch the frozen timer. Reaching zero forces
// submission; this is the only non-user-initiated transition.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return
	}
	if s.timeRemaining > 0 {
		s.timeRemaining--
	}
	if s.timeRemaining == 0 {
		s.submitLocked()
	}
}

// Answer records a raw answer value with overwrite semantics (last write
// wins, no history). Outside InProgress the write is rejected, so an
// auto-submit firing between keystroke and write cannot resurrect a mutation.
func (s *Session) Answer(questionID string, raw any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotActive
	}
	if _, ok := s.questions[questionID]; !ok {
		return ErrQuestionNotFound
	}
	s.answers[questionID] = raw
	return nil
}

// ToggleFlag flips the "review later" marker for a question. Pure
// bookkeeping, no scoring effect.
func (s *Session) ToggleFlag(questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotActive
	}
	if _, ok := s.questions[questionID]; !ok {
		return ErrQuestionNotFound
	}
	if _, flagged := s.flags[questionID]; flagged {
		delete(s.flags, questionID)
	} else {
		s.flags[questionID] = struct{}{}
	}
	return nil
}

// Navigate moves the cursor by one question, crossing section boundaries and
// clamping at the exam's first and last question (no wraparound).
func (s *Session) Navigate(dir Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotActive
	}

	switch dir {
	case DirectionNext:
		if s.cursor.Question < len(s.exam.QuestionsOf(s.cursor.Section))-1 {
			s.cursor.Question++
		} else if s.cursor.Section < s.exam.TotalSections()-1 {
			s.cursor.Section++
			s.cursor.Question = 0
		}
	case DirectionPrev:
		if s.cursor.Question > 0 {
			s.cursor.Question--
		} else if s.cursor.Section > 0 {
			s.cursor.Section--
			// Sections are not assumed to be the same length.
			s.cursor.Question = len(s.exam.QuestionsOf(s.cursor.Section)) - 1
		}
	default:
		return ErrInvalidDirection
	}
	return nil
}

// Submit moves InProgress -> Submitted: freezes the timer, computes the time
// spent, scores exactly once and memoizes the result. It is idempotent so a
// user click and the timer expiry can race to call it; the second call is a
// no-op. From NotStarted it is rejected.
func (s *Session) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitted {
		return nil
	}
	if s.state != StateInProgress {
		return ErrNotActive
	}
	s.submitLocked()
	return nil
}

// submitLocked performs the one-shot transition. Caller holds the mutex and
// has verified state is InProgress.
func (s *Session) submitLocked() {
	s.state = StateSubmitted
	s.timeSpent = int(s.clock.Now().Sub(s.startedAt).Seconds())

	result := s.scorer.Score(s.exam, s.answers)
	s.result = &result

	if s.sink != nil {
		s.sink(Submission{
			Answers:          s.answers.Clone(),
			TimeSpentSeconds: s.timeSpent,
			Score:            result,
		})
	}
}

// SetReviewing toggles the detailed-review presentation mode. It is layered
// on Submitted only, never reachable from earlier states.
func (s *Session) SetReviewing(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSubmitted {
		return ErrNotSubmitted
	}
	s.reviewing = on
	return nil
}

// ===== READ-SIDE ACCESSORS =====

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Exam() *models.Exam {
	return s.exam
}

func (s *Session) TimeRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeRemaining
}

// TimeSpent returns the frozen duration of a submitted attempt in seconds.
func (s *Session) TimeSpent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeSpent
}

func (s *Session) Cursor() Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// CurrentQuestion resolves the cursor to a concrete question. The navigation
// invariants keep the cursor in bounds, so ok is false only before content
// validation rejected a malformed exam.
func (s *Session) CurrentQuestion() (models.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs := s.exam.QuestionsOf(s.cursor.Section)
	if s.cursor.Question < 0 || s.cursor.Question >= len(qs) {
		return models.Question{}, false
	}
	return qs[s.cursor.Question], true
}

// Answers returns a copy of the answer map.
func (s *Session) Answers() models.Answers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Clone()
}

// AnsweredCount reports how many questions have an answer recorded.
func (s *Session) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// Flagged returns the ids currently marked "review later".
func (s *Session) Flagged() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.flags))
	for id := range s.flags {
		out = append(out, id)
	}
	return out
}

func (s *Session) IsFlagged(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.flags[questionID]
	return ok
}

func (s *Session) Reviewing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewing
}

// Result returns the memoized score of a submitted attempt.
func (s *Session) Result() (models.ScoreResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return models.ScoreResult{}, false
	}
	return *s.result, true
}
