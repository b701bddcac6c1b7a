package models

type ExamKind string

const (
	KindReading   ExamKind = "reading"
	KindListening ExamKind = "listening"
)

func (k ExamKind) Valid() bool {
	return k == KindReading || k == KindListening
}

// SectionLabel returns the display word for a section of this exam kind:
// reading exams group questions into passages, listening exams into sections.
func (k ExamKind) SectionLabel() string {
	if k == KindReading {
		return "Passage"
	}
	return "Section"
}

type QuestionType string

const (
	MultipleChoice    QuestionType = "multiple-choice"
	FillBlank         QuestionType = "fill-blank"
	TrueFalseNotGiven QuestionType = "true-false-notgiven"
	Matching          QuestionType = "matching"
	MapLabeling       QuestionType = "map-labeling"
)

// Question is a single read-only exam item. CorrectAnswer encoding depends on
// Type: a letter or option index for multiple-choice, a TRUE/FALSE/NOT GIVEN
// label (or index into that ordering) for true-false-notgiven, and an exact
// string or number for the remaining types. A nil CorrectAnswer marks an
// ungraded item.
type Question struct {
	ID             string       `json:"id" validate:"required"`
	Type           QuestionType `json:"type" validate:"required,question_type"`
	Prompt         string       `json:"prompt"`
	Options        []string     `json:"options,omitempty"`
	CorrectAnswer  any          `json:"correct_answer,omitempty"`
	AudioTimestamp *float64     `json:"audio_timestamp,omitempty"`
}

// Section groups the questions sharing one reading passage or audio segment.
type Section struct {
	Title     string     `json:"title"`
	Content   string     `json:"content,omitempty"`
	AudioURL  string     `json:"audio_url,omitempty"`
	Questions []Question `json:"questions"`
}

// Exam is immutable once loaded; a session holds it for its whole lifetime.
type Exam struct {
	ID              string    `json:"id" validate:"required"`
	Title           string    `json:"title"`
	Kind            ExamKind  `json:"kind" validate:"required,exam_kind"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=1"`
	Sections        []Section `json:"sections" validate:"required,min=1"`
}

// FlattenQuestions returns all questions across all sections in exam order.
func (e *Exam) FlattenQuestions() []Question {
	var out []Question
	for _, sec := range e.Sections {
		out = append(out, sec.Questions...)
	}
	return out
}

// TotalQuestions counts actual question content, never cached metadata.
func (e *Exam) TotalQuestions() int {
	total := 0
	for _, sec := range e.Sections {
		total += len(sec.Questions)
	}
	return total
}

func (e *Exam) TotalSections() int {
	return len(e.Sections)
}

// QuestionsOf returns the ordered questions of one section, or nil when the
// index is out of bounds.
func (e *Exam) QuestionsOf(sectionIndex int) []Question {
	if sectionIndex < 0 || sectionIndex >= len(e.Sections) {
		return nil
	}
	return e.Sections[sectionIndex].Questions
}

// ExamSummary is the listing view of an exam without its question content.
type ExamSummary struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Kind            ExamKind `json:"kind"`
	DurationMinutes int      `json:"duration_minutes"`
}
