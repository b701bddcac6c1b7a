package models

// Answers maps question id to the raw value the test-taker supplied
// (string or number, depending on how the client encodes the answer).
// A key is only ever overwritten, never removed: there is no "unanswer".
type Answers map[string]any

// Clone returns an independent copy so a frozen session can hand out its
// answer set without exposing internal state.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ScoreResult is a pure projection of (exam, answers): recomputing it with
// identical inputs yields an identical value. BandScore 0 is the sentinel for
// "band not applicable" (exam with no answer key).
type ScoreResult struct {
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Percentage     int     `json:"percentage"`
	BandScore      float64 `json:"band_score"`
	Description    string  `json:"description"`
}

// QuestionOutcome is one row of the detailed-review view.
type QuestionOutcome struct {
	Question     Question `json:"question"`
	UserAnswer   any      `json:"user_answer,omitempty"`
	IsCorrect    bool     `json:"is_correct"`
	SectionTitle string   `json:"section_title"`
}

// SectionResult groups outcomes under one section heading, preserving the
// exam's section order.
type SectionResult struct {
	Title    string            `json:"title"`
	Outcomes []QuestionOutcome `json:"outcomes"`
}
