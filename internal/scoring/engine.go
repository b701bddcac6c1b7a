package scoring

import (
	"math"

	"github.com/SAP-F-2025/exam-engine/internal/models"
)

// BandTable converts a raw correct-answer count into an IELTS band score with
// its qualitative descriptor. Implementations must be monotonic non-decreasing
// step functions of the correct count.
type BandTable interface {
	BandScoreOf(kind models.ExamKind, correctCount int) (float64, string)
}

// Engine computes a ScoreResult from an exam's question bank and a full
// answer set. Score is pure: identical inputs always yield identical output,
// so callers are free to memoize or recompute at will.
type Engine struct {
	bands BandTable
}

func NewEngine(bands BandTable) *Engine {
	return &Engine{bands: bands}
}

func (e *Engine) Score(exam *models.Exam, answers models.Answers) models.ScoreResult {
	questions := exam.FlattenQuestions()

	total := len(questions)
	correct := 0
	answered := 0
	gradable := false
	for _, q := range questions {
		raw, has := answers[q.ID]
		if has {
			answered++
		}
		if q.CorrectAnswer != nil {
			gradable = true
		}
		if has && IsCorrect(q, raw) {
			correct++
		}
	}

	result := models.ScoreResult{
		TotalQuestions: total,
		CorrectAnswers: correct,
	}

	if gradable && exam.Kind.Valid() && e.bands != nil {
		result.Percentage = roundPercent(correct, total)
		result.BandScore, result.Description = e.bands.BandScoreOf(exam.Kind, correct)
		return result
	}

	// No answer key anywhere (unscored preview content): fall back to a
	// completion-ratio result. BandScore 0 means "not applicable".
	result.Percentage = roundPercent(answered, total)
	result.Description = completionDescription(result.Percentage)
	return result
}

// completionDescription buckets a completion percentage into a qualitative
// label for unscored content.
func completionDescription(percentage int) string {
	switch {
	case percentage >= 90:
		return "Excellent completion"
	case percentage >= 70:
		return "Good completion"
	case percentage >= 40:
		return "Partial completion"
	default:
		return "Low completion"
	}
}

func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
