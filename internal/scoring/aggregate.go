package scoring

import (
	"fmt"

	"github.com/SAP-F-2025/exam-engine/internal/models"
)

// DetailedResults derives one outcome per question for the review view,
// walking sections in exam order. Correctness comes from the same IsCorrect
// used by the scoring engine, so the two views can never disagree.
func DetailedResults(exam *models.Exam, answers models.Answers) []models.QuestionOutcome {
	label := exam.Kind.SectionLabel()

	var outcomes []models.QuestionOutcome
	for i, sec := range exam.Sections {
		title := fmt.Sprintf("%s %d: %s", label, i+1, sec.Title)
		for _, q := range sec.Questions {
			raw := answers[q.ID]
			outcomes = append(outcomes, models.QuestionOutcome{
				Question:     q,
				UserAnswer:   raw,
				IsCorrect:    IsCorrect(q, raw),
				SectionTitle: title,
			})
		}
	}
	return outcomes
}

// GroupBySection regroups outcomes under their section titles, preserving the
// insertion order of the flattening pass (never re-sorted).
func GroupBySection(outcomes []models.QuestionOutcome) []models.SectionResult {
	var groups []models.SectionResult
	index := make(map[string]int)
	for _, o := range outcomes {
		i, ok := index[o.SectionTitle]
		if !ok {
			i = len(groups)
			index[o.SectionTitle] = i
			groups = append(groups, models.SectionResult{Title: o.SectionTitle})
		}
		groups[i].Outcomes = append(groups[i].Outcomes, o)
	}
	return groups
}
