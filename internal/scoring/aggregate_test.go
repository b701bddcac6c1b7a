package scoring

import (
	"testing"

	"github.com/SAP-F-2025/exam-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDetailedResults_SectionTitles(t *testing.T) {
	reading := &models.Exam{
		Kind: models.KindReading,
		Sections: []models.Section{
			{Title: "Urban beekeeping", Questions: []models.Question{{ID: "q1", Type: models.FillBlank, CorrectAnswer: "hive"}}},
			{Title: "Glacier retreat", Questions: []models.Question{{ID: "q2", Type: models.FillBlank, CorrectAnswer: "ice"}}},
		},
	}

	outcomes := DetailedResults(reading, models.Answers{"q1": "hive"})
	assert.Len(t, outcomes, 2)
	assert.Equal(t, "Passage 1: Urban beekeeping", outcomes[0].SectionTitle)
	assert.Equal(t, "Passage 2: Glacier retreat", outcomes[1].SectionTitle)
	assert.True(t, outcomes[0].IsCorrect)
	assert.False(t, outcomes[1].IsCorrect)

	listening := &models.Exam{
		Kind:     models.KindListening,
		Sections: []models.Section{{Title: "Campus tour", Questions: []models.Question{{ID: "q1"}}}},
	}
	outcomes = DetailedResults(listening, nil)
	assert.Equal(t, "Section 1: Campus tour", outcomes[0].SectionTitle)
}

func TestDetailedResults_AgreesWithEngine(t *testing.T) {
	exam := readingExam()
	answers := models.Answers{"q1": "B", "q2": "FALSE", "q3": "42"}

	outcomes := DetailedResults(exam, answers)
	correct := 0
	for _, o := range outcomes {
		if o.IsCorrect {
			correct++
		}
	}

	result := NewEngine(nil).Score(exam, answers)
	// nil band table still counts correct answers the same way
	assert.Equal(t, result.CorrectAnswers, correct)
}

func TestGroupBySection_PreservesOrder(t *testing.T) {
	exam := &models.Exam{
		Kind: models.KindListening,
		Sections: []models.Section{
			{Title: "Part one", Questions: []models.Question{{ID: "a"}, {ID: "b"}}},
			{Title: "Part two", Questions: []models.Question{{ID: "c"}}},
			{Title: "Part three", Questions: []models.Question{{ID: "d"}, {ID: "e"}}},
		},
	}

	groups := GroupBySection(DetailedResults(exam, nil))
	assert.Len(t, groups, 3)
	assert.Equal(t, "Section 1: Part one", groups[0].Title)
	assert.Equal(t, "Section 2: Part two", groups[1].Title)
	assert.Equal(t, "Section 3: Part three", groups[2].Title)
	assert.Len(t, groups[0].Outcomes, 2)
	assert.Len(t, groups[1].Outcomes, 1)
	assert.Len(t, groups[2].Outcomes, 2)
	assert.Equal(t, "a", groups[0].Outcomes[0].Question.ID)
	assert.Equal(t, "e", groups[2].Outcomes[1].Question.ID)
}

func TestGroupBySection_Empty(t *testing.T) {
	assert.Empty(t, GroupBySection(nil))
}
