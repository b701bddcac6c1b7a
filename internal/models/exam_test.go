package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoSectionExam() *Exam {
	return &Exam{
		ID:              "exam-1",
		Kind:            KindReading,
		DurationMinutes: 60,
		Sections: []Section{
			{Title: "First passage", Questions: []Question{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}}},
			{Title: "Second passage", Questions: []Question{{ID: "q4"}}},
		},
	}
}

func TestExamKind(t *testing.T) {
	assert.True(t, KindReading.Valid())
	assert.True(t, KindListening.Valid())
	assert.False(t, ExamKind("speaking").Valid())
	assert.False(t, ExamKind("").Valid())

	assert.Equal(t, "Passage", KindReading.SectionLabel())
	assert.Equal(t, "Section", KindListening.SectionLabel())
}

func TestExam_QuestionsOf(t *testing.T) {
	exam := twoSectionExam()

	first := exam.QuestionsOf(0)
	assert.Len(t, first, 3)
	assert.Equal(t, "q1", first[0].ID)

	second := exam.QuestionsOf(1)
	assert.Len(t, second, 1)
	assert.Equal(t, "q4", second[0].ID)

	assert.Nil(t, exam.QuestionsOf(-1))
	assert.Nil(t, exam.QuestionsOf(2))
}

func TestExam_FlattenAndTotals(t *testing.T) {
	exam := twoSectionExam()

	flat := exam.FlattenQuestions()
	ids := make([]string, len(flat))
	for i, q := range flat {
		ids[i] = q.ID
	}
	assert.Equal(t, []string{"q1", "q2", "q3", "q4"}, ids)

	assert.Equal(t, 4, exam.TotalQuestions())
	assert.Equal(t, 2, exam.TotalSections())

	empty := &Exam{ID: "empty", Kind: KindListening}
	assert.Empty(t, empty.FlattenQuestions())
	assert.Equal(t, 0, empty.TotalQuestions())
}
