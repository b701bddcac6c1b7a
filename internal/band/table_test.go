package band

import (
	"testing"

	"github.com/SAP-F-2025/exam-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBandScoreOf_SpotValues(t *testing.T) {
	table := Default()

	cases := []struct {
		kind     models.ExamKind
		raw      int
		wantBand float64
		wantDesc string
	}{
		{models.KindListening, 40, 9.0, "Expert user"},
		{models.KindListening, 39, 9.0, "Expert user"},
		{models.KindListening, 30, 7.0, "Good user"},
		{models.KindListening, 26, 6.5, "Competent user"},
		{models.KindListening, 16, 5.0, "Modest user"},
		{models.KindListening, 10, 4.0, "Limited user"},
		{models.KindListening, 0, 1.0, "Non-user"},
		{models.KindReading, 40, 9.0, "Expert user"},
		{models.KindReading, 33, 7.5, "Good user"},
		{models.KindReading, 30, 7.0, "Good user"},
		{models.KindReading, 23, 6.0, "Competent user"},
		{models.KindReading, 15, 5.0, "Modest user"},
		{models.KindReading, 2, 1.5, "Non-user"},
	}
	for _, tc := range cases {
		band, desc := table.BandScoreOf(tc.kind, tc.raw)
		assert.Equal(t, tc.wantBand, band, "%s raw=%d", tc.kind, tc.raw)
		assert.Equal(t, tc.wantDesc, desc, "%s raw=%d", tc.kind, tc.raw)
	}
}

func TestBandScoreOf_MonotonicNonDecreasing(t *testing.T) {
	table := Default()
	for _, kind := range []models.ExamKind{models.KindListening, models.KindReading} {
		prev := -1.0
		for raw := 0; raw <= 40; raw++ {
			band, desc := table.BandScoreOf(kind, raw)
			assert.GreaterOrEqual(t, band, prev, "%s raw=%d", kind, raw)
			assert.NotEmpty(t, desc)
			prev = band
		}
	}
}

func TestBandScoreOf_Clamping(t *testing.T) {
	table := Default()

	atMax, _ := table.BandScoreOf(models.KindReading, 40)
	overMax, _ := table.BandScoreOf(models.KindReading, 55)
	assert.Equal(t, atMax, overMax)

	atMin, _ := table.BandScoreOf(models.KindListening, 0)
	underMin, _ := table.BandScoreOf(models.KindListening, -3)
	assert.Equal(t, atMin, underMin)
}

func TestBandScoreOf_UnknownKind(t *testing.T) {
	band, desc := Default().BandScoreOf(models.ExamKind("speaking"), 20)
	assert.Equal(t, 0.0, band)
	assert.Empty(t, desc)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Very good user", Describe(8.5))
	assert.Equal(t, "Extremely limited user", Describe(3.0))
	assert.Equal(t, "Did not attempt the test", Describe(0))
}
