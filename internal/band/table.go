// Package band carries the IELTS raw-score to band-score conversion tables
// for Listening and Academic Reading. Band conversion is a monotonic
// non-decreasing step function of the raw correct-answer count (0-40).
package band

import (
	"math"

	"github.com/SAP-F-2025/exam-engine/internal/models"
)

const maxRawScore = 40

// Table implements scoring.BandTable with fixed per-kind conversion arrays
// indexed by raw correct count.
type Table struct {
	listening [maxRawScore + 1]float64
	reading   [maxRawScore + 1]float64
}

type bandRange struct {
	from, to int
	band     float64
}

var listeningRanges = []bandRange{
	{0, 1, 1.0},
	{2, 3, 2.0},
	{4, 5, 2.5},
	{6, 7, 3.0},
	{8, 9, 3.5},
	{10, 12, 4.0},
	{13, 15, 4.5},
	{16, 17, 5.0},
	{18, 22, 5.5},
	{23, 25, 6.0},
	{26, 29, 6.5},
	{30, 31, 7.0},
	{32, 34, 7.5},
	{35, 36, 8.0},
	{37, 38, 8.5},
	{39, 40, 9.0},
}

var readingRanges = []bandRange{
	{0, 1, 1.0},
	{2, 2, 1.5},
	{3, 3, 2.0},
	{4, 5, 2.5},
	{6, 7, 3.0},
	{8, 9, 3.5},
	{10, 12, 4.0},
	{13, 14, 4.5},
	{15, 18, 5.0},
	{19, 22, 5.5},
	{23, 26, 6.0},
	{27, 29, 6.5},
	{30, 32, 7.0},
	{33, 34, 7.5},
	{35, 36, 8.0},
	{37, 38, 8.5},
	{39, 40, 9.0},
}

// Default returns the table loaded with the official Listening and Academic
// Reading conversions.
func Default() *Table {
	t := &Table{}
	fill(&t.listening, listeningRanges)
	fill(&t.reading, readingRanges)
	return t
}

func fill(dst *[maxRawScore + 1]float64, ranges []bandRange) {
	for _, r := range ranges {
		for raw := r.from; raw <= r.to && raw <= maxRawScore; raw++ {
			dst[raw] = r.band
		}
	}
}

// BandScoreOf looks up the band for a raw correct count, clamping the count
// into [0, 40].
func (t *Table) BandScoreOf(kind models.ExamKind, correctCount int) (float64, string) {
	if correctCount < 0 {
		correctCount = 0
	}
	if correctCount > maxRawScore {
		correctCount = maxRawScore
	}

	var band float64
	switch kind {
	case models.KindListening:
		band = t.listening[correctCount]
	case models.KindReading:
		band = t.reading[correctCount]
	default:
		return 0, ""
	}
	return band, Describe(band)
}

// Describe returns the official qualitative descriptor for a band score.
// Half bands take the descriptor of the whole band below them.
func Describe(band float64) string {
	switch int(math.Floor(band)) {
	case 9:
		return "Expert user"
	case 8:
		return "Very good user"
	case 7:
		return "Good user"
	case 6:
		return "Competent user"
	case 5:
		return "Modest user"
	case 4:
		return "Limited user"
	case 3:
		return "Extremely limited user"
	case 2:
		return "Intermittent user"
	case 1:
		return "Non-user"
	default:
		return "Did not attempt the test"
	}
}
