package scoring

import (
	"encoding/json"
	"strings"

	"github.com/SAP-F-2025/exam-engine/internal/models"
)

// Canonical is the single comparable representation a raw answer is reduced to
// before equality-checking. It preserves the string/number distinction: a
// fill-blank answer "42" and the number 42 are different canonical values.
type Canonical struct {
	kind   canonicalKind
	number float64
	text   string
}

type canonicalKind uint8

const (
	canonNumber canonicalKind = iota + 1
	canonText
)

// triStateLabels is the fixed ordering used to map numeric
// true-false-notgiven answers onto their labels.
var triStateLabels = [3]string{"TRUE", "FALSE", "NOT GIVEN"}

// Normalize canonicalizes a raw answer value for one question so that two
// answers of different encodings (letter vs index, label vs index) compare
// equal exactly when they mean the same thing. The second return value is
// false when no answer was supplied (or the value cannot be canonicalized);
// such a result never compares equal to anything, including another missing
// answer. Side-effect free.
func Normalize(q models.Question, raw any) (Canonical, bool) {
	if raw == nil {
		return Canonical{}, false
	}

	switch q.Type {
	case models.MultipleChoice:
		if s, ok := raw.(string); ok {
			if len(s) == 1 && s[0] >= 'A' && s[0] <= 'D' {
				return Canonical{kind: canonNumber, number: float64(s[0] - 'A')}, true
			}
			return Canonical{kind: canonText, text: s}, true
		}
		if n, ok := asNumber(raw); ok {
			return Canonical{kind: canonNumber, number: n}, true
		}
		return Canonical{}, false

	case models.TrueFalseNotGiven:
		if s, ok := raw.(string); ok {
			return Canonical{kind: canonText, text: strings.ToUpper(s)}, true
		}
		if n, ok := asNumber(raw); ok {
			i := int(n)
			if float64(i) == n && i >= 0 && i < len(triStateLabels) {
				return Canonical{kind: canonText, text: triStateLabels[i]}, true
			}
		}
		return Canonical{}, false

	default:
		// fill-blank, matching, map-labeling: the raw value is the canonical
		// form. Equality is exact, no case-folding or trimming.
		if s, ok := raw.(string); ok {
			return Canonical{kind: canonText, text: s}, true
		}
		if n, ok := asNumber(raw); ok {
			return Canonical{kind: canonNumber, number: n}, true
		}
		return Canonical{}, false
	}
}

// IsCorrect reports whether the user's raw answer matches the question's
// answer key. Ungraded questions (no key) and unanswered questions are never
// correct. Both the scoring engine and the result aggregator go through this
// single implementation.
func IsCorrect(q models.Question, userRaw any) bool {
	if q.CorrectAnswer == nil {
		return false
	}
	want, ok := Normalize(q, q.CorrectAnswer)
	if !ok {
		return false
	}
	got, ok := Normalize(q, userRaw)
	if !ok {
		return false
	}
	return want == got
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
