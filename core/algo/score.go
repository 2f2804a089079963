// Package algo scores single questions. Every function here is pure and never fails:
// unparsable input, unknown options and unknown formulas all score 0.
package algo

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gacscore/gacscore/core/formula"
	"github.com/gacscore/gacscore/schema"
)

// ScoreQuestion computes the raw score of an answer on the question's native scale.
// An empty checkbox selection is an answer and scores the full 10.
func ScoreQuestion(q *schema.Question, a schema.Answer) float64 {
	if q == nil || (a.IsEmpty() && a.Kind != schema.AnswerChoices) {
		return 0
	}
	switch q.Type {
	case schema.InputQuestion:
		return scoreRules(q.Rules, a)
	case schema.SelectQuestion:
		return scoreOption(q.Options, a)
	case schema.CheckboxQuestion:
		return scoreDeduction(q.Options, a)
	case schema.MultiInputQuestion:
		return sanitize(scoreFormula(q, a), q.Scale.Max())
	default:
		return 0
	}
}

// ParseNumber parses a finite float from user input.
func ParseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// scoreRules returns the score of the first rule whose [min, max) interval holds the value.
func scoreRules(rules []schema.ScoringRule, a schema.Answer) float64 {
	if a.Kind != schema.AnswerText {
		return 0
	}
	v, ok := ParseNumber(a.Text)
	if !ok {
		return 0
	}
	for _, r := range rules {
		if r.Contains(v) {
			return r.Score
		}
	}
	return 0
}

func scoreOption(options []schema.Option, a schema.Answer) float64 {
	if a.Kind != schema.AnswerText {
		return 0
	}
	for _, o := range options {
		if o.Value == a.Text {
			return o.Score
		}
	}
	return 0
}

// scoreDeduction subtracts the penalties of all selected options from 100 and
// maps the result onto the 0-10 scale. Unknown values are ignored.
func scoreDeduction(options []schema.Option, a schema.Answer) float64 {
	if a.Kind != schema.AnswerChoices {
		return 0
	}
	// Each option counts once however often it was selected.
	var deduction float64
	for _, o := range options {
		if slices.Contains(a.Choices, o.Value) {
			deduction += o.Score
		}
	}
	return formula.Clamp((100-deduction)/10, 0, 10)
}

// sanitize maps non-finite values to 0 and clamps into [0, upper].
func sanitize(v, upper float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return formula.Clamp(v, 0, upper)
}
