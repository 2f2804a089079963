package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/gacscore/gacscore/core/algo"
	"github.com/gacscore/gacscore/schema"
)

// Validate checks the structural invariants of the built-in catalog.
func Validate() error {
	return ValidateDimensions(dimensions)
}

// ValidateDimensions checks that ids are unique, that every question carries the
// metadata for its type, that multi-input fields match their formula and that
// default weights sum to 100.
func ValidateDimensions(dims []schema.Dimension) error {
	var errs []error
	seenDims := make(map[string]struct{}, len(dims))
	var total float64
	for _, d := range dims {
		if d.ID == "" {
			errs = append(errs, errors.New("dimension with empty id"))
			continue
		}
		if _, dup := seenDims[d.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate dimension id %q", d.ID))
		}
		seenDims[d.ID] = struct{}{}
		total += d.DefaultWeight

		if len(d.QuestionIDs()) == 0 {
			errs = append(errs, fmt.Errorf("dimension %q has no questions", d.ID))
		}
		seenQuestions := make(map[string]struct{})
		for _, m := range d.Modules {
			for _, q := range m.Questions {
				if _, dup := seenQuestions[q.ID]; dup {
					errs = append(errs, fmt.Errorf("duplicate question %s/%s", d.ID, q.ID))
				}
				seenQuestions[q.ID] = struct{}{}
				if err := validateQuestion(&q); err != nil {
					errs = append(errs, fmt.Errorf("question %s/%s: %w", d.ID, q.ID, err))
				}
			}
		}
	}
	if len(dims) > 0 && math.Abs(total-100) > schema.WeightTolerance {
		errs = append(errs, fmt.Errorf("default dimension weights sum to %.2f, not 100", total))
	}
	return errors.Join(errs...)
}

func validateQuestion(q *schema.Question) error {
	if _, ok := schema.ValidQuestionTypes[q.Type]; !ok {
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	wantScale := schema.ScalePercent
	if q.Type == schema.CheckboxQuestion {
		wantScale = schema.ScaleTen
	}
	if q.Scale != wantScale {
		return fmt.Errorf("scale %q does not match type %s", q.Scale, q.Type)
	}

	switch q.Type {
	case schema.InputQuestion:
		if len(q.Rules) == 0 {
			return errors.New("input question without scoring rules")
		}
	case schema.SelectQuestion, schema.CheckboxQuestion:
		if len(q.Options) == 0 {
			return errors.New("question without options")
		}
		values := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			if _, dup := values[o.Value]; dup {
				return fmt.Errorf("duplicate option %q", o.Value)
			}
			values[o.Value] = struct{}{}
		}
	case schema.MultiInputQuestion:
		want, ok := algo.FormulaFields(q.Formula)
		if !ok {
			return fmt.Errorf("unknown formula %q", q.Formula)
		}
		got := make([]string, len(q.Fields))
		for i, fs := range q.Fields {
			got[i] = fs.Key
		}
		if !slices.Equal(got, want) {
			return fmt.Errorf("fields %v do not match formula %s fields %v", got, q.Formula, want)
		}
		if q.Repeating != algo.IsRepeatingFormula(q.Formula) {
			return fmt.Errorf("repeating flag does not match formula %s", q.Formula)
		}
	}
	return nil
}
