package algo

import (
	"math"
	"testing"

	"github.com/gacscore/gacscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func volumeQuestion() *schema.Question {
	return &schema.Question{
		ID:    "q1",
		Type:  schema.InputQuestion,
		Scale: schema.ScalePercent,
		Rules: []schema.ScoringRule{
			{Max: schema.Float(1), Score: 100},
			{Min: schema.Float(1), Max: schema.Float(10), Score: 80},
			{Min: schema.Float(10), Max: schema.Float(50), Score: 60},
			{Min: schema.Float(50), Score: 20},
		},
	}
}

func hazardQuestion() *schema.Question {
	return &schema.Question{
		ID:    "q1",
		Type:  schema.CheckboxQuestion,
		Scale: schema.ScaleTen,
		Options: []schema.Option{
			{Value: "explosive", Score: 30},
			{Value: "flammable", Score: 15},
			{Value: "toxic", Score: 25},
			{Value: "health", Score: 20},
			{Value: "environmental", Score: 20},
		},
	}
}

func formulaQuestion(id schema.FormulaID) *schema.Question {
	fields, _ := FormulaFields(id)
	specs := make([]schema.FieldSpec, len(fields))
	for i, f := range fields {
		specs[i] = schema.FieldSpec{Key: f}
	}
	return &schema.Question{
		ID:        "q3",
		Type:      schema.MultiInputQuestion,
		Scale:     schema.ScalePercent,
		Fields:    specs,
		Repeating: IsRepeatingFormula(id),
		Formula:   id,
	}
}

// TestScoreRules tests rule-table bucket selection on half-open intervals.
func TestScoreRules(t *testing.T) {
	q := volumeQuestion()
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"below first bound", "0.5", 100},
		{"min is inclusive", "1", 80},
		{"max is exclusive", "9.999", 80},
		{"next bucket at boundary", "10", 60},
		{"unbounded upper", "1e9", 20},
		{"negative falls in open lower", "-3", 100},
		{"surrounding spaces", "  50 ", 20},
		{"not a number", "abc", 0},
		{"empty", "", 0},
		{"infinity", "Inf", 0},
		{"nan", "NaN", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScoreQuestion(q, schema.TextAnswer(tt.input)))
		})
	}
}

// TestScoreRulesNoMatch tests that a gap in the rule table scores 0.
func TestScoreRulesNoMatch(t *testing.T) {
	q := &schema.Question{
		Type:  schema.InputQuestion,
		Rules: []schema.ScoringRule{{Min: schema.Float(0), Max: schema.Float(5), Score: 50}},
	}
	assert.Equal(t, 0.0, ScoreQuestion(q, schema.TextAnswer("5")))
	assert.Equal(t, 0.0, ScoreQuestion(q, schema.TextAnswer("-1")))
	assert.Equal(t, 50.0, ScoreQuestion(q, schema.TextAnswer("0")))
}

// TestScoreOption tests select option lookup.
func TestScoreOption(t *testing.T) {
	q := &schema.Question{
		Type: schema.SelectQuestion,
		Options: []schema.Option{
			{Value: "water", Score: 100},
			{Value: "class2", Score: 30},
		},
	}
	assert.Equal(t, 100.0, ScoreQuestion(q, schema.TextAnswer("water")))
	assert.Equal(t, 30.0, ScoreQuestion(q, schema.TextAnswer("class2")))
	assert.Equal(t, 0.0, ScoreQuestion(q, schema.TextAnswer("Water")))
	assert.Equal(t, 0.0, ScoreQuestion(q, schema.ChoicesAnswer("water")))
}

// TestScoreDeduction tests checkbox scoring on the 0-10 scale.
func TestScoreDeduction(t *testing.T) {
	q := hazardQuestion()
	tests := []struct {
		name     string
		answer   schema.Answer
		expected float64
	}{
		{"empty selection", schema.ChoicesAnswer(), 10},
		{"single penalty", schema.ChoicesAnswer("flammable"), 8.5},
		{"combined penalties", schema.ChoicesAnswer("explosive", "toxic"), 4.5},
		{"penalty sum over 100", schema.ChoicesAnswer("explosive", "toxic", "health", "flammable", "environmental"), 0},
		{"unknown values ignored", schema.ChoicesAnswer("radioactive", "flammable"), 8.5},
		{"repeated selection counts once", schema.Answer{Kind: schema.AnswerChoices, Choices: []string{"toxic", "toxic"}}, 7.5},
		{"wrong kind", schema.TextAnswer("toxic"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ScoreQuestion(q, tt.answer), 1e-9)
		})
	}
}

// TestScoreDeductionClampsAboveHundred tests penalty sums over 100.
func TestScoreDeductionClampsAboveHundred(t *testing.T) {
	q := &schema.Question{
		Type:    schema.CheckboxQuestion,
		Scale:   schema.ScaleTen,
		Options: []schema.Option{{Value: "a", Score: 70}, {Value: "b", Score: 60}},
	}
	assert.Equal(t, 0.0, ScoreQuestion(q, schema.ChoicesAnswer("a", "b")))
}

// TestScoreFormula tests multi-input parsing and dispatch.
func TestScoreFormula(t *testing.T) {
	tests := []struct {
		name     string
		id       schema.FormulaID
		fields   map[string]string
		expected float64
	}{
		{"economic burden zero", schema.EconomicBurden, map[string]string{"cost": "0", "time": "0"}, 100},
		{"thermal at boundary", schema.ThermalRunaway, map[string]string{"tOp": "0", "deltaT": "35"}, 0},
		{"thermal above boundary", schema.ThermalRunaway, map[string]string{"tOp": "0", "deltaT": "35.0001"}, 100},
		{"missing field", schema.EconomicBurden, map[string]string{"cost": "0"}, 0},
		{"unparsable field", schema.EconomicBurden, map[string]string{"cost": "cheap", "time": "0"}, 0},
		{"empty field", schema.EconomicBurden, map[string]string{"cost": "", "time": "0"}, 0},
		{"extra fields ignored", schema.EconomicBurden, map[string]string{"cost": "0", "time": "0", "note": "x"}, 100},
		{"clamped above 100", schema.SensitivityLinearity, map[string]string{"r2": "1", "lod": "0", "creq": "1"}, 100},
		{"clamped below 0", schema.MinimizationSensitivity, map[string]string{"wasteRatio": "2", "S": "0"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := formulaQuestion(tt.id)
			assert.InDelta(t, tt.expected, ScoreQuestion(q, schema.FieldsAnswer(tt.fields)), 1e-9)
		})
	}
}

// TestScoreReagents tests the list-based multi-reagent hazard index.
func TestScoreReagents(t *testing.T) {
	q := formulaQuestion(schema.MultiReagentHazard)

	a, err := schema.ParseRecord(`[{"mass":1,"hcodes":2}]`, true)
	require.NoError(t, err)
	assert.InDelta(t, 100*math.Exp(-3), ScoreQuestion(q, a), 1e-9)

	wrapped, err := schema.ParseRecord(`{"reagents":[{"mass":"0","hcodes":"4"},{"mass":"2","hcodes":"0"}]}`, true)
	require.NoError(t, err)
	assert.Equal(t, 100.0, ScoreQuestion(q, wrapped))

	bad := schema.RowsAnswer([]map[string]string{{"mass": "1", "hcodes": "2"}, {"mass": "x", "hcodes": "1"}})
	assert.Equal(t, 0.0, ScoreQuestion(q, bad))

	assert.Equal(t, 0.0, ScoreQuestion(q, schema.RowsAnswer(nil)))

	single, err := schema.ParseRecord(`{"mass":1,"hcodes":2}`, true)
	require.NoError(t, err)
	assert.InDelta(t, 100*math.Exp(-3), ScoreQuestion(q, single), 1e-9)

	withNotes, err := schema.ParseRecord(`{"notes":[],"reagents":[{"mass":1,"hcodes":2}]}`, true)
	require.NoError(t, err)
	assert.InDelta(t, 100*math.Exp(-3), ScoreQuestion(q, withNotes), 1e-9)

	fields := schema.FieldsAnswer(map[string]string{"mass": "1", "hcodes": "2"})
	assert.Equal(t, 0.0, ScoreQuestion(q, fields), "repeating questions score rows only")
}

// TestScoreQuestionUnanswered tests empty and nil inputs.
func TestScoreQuestionUnanswered(t *testing.T) {
	assert.Equal(t, 0.0, ScoreQuestion(nil, schema.TextAnswer("5")))
	assert.Equal(t, 0.0, ScoreQuestion(volumeQuestion(), schema.Answer{Kind: schema.AnswerEmpty}))
	assert.Equal(t, 0.0, ScoreQuestion(&schema.Question{Type: "slider"}, schema.TextAnswer("5")))
	assert.Equal(t, 0.0, ScoreQuestion(&schema.Question{Type: schema.MultiInputQuestion, Formula: "unknown"},
		schema.FieldsAnswer(map[string]string{"x": "1"})))
}

// TestFormulaFields tests the formula metadata helpers.
func TestFormulaFields(t *testing.T) {
	ids := FormulaIDs()
	assert.Len(t, ids, 24)
	for _, id := range ids {
		fields, ok := FormulaFields(id)
		assert.True(t, ok, id)
		assert.GreaterOrEqual(t, len(fields), 2, id)
	}

	_, ok := FormulaFields("nope")
	assert.False(t, ok)
	assert.True(t, IsRepeatingFormula(schema.MultiReagentHazard))
	assert.False(t, IsRepeatingFormula(schema.EconomicBurden))
}

// TestRegistry tests lookups keyed by dimension and question.
func TestRegistry(t *testing.T) {
	dims := []schema.Dimension{
		{ID: "a", Modules: []schema.Module{{ID: "m", Questions: []schema.Question{*volumeQuestion()}}}},
		{ID: "b", Modules: []schema.Module{{ID: "m", Questions: []schema.Question{*hazardQuestion()}}}},
	}
	r := NewRegistry(dims)

	assert.Equal(t, 80.0, r.Score("a", "q1", schema.TextAnswer("5")))
	assert.Equal(t, 10.0, r.Score("b", "q1", schema.ChoicesAnswer()))
	assert.Equal(t, 0.0, r.Score("c", "q1", schema.TextAnswer("5")))
	assert.Equal(t, 0.0, r.Score("a", "q9", schema.TextAnswer("5")))

	require.NotNil(t, r.Dimension("b"))
	assert.Nil(t, r.Dimension("c"))
	assert.Equal(t, schema.CheckboxQuestion, r.Question("b", "q1").Type)
	assert.Len(t, r.Dimensions(), 2)
}

// BenchmarkScoreQuestion benchmarks formula dispatch.
func BenchmarkScoreQuestion(b *testing.B) {
	q := formulaQuestion(schema.AtmosphericSafety)
	a := schema.FieldsAnswer(map[string]string{"tbp": "78", "nHalogen": "0", "nH": "6"})
	for b.Loop() {
		_ = ScoreQuestion(q, a)
	}
}
