package catalog

import (
	"testing"

	"github.com/gacscore/gacscore/core/algo"
	"github.com/gacscore/gacscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidate tests that the built-in catalog is well formed.
func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

// TestCatalogShape tests dimension count, weights and formula coverage.
func TestCatalogShape(t *testing.T) {
	dims := Dimensions()
	require.Len(t, dims, 9)

	var total float64
	formulas := make(map[schema.FormulaID]int)
	types := make(map[schema.QuestionType]int)
	for _, d := range dims {
		total += d.DefaultWeight
		for _, q := range d.Questions() {
			types[q.Type]++
			if q.Type == schema.MultiInputQuestion {
				formulas[q.Formula]++
			}
		}
	}
	assert.Equal(t, 100.0, total)
	assert.Len(t, formulas, len(algo.FormulaIDs()))
	for id, n := range formulas {
		assert.Equal(t, 1, n, id)
	}
	for qt := range schema.ValidQuestionTypes {
		assert.Positive(t, types[qt], qt)
	}
	assert.Equal(t, IDs()[0], "sample-prep")
}

// TestLookup tests dimension and question lookups.
func TestLookup(t *testing.T) {
	d, ok := Lookup("green-ecology")
	require.True(t, ok)
	assert.Equal(t, "Green Ecology", d.Name)

	_, ok = Lookup("missing")
	assert.False(t, ok)

	q, ok := Question("green-ecology", "q3")
	require.True(t, ok)
	assert.Equal(t, schema.MultiReagentHazard, q.Formula)
	assert.True(t, q.Repeating)

	q, ok = Question("economy", "q1")
	require.True(t, ok)
	assert.Equal(t, schema.EconomicBurden, q.Formula)

	_, ok = Question("economy", "q9")
	assert.False(t, ok)
	_, ok = Question("missing", "q1")
	assert.False(t, ok)
}

// TestDimensionsReturnsCopy tests that callers cannot mutate the catalog.
func TestDimensionsReturnsCopy(t *testing.T) {
	dims := Dimensions()
	dims[0].Modules[0].Questions[0].Title = "changed"
	dims[0].DefaultWeight = 0

	again := Dimensions()
	assert.NotEqual(t, "changed", again[0].Modules[0].Questions[0].Title)
	assert.Equal(t, 12.0, again[0].DefaultWeight)
}

// TestValidateDimensions tests the structural checks on broken catalogs.
func TestValidateDimensions(t *testing.T) {
	good := schema.Question{
		ID: "q1", Type: schema.SelectQuestion, Scale: schema.ScalePercent,
		Options: []schema.Option{{Value: "a", Score: 1}},
	}
	tests := []struct {
		name    string
		dims    []schema.Dimension
		wantErr string
	}{
		{
			name: "valid",
			dims: []schema.Dimension{{ID: "d", DefaultWeight: 100, Modules: []schema.Module{{Questions: []schema.Question{good}}}}},
		},
		{
			name: "weights off",
			dims: []schema.Dimension{{ID: "d", DefaultWeight: 90, Modules: []schema.Module{{Questions: []schema.Question{good}}}}},
			wantErr: "sum to 90.00",
		},
		{
			name: "duplicate dimension",
			dims: []schema.Dimension{
				{ID: "d", DefaultWeight: 50, Modules: []schema.Module{{Questions: []schema.Question{good}}}},
				{ID: "d", DefaultWeight: 50, Modules: []schema.Module{{Questions: []schema.Question{good}}}},
			},
			wantErr: "duplicate dimension",
		},
		{
			name: "duplicate question",
			dims: []schema.Dimension{{ID: "d", DefaultWeight: 100, Modules: []schema.Module{
				{Questions: []schema.Question{good}}, {Questions: []schema.Question{good}},
			}}},
			wantErr: "duplicate question d/q1",
		},
		{
			name: "wrong scale",
			dims: []schema.Dimension{{ID: "d", DefaultWeight: 100, Modules: []schema.Module{{Questions: []schema.Question{
				{ID: "q1", Type: schema.CheckboxQuestion, Scale: schema.ScalePercent, Options: good.Options},
			}}}}},
			wantErr: "scale",
		},
		{
			name: "fields mismatch",
			dims: []schema.Dimension{{ID: "d", DefaultWeight: 100, Modules: []schema.Module{{Questions: []schema.Question{
				{ID: "q1", Type: schema.MultiInputQuestion, Scale: schema.ScalePercent, Formula: schema.EconomicBurden,
					Fields: []schema.FieldSpec{{Key: "time"}, {Key: "cost"}}},
			}}}}},
			wantErr: "do not match",
		},
		{
			name: "unknown formula",
			dims: []schema.Dimension{{ID: "d", DefaultWeight: 100, Modules: []schema.Module{{Questions: []schema.Question{
				{ID: "q1", Type: schema.MultiInputQuestion, Scale: schema.ScalePercent, Formula: "made-up"},
			}}}}},
			wantErr: "unknown formula",
		},
		{
			name:    "no questions",
			dims:    []schema.Dimension{{ID: "d", DefaultWeight: 100}},
			wantErr: "no questions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.dims)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
