package core

import (
	"fmt"
	"maps"
	"math"

	"github.com/gacscore/gacscore/core/algo"
)

// NormalizeWeights returns n weights that sum to exactly 100 when added in order.
// The first n-1 get floor(10000/n)/100 and the last takes the remainder.
func NormalizeWeights(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	base := math.Floor(10000/float64(n)) / 100
	sum := 0.0
	for i := range n - 1 {
		out[i] = base
		sum += base
	}
	out[n-1] = 100 - sum
	return out
}

// WeightManager holds question weights per dimension and the top-level dimension weights.
// It is not safe for concurrent use; AssessmentSession guards it.
type WeightManager struct {
	reg        *algo.Registry
	questions  map[string]map[string]float64
	dimensions map[string]float64
}

// NewWeightManager creates a manager over the registry's dimensions.
// Dimension weights start at each dimension's default weight.
func NewWeightManager(reg *algo.Registry) *WeightManager {
	w := &WeightManager{reg: reg}
	w.Reset()
	return w
}

// Reset drops all question weights and restores default dimension weights.
func (w *WeightManager) Reset() {
	w.questions = make(map[string]map[string]float64)
	w.dimensions = make(map[string]float64)
	for _, d := range w.reg.Dimensions() {
		w.dimensions[d.ID] = d.DefaultWeight
	}
}

// GetWeights returns a copy of the question weights of a dimension,
// seeding uniform defaults on first use. Unknown dimensions return nil.
func (w *WeightManager) GetWeights(dimID string) map[string]float64 {
	weights := w.seeded(dimID)
	if weights == nil {
		return nil
	}
	return maps.Clone(weights)
}

// Weight returns the weight of a single question, or 0 if it is unknown.
func (w *WeightManager) Weight(dimID, qID string) float64 {
	return w.seeded(dimID)[qID]
}

// SetWeight sets one question weight, clamped to [0,100].
func (w *WeightManager) SetWeight(dimID, qID string, value float64) error {
	return w.SetWeights(dimID, map[string]float64{qID: value})
}

// SetWeights merges question weights into a dimension, clamped to [0,100].
// Nothing is applied when any id is unknown.
func (w *WeightManager) SetWeights(dimID string, values map[string]float64) error {
	weights := w.seeded(dimID)
	if weights == nil {
		return fmt.Errorf("unknown dimension %q", dimID)
	}
	for qID := range values {
		if _, ok := weights[qID]; !ok {
			return fmt.Errorf("unknown question %s/%s", dimID, qID)
		}
	}
	for qID, v := range values {
		weights[qID] = clampWeight(v)
	}
	return nil
}

// Normalize resets the question weights of a dimension to the uniform split.
func (w *WeightManager) Normalize(dimID string) error {
	d := w.reg.Dimension(dimID)
	if d == nil {
		return fmt.Errorf("unknown dimension %q", dimID)
	}
	w.questions[dimID] = uniform(d.QuestionIDs())
	return nil
}

// Sum returns the question weight sum of a dimension, added in catalog order.
func (w *WeightManager) Sum(dimID string) float64 {
	d := w.reg.Dimension(dimID)
	if d == nil {
		return 0
	}
	weights := w.seeded(dimID)
	sum := 0.0
	for _, qID := range d.QuestionIDs() {
		sum += weights[qID]
	}
	return sum
}

// DimensionWeights returns a copy of all dimension weights.
func (w *WeightManager) DimensionWeights() map[string]float64 {
	return maps.Clone(w.dimensions)
}

// DimensionWeight returns the weight of one dimension, or 0 if it is unknown.
func (w *WeightManager) DimensionWeight(dimID string) float64 {
	return w.dimensions[dimID]
}

// SetDimensionWeight sets a dimension weight, clamped to [0,100].
func (w *WeightManager) SetDimensionWeight(dimID string, value float64) error {
	if w.reg.Dimension(dimID) == nil {
		return fmt.Errorf("unknown dimension %q", dimID)
	}
	w.dimensions[dimID] = clampWeight(value)
	return nil
}

// NormalizeDimensions splits 100 evenly over the given dimensions in order.
// Dimensions not listed keep their weights.
func (w *WeightManager) NormalizeDimensions(ids []string) error {
	for _, id := range ids {
		if w.reg.Dimension(id) == nil {
			return fmt.Errorf("unknown dimension %q", id)
		}
	}
	maps.Copy(w.dimensions, uniform(ids))
	return nil
}

// DimensionSum returns the weight sum of the given dimensions, added in order.
func (w *WeightManager) DimensionSum(ids []string) float64 {
	sum := 0.0
	for _, id := range ids {
		sum += w.dimensions[id]
	}
	return sum
}

// seeded returns the live weight map for a dimension, creating the uniform default if needed.
func (w *WeightManager) seeded(dimID string) map[string]float64 {
	if weights, ok := w.questions[dimID]; ok {
		return weights
	}
	d := w.reg.Dimension(dimID)
	if d == nil {
		return nil
	}
	weights := uniform(d.QuestionIDs())
	w.questions[dimID] = weights
	return weights
}

func uniform(ids []string) map[string]float64 {
	values := NormalizeWeights(len(ids))
	out := make(map[string]float64, len(ids))
	for i, id := range ids {
		out[id] = values[i]
	}
	return out
}

func clampWeight(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
