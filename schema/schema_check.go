package schema

// WeightCheckResult holds the outcome of the weight validation gate.
// A failed check is a value for the caller to surface, never an error.
type WeightCheckResult struct {
	Passed     bool                   `json:"passed"`
	Total      float64                `json:"total"`    // Sum of selected dimension weights
	Delta      float64                `json:"delta"`    // Amount to add to reach 100
	Message    string                 `json:"message"`  // Empty when passed
	Selected   []string               `json:"selected"` // Dimensions included in the check
	Tolerance  float64                `json:"tolerance"`
	Dimensions []DimensionWeightCheck `json:"dimensions"`
}

// DimensionWeightCheck holds the question-weight sum check for one dimension.
type DimensionWeightCheck struct {
	DimensionID string  `json:"dimension_id"`
	Passed      bool    `json:"passed"`
	Total       float64 `json:"total"`
	Delta       float64 `json:"delta"`
}
