package core

import (
	"context"
	"fmt"
	"math"
	"os"
	"slices"
	"time"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/schema"
)

// CheckWeights runs the weight validation gate over the selected dimensions.
// The top-level sum and each selected dimension's question sum must be 100
// within tolerance. A failure is reported in the result, never as an error.
func (s *AssessmentSession) CheckWeights(tolerance float64) schema.WeightCheckResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkWeights(tolerance)
}

func (s *AssessmentSession) checkWeights(tolerance float64) schema.WeightCheckResult {
	if tolerance <= 0 {
		tolerance = schema.WeightTolerance
	}
	result := schema.WeightCheckResult{
		Selected:  slices.Clone(s.selected),
		Tolerance: tolerance,
	}
	if len(s.selected) == 0 {
		result.Selected = []string{}
		result.Delta = 100
		result.Message = "no dimensions selected"
		return result
	}

	result.Total = s.weights.DimensionSum(s.selected)
	result.Delta = 100 - result.Total
	result.Passed = math.Abs(result.Delta) <= tolerance
	if !result.Passed {
		result.Message = fmt.Sprintf("selected dimension weights sum to %.2f%%, adjust by %+.2f%% to reach 100%%", result.Total, result.Delta)
	}

	for _, dimID := range s.selected {
		total := s.weights.Sum(dimID)
		dc := schema.DimensionWeightCheck{
			DimensionID: dimID,
			Total:       total,
			Delta:       100 - total,
			Passed:      math.Abs(100-total) <= tolerance,
		}
		if !dc.Passed && result.Passed {
			result.Passed = false
			result.Message = fmt.Sprintf("question weights of %s sum to %.2f%%, adjust by %+.2f%% to reach 100%%", dimID, dc.Total, dc.Delta)
		}
		result.Dimensions = append(result.Dimensions, dc)
	}
	return result
}

// ExecuteCheck runs the weight gate for CI/CD use.
// It prints the result and exits with a non-zero code when the gate fails.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	session, err := LoadSession(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	result := session.CheckWeights(cfg.Tolerance)
	printCheckResult(result, time.Since(start))
	if !result.Passed {
		os.Exit(1)
	}
	return nil
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(result schema.WeightCheckResult, duration time.Duration) {
	fmt.Println("Weight Check Results:")

	labels := []string{"Selected:", "Total:", "Tolerance:"}
	values := []any{
		len(result.Selected),
		fmt.Sprintf("%.2f%%", result.Total),
		fmt.Sprintf("±%.2f", result.Tolerance),
	}
	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()
	fmt.Printf("Checked %d dimension(s) in %v\n\n", len(result.Selected), duration)

	if result.Passed {
		fmt.Printf("✅ All weights sum to 100%%\n")
		return
	}
	fmt.Printf("❌ Weight check failed: %s\n", result.Message)
	for _, dc := range result.Dimensions {
		if dc.Passed {
			continue
		}
		fmt.Printf("  %s: %.2f%% (%+.2f%%)\n", dc.DimensionID, dc.Total, dc.Delta)
	}
}
