package schema

import "time"

// QuestionReport is the scored view of one question.
type QuestionReport struct {
	DimensionID  string       `json:"dimension_id"`
	ModuleID     string       `json:"module_id"`
	QuestionID   string       `json:"question_id"`
	Title        string       `json:"title"`
	Type         QuestionType `json:"type"`
	Scale        Scale        `json:"scale"`
	Answered     bool         `json:"answered"`
	RawScore     float64      `json:"raw_score"`
	Weight       float64      `json:"weight"`
	Contribution float64      `json:"contribution"` // RawScore * Weight / 100
}

// DimensionReport is the scored view of one dimension.
type DimensionReport struct {
	DimensionID  string           `json:"dimension_id"`
	Name         string           `json:"name"`
	Selected     bool             `json:"selected"`
	Weight       float64          `json:"weight"`
	Score        float64          `json:"score"`
	Contribution float64          `json:"contribution"` // Score * Weight / 100 when selected
	Label        string           `json:"label"`
	Questions    []QuestionReport `json:"questions"`
}

// AssessmentReport is the full output of the aggregation engine.
// Every presentation layer renders from this and never recomputes scores.
type AssessmentReport struct {
	ProjectName  string            `json:"project_name,omitempty"`
	GeneratedAt  time.Time         `json:"generated_at"`
	OverallScore float64           `json:"overall_score"`
	Label        string            `json:"label"`
	Dimensions   []DimensionReport `json:"dimensions"`
	WeightCheck  WeightCheckResult `json:"weight_check"`
}

// CatalogRenderModel is the catalog view used by the dimensions command.
type CatalogRenderModel struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Dimensions  []CatalogRecord `json:"dimensions"`
}

// CatalogRecord flattens one question of the catalog for display.
type CatalogRecord struct {
	DimensionID   string  `json:"dimension_id"`
	DimensionName string  `json:"dimension_name"`
	DefaultWeight float64 `json:"default_weight"`
	ModuleID      string  `json:"module_id"`
	ModuleName    string  `json:"module_name"`
	QuestionID    string  `json:"question_id"`
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	Scale         string  `json:"scale"`
	Scoring       string  `json:"scoring"` // Rule, option or formula description
}

// Score labels from best to worst.
const (
	ExcellentLabel = "Excellent"
	GoodLabel      = "Good"
	FairLabel      = "Fair"
	PoorLabel      = "Poor"
)

// GetPlainLabel returns a plain text label for a score on the 0-100 scale.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 75:
		return ExcellentLabel
	case score >= 50:
		return GoodLabel
	case score >= 25:
		return FairLabel
	default:
		return PoorLabel
	}
}
