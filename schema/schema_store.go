package schema

import (
	"encoding/json"
	"time"
)

// DimensionState is the persisted shape of a single dimension.
// Answers keep their encoded form so that the store stays an opaque blob.
type DimensionState struct {
	Answers         map[string]json.RawMessage `json:"answers"`
	QuestionWeights map[string]float64         `json:"questionWeights"`
	QuestionScores  map[string]float64         `json:"questionScores"`
	Score           float64                    `json:"score"`
}

// ProjectState is the consolidated project file. Every field is optional on load.
type ProjectState struct {
	Name               string                                `json:"name,omitempty"`
	SelectedDimensions []string                              `json:"selectedDimensions"`
	CustomWeights      map[string]float64                    `json:"customWeights"`
	Scores             map[string]float64                    `json:"scores"`
	AllAnswers         map[string]map[string]json.RawMessage `json:"allAnswers"`
	Dimensions         map[string]DimensionState             `json:"dimensions,omitempty"`
	TotalScore         float64                               `json:"totalScore"`
	SavedAt            time.Time                             `json:"savedAt,omitzero"`
}

// SaveResult is the non-fatal outcome of a persistence write.
type SaveResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Key     string `json:"key,omitempty"`
}

// StoreStatus represents the status of the project store.
type StoreStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the assessment history store.
type HistoryStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalRuns      int              `json:"total_runs"`
	LastRunID      int64            `json:"last_run_id"`
	LastRunTime    time.Time        `json:"last_run_time"`
	OldestRunTime  time.Time        `json:"oldest_run_time"`
	TotalQuestions int              `json:"total_questions"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}

// AssessmentRunRecord represents a row from the gacscore_assessment_runs table.
type AssessmentRunRecord struct {
	RunID              int64
	ProjectName        string
	RunTime            time.Time
	SelectedDimensions string // comma separated
	OverallScore       float64
	WeightsValid       bool
}

// QuestionScoreRecord represents a row from the gacscore_question_scores table.
type QuestionScoreRecord struct {
	RunID        int64
	DimensionID  string
	QuestionID   string
	QuestionType string
	Scale        string
	RawScore     float64
	Weight       float64
	Contribution float64
}
