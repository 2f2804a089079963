// Package parquet provides data structures and functions for exporting gacscore
// assessment data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gacscore/gacscore/schema"
	"github.com/parquet-go/parquet-go"
)

// AssessmentRun represents a single recorded assessment run.
// This struct maps to the gacscore_assessment_runs database table.
type AssessmentRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// ProjectName is the project the run scored
	ProjectName string `parquet:"project_name,snappy"`

	// RunTime is when the run was recorded (stored as TIMESTAMP with nanosecond precision)
	RunTime time.Time `parquet:"run_time,snappy"`

	// SelectedDimensions is the comma separated selection at run time
	SelectedDimensions string `parquet:"selected_dimensions,snappy"`

	// OverallScore is the weighted overall score
	OverallScore float64 `parquet:"overall_score,snappy"`

	// WeightsValid records whether the weight gate passed
	WeightsValid bool `parquet:"weights_valid,snappy"`
}

// QuestionScore represents the score of one question within a run.
// This struct maps to the gacscore_question_scores database table.
type QuestionScore struct {
	RunID        int64   `parquet:"run_id,snappy"`
	DimensionID  string  `parquet:"dimension_id,snappy"`
	QuestionID   string  `parquet:"question_id,snappy"`
	QuestionType string  `parquet:"question_type,snappy"`
	Scale        string  `parquet:"scale,snappy"`
	RawScore     float64 `parquet:"raw_score,snappy"`
	Weight       float64 `parquet:"weight,snappy"`
	Contribution float64 `parquet:"contribution,snappy"`
}

// ReportRow is one question of a report flattened together with its dimension.
// It backs the parquet output mode of the score command.
type ReportRow struct {
	ProjectName        string    `parquet:"project_name,snappy"`
	GeneratedAt        time.Time `parquet:"generated_at,snappy"`
	DimensionID        string    `parquet:"dimension_id,snappy"`
	DimensionSelected  bool      `parquet:"dimension_selected,snappy"`
	DimensionWeight    float64   `parquet:"dimension_weight,snappy"`
	DimensionScore     float64   `parquet:"dimension_score,snappy"`
	ModuleID           string    `parquet:"module_id,snappy"`
	QuestionID         string    `parquet:"question_id,snappy"`
	QuestionType       string    `parquet:"question_type,snappy"`
	Scale              string    `parquet:"scale,snappy"`
	Answered           bool      `parquet:"answered,snappy"`
	RawScore           float64   `parquet:"raw_score,snappy"`
	QuestionWeight     float64   `parquet:"question_weight,snappy"`
	Contribution       float64   `parquet:"contribution,snappy"`
	OverallScore       float64   `parquet:"overall_score,snappy"`
	OverallLabel       string    `parquet:"overall_label,snappy"`
	WeightCheckPassed  bool      `parquet:"weight_check_passed,snappy"`
	SelectedDimensions *string   `parquet:"selected_dimensions,optional,snappy"`
}

// WriteAssessmentRunsParquet writes a slice of AssessmentRun structs to a Parquet file.
func WriteAssessmentRunsParquet(data []AssessmentRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteQuestionScoresParquet writes a slice of QuestionScore structs to a Parquet file.
func WriteQuestionScoresParquet(data []QuestionScore, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteReportRows writes report rows to w.
func WriteReportRows(w io.Writer, rows []ReportRow) error {
	// The schema is automatically derived from the ReportRow struct tags
	writer := parquet.NewGenericWriter[ReportRow](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ReadFile reads every row of a Parquet file written by this package.
func ReadFile[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return rows[:n], nil
}

func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// ConvertAssessmentRunRecords converts schema.AssessmentRunRecord to AssessmentRun for Parquet export.
func ConvertAssessmentRunRecords(records []schema.AssessmentRunRecord) []AssessmentRun {
	result := make([]AssessmentRun, len(records))
	for i, record := range records {
		result[i] = AssessmentRun{
			RunID:              record.RunID,
			ProjectName:        record.ProjectName,
			RunTime:            record.RunTime,
			SelectedDimensions: record.SelectedDimensions,
			OverallScore:       record.OverallScore,
			WeightsValid:       record.WeightsValid,
		}
	}
	return result
}

// ConvertQuestionScoreRecords converts schema.QuestionScoreRecord to QuestionScore for Parquet export.
func ConvertQuestionScoreRecords(records []schema.QuestionScoreRecord) []QuestionScore {
	result := make([]QuestionScore, len(records))
	for i, record := range records {
		result[i] = QuestionScore(record)
	}
	return result
}

// ConvertReport flattens a report into one row per question.
// The selection is only set on the first row of each report to keep files small.
func ConvertReport(report schema.AssessmentReport) []ReportRow {
	var rows []ReportRow
	selected := strings.Join(report.WeightCheck.Selected, ",")
	for _, d := range report.Dimensions {
		for _, q := range d.Questions {
			row := ReportRow{
				ProjectName:       report.ProjectName,
				GeneratedAt:       report.GeneratedAt,
				DimensionID:       d.DimensionID,
				DimensionSelected: d.Selected,
				DimensionWeight:   d.Weight,
				DimensionScore:    d.Score,
				ModuleID:          q.ModuleID,
				QuestionID:        q.QuestionID,
				QuestionType:      string(q.Type),
				Scale:             string(q.Scale),
				Answered:          q.Answered,
				RawScore:          q.RawScore,
				QuestionWeight:    q.Weight,
				Contribution:      q.Contribution,
				OverallScore:      report.OverallScore,
				OverallLabel:      report.Label,
				WeightCheckPassed: report.WeightCheck.Passed,
			}
			if len(rows) == 0 {
				row.SelectedDimensions = &selected
			}
			rows = append(rows, row)
		}
	}
	return rows
}
