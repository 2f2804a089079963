package parquet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gacscore/gacscore/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRuns() []schema.AssessmentRunRecord {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []schema.AssessmentRunRecord{
		{RunID: 1, ProjectName: "lab-a", RunTime: now, SelectedDimensions: "economy,energy", OverallScore: 72.5, WeightsValid: true},
		{RunID: 2, ProjectName: "lab-b", RunTime: now.Add(time.Hour), SelectedDimensions: "safety", OverallScore: 12, WeightsValid: false},
	}
}

func sampleScores() []schema.QuestionScoreRecord {
	return []schema.QuestionScoreRecord{
		{RunID: 1, DimensionID: "economy", QuestionID: "q1", QuestionType: "multi-input", Scale: "percent", RawScore: 100, Weight: 25, Contribution: 25},
		{RunID: 1, DimensionID: "energy", QuestionID: "q4", QuestionType: "checkbox", Scale: "ten", RawScore: 8.5, Weight: 25, Contribution: 2.125},
	}
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"runs", new(AssessmentRun), []string{"run_id", "project_name", "run_time", "selected_dimensions", "overall_score", "weights_valid"}},
		{"scores", new(QuestionScore), []string{"run_id", "dimension_id", "question_id", "question_type", "scale", "raw_score", "weight", "contribution"}},
		{"report", new(ReportRow), []string{"dimension_id", "question_id", "raw_score", "question_weight", "overall_score", "selected_dimensions"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, col := range tt.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestAssessmentRunsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.parquet")
	data := ConvertAssessmentRunRecords(sampleRuns())
	require.NoError(t, WriteAssessmentRunsParquet(data, path))

	got, err := ReadFile[AssessmentRun](path)
	require.NoError(t, err)
	require.Len(t, got, len(data))
	for i := range data {
		assert.Equal(t, data[i].RunID, got[i].RunID)
		assert.Equal(t, data[i].ProjectName, got[i].ProjectName)
		assert.Equal(t, data[i].SelectedDimensions, got[i].SelectedDimensions)
		assert.InDelta(t, data[i].OverallScore, got[i].OverallScore, 1e-9)
		assert.Equal(t, data[i].WeightsValid, got[i].WeightsValid)
		assert.WithinDuration(t, data[i].RunTime, got[i].RunTime, time.Nanosecond)
	}
}

func TestQuestionScoresRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.parquet")
	data := ConvertQuestionScoreRecords(sampleScores())
	require.NoError(t, WriteQuestionScoresParquet(data, path))

	got, err := ReadFile[QuestionScore](path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestWriteEmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteAssessmentRunsParquet([]AssessmentRun{}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	got, err := ReadFile[AssessmentRun](path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteInvalidPath(t *testing.T) {
	err := WriteAssessmentRunsParquet(nil, filepath.Join(t.TempDir(), "missing", "runs.parquet"))
	assert.Error(t, err)
}

func TestConvertReport(t *testing.T) {
	report := schema.AssessmentReport{
		ProjectName:  "lab-a",
		OverallScore: 40,
		Label:        schema.FairLabel,
		WeightCheck:  schema.WeightCheckResult{Passed: true, Selected: []string{"economy"}},
		Dimensions: []schema.DimensionReport{
			{DimensionID: "economy", Selected: true, Weight: 100, Score: 40, Questions: []schema.QuestionReport{
				{QuestionID: "q1", Type: schema.MultiInputQuestion, Scale: schema.ScalePercent, Answered: true, RawScore: 80, Weight: 50, Contribution: 40},
				{QuestionID: "q2", Type: schema.InputQuestion, Scale: schema.ScalePercent, Weight: 50},
			}},
		},
	}

	rows := ConvertReport(report)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].SelectedDimensions)
	assert.Equal(t, "economy", *rows[0].SelectedDimensions)
	assert.Nil(t, rows[1].SelectedDimensions)
	assert.Equal(t, 40.0, rows[0].Contribution)
	assert.False(t, rows[1].Answered)

	var buf bytes.Buffer
	require.NoError(t, WriteReportRows(&buf, rows))
	assert.Positive(t, buf.Len())

	reader := parquet.NewGenericReader[ReportRow](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(2), reader.NumRows())
}
