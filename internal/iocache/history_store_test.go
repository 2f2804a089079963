package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/internal/parquet"
	"github.com/gacscore/gacscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistoryStore(t *testing.T) contract.HistoryStore {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRows(runID int64) []schema.QuestionScoreRecord {
	return []schema.QuestionScoreRecord{
		{RunID: runID, DimensionID: "energy", QuestionID: "q1", QuestionType: "input", Scale: "percent", RawScore: 80, Weight: 25, Contribution: 20},
		{RunID: runID, DimensionID: "energy", QuestionID: "q4", QuestionType: "checkbox", Scale: "ten", RawScore: 8, Weight: 25, Contribution: 2},
	}
}

func TestHistoryStoreRunLifecycle(t *testing.T) {
	store := newTestHistoryStore(t)
	runTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	runID, err := store.BeginRun("lab-a", runTime, []string{"energy", "economy"})
	require.NoError(t, err)
	assert.Positive(t, runID)

	require.NoError(t, store.RecordQuestionScores(runID, sampleRows(runID)))
	require.NoError(t, store.EndRun(runID, 42.5, true))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, "lab-a", runs[0].ProjectName)
	assert.True(t, runs[0].RunTime.Equal(runTime))
	assert.Equal(t, "energy,economy", runs[0].SelectedDimensions)
	assert.Equal(t, 42.5, runs[0].OverallScore)
	assert.True(t, runs[0].WeightsValid)

	scores, err := store.GetAllQuestionScores()
	require.NoError(t, err)
	assert.Equal(t, sampleRows(runID), scores)
}

func TestHistoryStoreEndRunMissing(t *testing.T) {
	store := newTestHistoryStore(t)
	assert.ErrorContains(t, store.EndRun(99, 10, false), "not found")
}

func TestHistoryStoreDuplicateScoresRollBack(t *testing.T) {
	store := newTestHistoryStore(t)
	runID, err := store.BeginRun("lab", time.Now(), nil)
	require.NoError(t, err)

	rows := append(sampleRows(runID), sampleRows(runID)[0])
	assert.Error(t, store.RecordQuestionScores(runID, rows))

	scores, err := store.GetAllQuestionScores()
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestHistoryStoreStatus(t *testing.T) {
	store := newTestHistoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[assessmentRunsTable])

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	id1, err := store.BeginRun("a", first, []string{"energy"})
	require.NoError(t, err)
	require.NoError(t, store.RecordQuestionScores(id1, sampleRows(id1)))
	id2, err := store.BeginRun("b", second, []string{"energy"})
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, id2, status.LastRunID)
	assert.True(t, status.LastRunTime.Equal(second))
	assert.True(t, status.OldestRunTime.Equal(first))
	assert.Equal(t, 2, status.TotalQuestions)
}

func TestHistoryStoreNoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun("lab", time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), runID)
	assert.NoError(t, store.RecordQuestionScores(runID, sampleRows(runID)))
	assert.NoError(t, store.EndRun(runID, 1, true))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestExecuteHistoryExport(t *testing.T) {
	store := newTestHistoryStore(t)
	runID, err := store.BeginRun("lab", time.Now(), []string{"energy"})
	require.NoError(t, err)
	require.NoError(t, store.RecordQuestionScores(runID, sampleRows(runID)))
	require.NoError(t, store.EndRun(runID, 22, false))

	out := filepath.Join(t.TempDir(), "history")
	require.NoError(t, ExecuteHistoryExport(store, out))

	runs, err := parquet.ReadFile[parquet.AssessmentRun](out + ".assessment_runs.parquet")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "lab", runs[0].ProjectName)

	scores, err := parquet.ReadFile[parquet.QuestionScore](out + ".question_scores.parquet")
	require.NoError(t, err)
	assert.Len(t, scores, 2)
}

func TestExecuteHistoryExportErrors(t *testing.T) {
	store := newTestHistoryStore(t)
	assert.ErrorContains(t, ExecuteHistoryExport(store, ""), "--output-file is required")
	assert.ErrorContains(t, ExecuteHistoryExport(store, filepath.Join(t.TempDir(), "x")), "no assessment history")
	assert.Error(t, ExecuteHistoryExport(nil, "x"))
}

func TestExecuteHistoryExportWithMock(t *testing.T) {
	store := &MockHistoryStore{}
	store.On("GetStatus").Return(schema.HistoryStatus{Backend: "mysql", TotalRuns: 1}, nil)
	store.On("GetAllRuns").Return(nil, assert.AnError)

	err := ExecuteHistoryExport(store, filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, assert.AnError)
	store.AssertExpectations(t)
}
