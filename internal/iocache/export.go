package iocache

import (
	"errors"
	"fmt"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/internal/parquet"
)

// ExecuteHistoryExport exports assessment history to Parquet files.
// Runs go to <outputFile>.assessment_runs.parquet and question rows to
// <outputFile>.question_scores.parquet.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no assessment history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total assessment runs: %d\n", status.TotalRuns)
	fmt.Printf("Total question records: %d\n", status.TotalQuestions)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve assessment runs: %w", err)
	}
	scores, err := store.GetAllQuestionScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve question scores: %w", err)
	}

	runsFile := outputFile + ".assessment_runs.parquet"
	if err := parquet.WriteAssessmentRunsParquet(parquet.ConvertAssessmentRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write assessment runs: %w", err)
	}
	fmt.Printf("Exported %d assessment runs to: %s\n", len(runs), runsFile)

	scoresFile := outputFile + ".question_scores.parquet"
	if err := parquet.WriteQuestionScoresParquet(parquet.ConvertQuestionScoreRecords(scores), scoresFile); err != nil {
		return fmt.Errorf("failed to write question scores: %w", err)
	}
	fmt.Printf("Exported %d question score records to: %s\n", len(scores), scoresFile)

	return nil
}
