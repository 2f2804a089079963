package iocache

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/schema"
)

// Table names for assessment history.
const (
	assessmentRunsTable = "gacscore_assessment_runs"
	questionScoresTable = "gacscore_question_scores"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
// The schema is migrated to the latest version before the store is returned.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	migrateDB, err := openDatabase(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}
	if err := ensureHistorySchema(migrateDB, backend); err != nil {
		return nil, err
	}

	db, err := openDatabase(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}
	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// BeginRun creates a new assessment run and returns its unique ID.
// The none backend returns 0.
func (hs *HistoryStoreImpl) BeginRun(projectName string, runTime time.Time, selected []string) (int64, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(assessmentRunsTable, hs.backend)
	selectedStr := strings.Join(selected, ",")

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (project_name, run_time, selected_dimensions) VALUES ($1, $2, $3) RETURNING run_id`, quotedTableName)
		if err := hs.db.QueryRow(query, projectName, runTime, selectedStr).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to insert assessment run: %w", err)
		}
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (project_name, run_time, selected_dimensions) VALUES (?, ?, ?)`, quotedTableName)
		result, err := hs.db.Exec(query, projectName, formatTime(runTime, hs.backend), selectedStr)
		if err != nil {
			return 0, fmt.Errorf("failed to insert assessment run: %w", err)
		}
		if runID, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to read run id: %w", err)
		}
	}
	return runID, nil
}

// RecordQuestionScores stores the per-question rows of a run in one transaction.
func (hs *HistoryStoreImpl) RecordQuestionScores(runID int64, rows []schema.QuestionScoreRecord) error {
	if hs.backend == schema.NoneBackend || hs.db == nil || len(rows) == 0 {
		return nil
	}

	args := make([]string, 8)
	for i := range args {
		args[i] = placeholder(hs.backend, i+1)
	}
	query := fmt.Sprintf(`INSERT INTO %s (run_id, dimension_id, question_id, question_type, scale, raw_score, weight, contribution)
		VALUES (%s)`, quoteTableName(questionScoresTable, hs.backend), strings.Join(args, ", "))

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rows {
		if _, err := stmt.Exec(runID, r.DimensionID, r.QuestionID, r.QuestionType, r.Scale, r.RawScore, r.Weight, r.Contribution); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert score for %s/%s: %w", r.DimensionID, r.QuestionID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit question scores: %w", err)
	}
	return nil
}

// EndRun stores the overall score and gate outcome of a run.
func (hs *HistoryStoreImpl) EndRun(runID int64, overall float64, weightsValid bool) error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	query := fmt.Sprintf(`UPDATE %s SET end_time = %s, overall_score = %s, weights_valid = %s WHERE run_id = %s`,
		quoteTableName(assessmentRunsTable, hs.backend),
		placeholder(hs.backend, 1), placeholder(hs.backend, 2), placeholder(hs.backend, 3), placeholder(hs.backend, 4))
	result, err := hs.db.Exec(query, formatTime(time.Now(), hs.backend), overall, weightsValid, runID)
	if err != nil {
		return fmt.Errorf("failed to update assessment run: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("assessment run %d not found", runID)
	}
	return nil
}

// GetAllRuns retrieves all assessment runs ordered by ID.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.AssessmentRunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, project_name, run_time, selected_dimensions, overall_score, weights_valid FROM %s ORDER BY run_id`,
		quoteTableName(assessmentRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessment runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AssessmentRunRecord
	for rows.Next() {
		var record schema.AssessmentRunRecord
		runTime := timeScanner{backend: hs.backend}
		if err := rows.Scan(&record.RunID, &record.ProjectName, runTime.target(), &record.SelectedDimensions,
			&record.OverallScore, &record.WeightsValid); err != nil {
			return nil, fmt.Errorf("failed to scan assessment run: %w", err)
		}
		if record.RunTime, err = runTime.value(); err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessment runs: %w", err)
	}
	return results, nil
}

// GetAllQuestionScores retrieves all question score rows ordered by run and question.
func (hs *HistoryStoreImpl) GetAllQuestionScores() ([]schema.QuestionScoreRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, dimension_id, question_id, question_type, scale, raw_score, weight, contribution
		FROM %s ORDER BY run_id, dimension_id, question_id`, quoteTableName(questionScoresTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query question scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.QuestionScoreRecord
	for rows.Next() {
		var r schema.QuestionScoreRecord
		if err := rows.Scan(&r.RunID, &r.DimensionID, &r.QuestionID, &r.QuestionType, &r.Scale,
			&r.RawScore, &r.Weight, &r.Contribution); err != nil {
			return nil, fmt.Errorf("failed to scan question score: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question scores: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(assessmentRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		last := timeScanner{backend: hs.backend}
		lastQuery := fmt.Sprintf("SELECT run_id, run_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)
		if err := hs.db.QueryRow(lastQuery).Scan(&status.LastRunID, last.target()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		var err error
		if status.LastRunTime, err = last.value(); err != nil {
			return status, err
		}

		oldest := timeScanner{backend: hs.backend}
		oldestQuery := fmt.Sprintf("SELECT run_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)
		if err := hs.db.QueryRow(oldestQuery).Scan(oldest.target()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if status.OldestRunTime, err = oldest.value(); err != nil {
			return status, err
		}
	}

	for _, table := range []string{assessmentRunsTable, questionScoresTable} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalQuestions = int(status.TableSizes[questionScoresTable])

	return status, nil
}
