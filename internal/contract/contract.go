// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"errors"
	"time"

	"github.com/gacscore/gacscore/schema"
)

// ErrNotFound is returned by stores when a key or run does not exist.
var ErrNotFound = errors.New("not found")

// StoreManager defines the interface for managing the persistence stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetProjectStore() ProjectStore
	GetHistoryStore() HistoryStore
}

// ProjectStore defines the interface for the opaque project blob store.
// Values are consolidated project files or per-dimension states encoded as JSON.
type ProjectStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	Delete(key string) error
	List(prefix string) ([]string, error)
	GetStatus() (schema.StoreStatus, error)
	Close() error
}

// HistoryStore defines the interface for recording scored assessment runs.
type HistoryStore interface {
	// BeginRun creates a new assessment run and returns its unique ID
	BeginRun(projectName string, runTime time.Time, selected []string) (int64, error)

	// RecordQuestionScores stores the scored questions of a run
	RecordQuestionScores(runID int64, rows []schema.QuestionScoreRecord) error

	// EndRun updates the run with the overall score and gate outcome
	EndRun(runID int64, overall float64, weightsValid bool) error

	// GetAllRuns returns every recorded run ordered by id
	GetAllRuns() ([]schema.AssessmentRunRecord, error)

	// GetAllQuestionScores returns every recorded question score ordered by run
	GetAllQuestionScores() ([]schema.QuestionScoreRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
