package iocache

import (
	"time"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetProjectStore implements the StoreManager interface.
func (m *MockStoreManager) GetProjectStore() contract.ProjectStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ProjectStore)
	return store
}

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockProjectStore is a mock implementation of ProjectStore for testing.
type MockProjectStore struct {
	mock.Mock
}

var _ contract.ProjectStore = &MockProjectStore{} // Compile-time check

// Get implements the ProjectStore interface.
func (m *MockProjectStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the ProjectStore interface.
func (m *MockProjectStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Delete implements the ProjectStore interface.
func (m *MockProjectStore) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// List implements the ProjectStore interface.
func (m *MockProjectStore) List(prefix string) ([]string, error) {
	args := m.Called(prefix)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

// Close implements the ProjectStore interface.
func (m *MockProjectStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the ProjectStore interface.
func (m *MockProjectStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(projectName string, runTime time.Time, selected []string) (int64, error) {
	args := m.Called(projectName, runTime, selected)
	return args.Get(0).(int64), args.Error(1)
}

// RecordQuestionScores implements the HistoryStore interface.
func (m *MockHistoryStore) RecordQuestionScores(runID int64, rows []schema.QuestionScoreRecord) error {
	args := m.Called(runID, rows)
	return args.Error(0)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, overall float64, weightsValid bool) error {
	args := m.Called(runID, overall, weightsValid)
	return args.Error(0)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.AssessmentRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.AssessmentRunRecord)
	return runs, args.Error(1)
}

// GetAllQuestionScores implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllQuestionScores() ([]schema.QuestionScoreRecord, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.QuestionScoreRecord)
	return rows, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}
