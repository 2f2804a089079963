package core

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gacscore/gacscore/internal/iocache"
	"github.com/gacscore/gacscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// resultRecorder collects autosave outcomes from the timer goroutine.
type resultRecorder struct {
	mu      sync.Mutex
	results []schema.SaveResult
}

func (r *resultRecorder) record(res schema.SaveResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *resultRecorder) snapshot() []schema.SaveResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]schema.SaveResult(nil), r.results...)
}

func setCalls(store *iocache.MockProjectStore, key string) []mock.Call {
	var calls []mock.Call
	for _, c := range store.Calls {
		if c.Method == "Set" && c.Arguments.String(0) == key {
			calls = append(calls, c)
		}
	}
	return calls
}

func TestAutosaverDebounce(t *testing.T) {
	s := newTestSession(t)
	store := &iocache.MockProjectStore{}
	store.On("Set", mock.Anything, mock.Anything, ProjectVersion, mock.Anything).Return(nil)

	rec := &resultRecorder{}
	saver := NewAutosaver(s, store, 100*time.Millisecond, rec.record)
	defer saver.Close()

	for i := range 10 {
		require.NoError(t, s.SaveAnswers("sample-prep", map[string]schema.Answer{
			"q1": schema.TextAnswer(fmt.Sprintf("%d", i)),
		}))
	}

	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(250 * time.Millisecond)
	require.Len(t, rec.snapshot(), 1)
	assert.True(t, rec.snapshot()[0].Success)
	assert.Equal(t, "project/default", rec.snapshot()[0].Key)

	// One consolidated write plus one per dimension.
	store.AssertNumberOfCalls(t, "Set", 1+len(DefaultRegistry().Dimensions()))

	calls := setCalls(store, "project/default")
	require.Len(t, calls, 1)
	var state schema.ProjectState
	require.NoError(t, json.Unmarshal(calls[0].Arguments.Get(1).([]byte), &state))
	assert.JSONEq(t, `"9"`, string(state.AllAnswers["sample-prep"]["q1"]))
	assert.Equal(t, []string{"sample-prep", "energy"}, state.SelectedDimensions)
	assert.False(t, state.SavedAt.IsZero())
}

func TestAutosaverFailureKeepsSession(t *testing.T) {
	s := newTestSession(t)
	store := &iocache.MockProjectStore{}
	store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	rec := &resultRecorder{}
	saver := NewAutosaver(s, store, time.Hour, rec.record)
	require.NoError(t, s.SaveAnswers("energy", map[string]schema.Answer{"q2": schema.TextAnswer("portable")}))

	result := saver.Flush()
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, assert.AnError.Error())
	require.Len(t, rec.snapshot(), 1)

	// The first failing write stops the rest.
	store.AssertNumberOfCalls(t, "Set", 1)
	a, ok := s.Answer("energy", "q2")
	require.True(t, ok)
	assert.Equal(t, schema.TextAnswer("portable"), a)

	// Flush cancelled the pending timer, so Close has nothing left to write.
	assert.True(t, saver.Close().Success)
	store.AssertNumberOfCalls(t, "Set", 1)
}

func TestAutosaverCloseWritesPending(t *testing.T) {
	s := newTestSession(t)
	store := &iocache.MockProjectStore{}
	store.On("Set", mock.Anything, mock.Anything, ProjectVersion, mock.Anything).Return(nil)

	saver := NewAutosaver(s, store, time.Hour, nil)
	s.SetName("lab-a")

	result := saver.Close()
	assert.True(t, result.Success)
	assert.Equal(t, "project/lab-a", result.Key)
	assert.Len(t, setCalls(store, "project/lab-a"), 1)

	// Detached: further edits do not schedule writes.
	s.SetName("lab-b")
	assert.True(t, saver.Close().Success)
	assert.Empty(t, setCalls(store, "project/lab-b"))
}

func TestAutosaverCloseWithoutEdits(t *testing.T) {
	s := newTestSession(t)
	store := &iocache.MockProjectStore{}

	saver := NewAutosaver(s, store, time.Hour, nil)
	assert.True(t, saver.Close().Success)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
