package core

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/schema"
)

// ProjectVersion is the version stored alongside every project blob.
const ProjectVersion = 1

// Autosaver coalesces session edits into debounced full-state writes.
// Every Touch restarts the quiescence timer; when it fires, the current
// snapshot is written to the store. Callers never wait on a write.
type Autosaver struct {
	session  *AssessmentSession
	store    contract.ProjectStore
	delay    time.Duration
	onResult func(schema.SaveResult)

	mu      sync.Mutex // guards timer, pending and closed
	timer   *time.Timer
	pending bool
	closed  bool

	writeMu sync.Mutex // serializes writes
}

// NewAutosaver creates an autosaver and hooks it to the session's change events.
// onResult may be nil.
func NewAutosaver(session *AssessmentSession, store contract.ProjectStore, delay time.Duration, onResult func(schema.SaveResult)) *Autosaver {
	if delay <= 0 {
		delay = contract.DefaultAutosaveDelay
	}
	a := &Autosaver{
		session:  session,
		store:    store,
		delay:    delay,
		onResult: onResult,
	}
	session.OnChange(a.Touch)
	return a
}

// Touch marks the session dirty and restarts the quiescence window.
func (a *Autosaver) Touch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.pending = true
	if a.timer == nil {
		a.timer = time.AfterFunc(a.delay, a.fire)
		return
	}
	a.timer.Reset(a.delay)
}

// Flush writes the current snapshot immediately and cancels any pending write.
func (a *Autosaver) Flush() schema.SaveResult {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.pending = false
	a.mu.Unlock()
	return a.write()
}

// Close detaches from the session, stops the timer and writes any pending edits.
// It returns a successful empty result when nothing was pending.
func (a *Autosaver) Close() schema.SaveResult {
	a.session.OnChange(nil)

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return schema.SaveResult{Success: true}
	}
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
	}
	pending := a.pending
	a.pending = false
	a.mu.Unlock()

	if !pending {
		return schema.SaveResult{Success: true}
	}
	return a.write()
}

func (a *Autosaver) fire() {
	a.mu.Lock()
	if !a.pending {
		a.mu.Unlock()
		return
	}
	a.pending = false
	a.mu.Unlock()
	a.write()
}

// write stores the consolidated project and one entry per dimension.
// Failures are logged and reported; the in-memory session is untouched.
func (a *Autosaver) write() schema.SaveResult {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	state := a.session.GetAllData()
	state.SavedAt = time.Now().UTC()
	result := schema.SaveResult{Key: contract.ProjectKey(state.Name)}
	if err := SaveProjectState(a.store, state); err != nil {
		contract.LogWarn("Autosave failed", err)
		result.Error = err.Error()
	} else {
		result.Success = true
	}
	if a.onResult != nil {
		a.onResult(result)
	}
	return result
}

// SaveProjectState writes a project under its consolidated key and per-dimension keys.
func SaveProjectState(store contract.ProjectStore, state schema.ProjectState) error {
	ts := time.Now().Unix()
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	key := contract.ProjectKey(state.Name)
	if err := store.Set(key, data, ProjectVersion, ts); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	for _, dimID := range slices.Sorted(maps.Keys(state.Dimensions)) {
		data, err := json.Marshal(state.Dimensions[dimID])
		if err != nil {
			return fmt.Errorf("failed to encode dimension %s: %w", dimID, err)
		}
		dimKey := contract.DimensionKey(state.Name, dimID)
		if err := store.Set(dimKey, data, ProjectVersion, ts); err != nil {
			return fmt.Errorf("failed to write %s: %w", dimKey, err)
		}
	}
	return nil
}
