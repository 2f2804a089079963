package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/schema"
)

// ScoreProject loads a project and returns its report without writing output.
func ScoreProject(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.AssessmentReport, error) {
	session, err := LoadSession(ctx, cfg, mgr)
	if err != nil {
		return schema.AssessmentReport{}, err
	}
	if !shouldSuppressHeader(ctx) {
		printHeader(session)
	}
	return session.BuildReport(cfg.Tolerance), nil
}

// ReadProjectFile reads a project saved as JSON.
func ReadProjectFile(path string) (schema.ProjectState, error) {
	var state schema.ProjectState
	data, err := os.ReadFile(path)
	if err != nil {
		return state, fmt.Errorf("failed to read project file: %w", err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}
	return state, nil
}

// WriteProjectFile writes a project as indented JSON.
func WriteProjectFile(path string, state schema.ProjectState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProjectState reads a project from the store. A missing project yields an empty state.
func LoadProjectState(store contract.ProjectStore, name string) (schema.ProjectState, error) {
	state := schema.ProjectState{Name: name}
	if store == nil {
		return state, nil
	}
	key := contract.ProjectKey(name)
	data, version, _, err := store.Get(key)
	if errors.Is(err, contract.ErrNotFound) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if version != ProjectVersion {
		return state, fmt.Errorf("unsupported project version %d for %s", version, key)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return state, nil
}

// loadProjectState prefers an explicit project file over the project store.
func loadProjectState(cfg *contract.Config, mgr contract.StoreManager) (schema.ProjectState, error) {
	if cfg.ProjectPath != "" {
		return ReadProjectFile(cfg.ProjectPath)
	}
	var store contract.ProjectStore
	if mgr != nil {
		store = mgr.GetProjectStore()
	}
	return LoadProjectState(store, cfg.ResolvedProjectName())
}

// persistSession writes the session back to wherever it was loaded from.
func persistSession(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, session *AssessmentSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state := session.GetAllData()
	state.SavedAt = time.Now().UTC()
	if cfg.ProjectPath != "" {
		return WriteProjectFile(cfg.ProjectPath, state)
	}
	if mgr == nil || mgr.GetProjectStore() == nil {
		return errors.New("no project store configured")
	}
	if err := SaveProjectState(mgr.GetProjectStore(), state); err != nil {
		return err
	}
	contract.LogInfo("Saved project to %s", contract.ProjectKey(state.Name))
	return nil
}

// ExecuteProjectImport loads a project file into the project store.
func ExecuteProjectImport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, path string) error {
	state, err := ReadProjectFile(path)
	if err != nil {
		return err
	}
	session := NewSession(DefaultRegistry())
	if err := session.LoadAllData(state); err != nil {
		contract.LogWarn("Project loaded with warnings", err)
	}
	if cfg.ProjectName != "" || session.Name() == "" {
		session.SetName(cfg.ResolvedProjectName())
	}
	importCfg := cfg.Clone()
	importCfg.ProjectPath = ""
	return persistSession(ctx, importCfg, mgr, session)
}

// ExecuteProjectExport writes a stored project to a JSON file.
func ExecuteProjectExport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state, err := loadProjectState(cfg, mgr)
	if err != nil {
		return err
	}
	session := NewSession(DefaultRegistry())
	if err := session.LoadAllData(state); err != nil {
		contract.LogWarn("Project loaded with warnings", err)
	}
	out := session.GetAllData()
	out.SavedAt = state.SavedAt
	if err := WriteProjectFile(path, out); err != nil {
		return err
	}
	contract.LogInfo("Exported project %s to %s", out.Name, path)
	return nil
}

// ExecuteNew starts a project over: answers, weights, scores and the selection
// are cleared and the empty project is written back to its file or store entry.
// A project file that does not exist yet is created.
func ExecuteNew(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state, err := loadProjectState(cfg, mgr)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	session := NewSession(DefaultRegistry())
	if err := session.LoadAllData(state); err != nil {
		contract.LogWarn("Project loaded with warnings", err)
	}
	session.Reset()
	if cfg.ProjectName != "" || session.Name() == "" {
		session.SetName(cfg.ResolvedProjectName())
	}
	if err := applyConfig(session, cfg); err != nil {
		return err
	}
	if err := persistSession(ctx, cfg, mgr, session); err != nil {
		return err
	}
	contract.LogInfo("Started new project %q", session.Name())
	return nil
}

func printHeader(session *AssessmentSession) {
	name := session.Name()
	if name == "" {
		name = contract.DefaultProjectName
	}
	fmt.Fprintf(os.Stderr, "🔎 Scoring project %q across %d dimension(s)\n", name, len(session.Selected()))
}
