// Package core has core logic for assessment sessions, weighting and aggregation.
package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gacscore/gacscore/core/algo"
	"github.com/gacscore/gacscore/core/catalog"
	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/internal/outwriter"
	"github.com/gacscore/gacscore/schema"
)

// ExecutorFunc defines the function signature for executing project commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// DefaultRegistry returns the registry over the built-in catalog.
var DefaultRegistry = sync.OnceValue(func() *algo.Registry {
	return algo.NewRegistry(catalog.Dimensions())
})

// WeightsOptions controls the weights command.
type WeightsOptions struct {
	Normalize  bool
	Dimensions []string // Dimensions to normalize; empty means every dimension
	Write      bool
}

// LoadSession builds a session from the project file or the project store,
// then applies selection and weight overrides from the config.
// When nothing selects dimensions, every catalog dimension is selected.
func LoadSession(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*AssessmentSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	state, err := loadProjectState(cfg, mgr)
	if err != nil {
		return nil, err
	}

	session := NewSession(DefaultRegistry())
	if err := session.LoadAllData(state); err != nil {
		contract.LogWarn("Project loaded with warnings", err)
	}
	if cfg.ProjectName != "" {
		session.SetName(cfg.ProjectName)
	}
	if err := applyConfig(session, cfg); err != nil {
		return nil, err
	}
	return session, nil
}

// ExecuteScore scores a project and writes the report.
// A failed weight check is reported as a warning, not an error.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	session, err := LoadSession(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if !shouldSuppressHeader(ctx) {
		printHeader(session)
	}

	report := session.BuildReport(cfg.Tolerance)
	if !report.WeightCheck.Passed {
		contract.LogWarn("Weight check failed", errors.New(report.WeightCheck.Message))
	}

	if cfg.Record && mgr != nil {
		if err := RecordRun(mgr.GetHistoryStore(), report); err != nil {
			contract.LogWarn("Failed to record assessment run", err)
		}
	}
	if cfg.Save && mgr != nil {
		saver := NewAutosaver(session, mgr.GetProjectStore(), cfg.AutosaveDelay, nil)
		if result := saver.Flush(); result.Success {
			contract.LogInfo("Saved project to %s", result.Key)
		}
		saver.Close()
	}

	return outwriter.WriteReport(report, cfg, time.Since(start))
}

// ExecuteQuestion scores a single answer given on the command line.
func ExecuteQuestion(ctx context.Context, cfg *contract.Config, dimID, qID, raw string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	qr, err := ScoreQuestion(dimID, qID, raw)
	if err != nil {
		return err
	}
	return outwriter.WriteQuestion(qr, cfg)
}

// ScoreQuestion parses a raw answer and scores it against one catalog question.
// The report carries no weight since no session is involved.
func ScoreQuestion(dimID, qID, raw string) (schema.QuestionReport, error) {
	reg := DefaultRegistry()
	q := reg.Question(dimID, qID)
	if q == nil {
		return schema.QuestionReport{}, fmt.Errorf("unknown question %s/%s", dimID, qID)
	}
	answer, err := ParseAnswer(q, raw)
	if err != nil {
		return schema.QuestionReport{}, err
	}

	qr := schema.QuestionReport{
		DimensionID: dimID,
		QuestionID:  qID,
		Title:       q.Title,
		Type:        q.Type,
		Scale:       q.Scale,
		Answered:    !answer.IsEmpty() || answer.Kind == schema.AnswerChoices,
		RawScore:    reg.Score(dimID, qID, answer),
	}
	if m := reg.Dimension(dimID).ModuleOf(qID); m != nil {
		qr.ModuleID = m.ID
	}
	return qr, nil
}

// ExecuteWeights shows weights and optionally normalizes and persists them.
func ExecuteWeights(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, opts WeightsOptions) error {
	session, err := LoadSession(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	if opts.Normalize {
		targets := opts.Dimensions
		if len(targets) == 0 {
			targets = catalog.IDs()
			if err := session.NormalizeDimensionWeights(); err != nil {
				return err
			}
		}
		for _, dimID := range targets {
			if err := session.NormalizeQuestionWeights(dimID); err != nil {
				return err
			}
		}
	}

	if opts.Write {
		if err := persistSession(ctx, cfg, mgr, session); err != nil {
			return err
		}
	}
	return outwriter.WriteWeights(session.BuildReport(cfg.Tolerance), cfg)
}

// ExecuteDimensions writes the catalog of dimensions, modules and questions.
func ExecuteDimensions(ctx context.Context, cfg *contract.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return outwriter.WriteCatalog(BuildCatalogModel(), cfg)
}

// RecordRun stores a scored report as a history run.
// Only questions of selected dimensions are recorded.
func RecordRun(history contract.HistoryStore, report schema.AssessmentReport) error {
	if history == nil {
		return nil
	}
	runID, err := history.BeginRun(report.ProjectName, report.GeneratedAt, report.WeightCheck.Selected)
	if err != nil {
		return fmt.Errorf("failed to begin run: %w", err)
	}
	if runID == 0 {
		return nil // none backend
	}

	var rows []schema.QuestionScoreRecord
	for _, d := range report.Dimensions {
		if !d.Selected {
			continue
		}
		for _, q := range d.Questions {
			rows = append(rows, schema.QuestionScoreRecord{
				RunID:        runID,
				DimensionID:  q.DimensionID,
				QuestionID:   q.QuestionID,
				QuestionType: string(q.Type),
				Scale:        string(q.Scale),
				RawScore:     q.RawScore,
				Weight:       q.Weight,
				Contribution: q.Contribution,
			})
		}
	}
	if err := history.RecordQuestionScores(runID, rows); err != nil {
		return fmt.Errorf("failed to record question scores: %w", err)
	}
	if err := history.EndRun(runID, report.OverallScore, report.WeightCheck.Passed); err != nil {
		return fmt.Errorf("failed to end run: %w", err)
	}
	return nil
}

// ParseAnswer turns command line text into an answer for the question.
// Checkbox answers are comma separated or a JSON array; multi-input answers are JSON.
func ParseAnswer(q *schema.Question, raw string) (schema.Answer, error) {
	raw = strings.TrimSpace(raw)
	switch q.Type {
	case schema.CheckboxQuestion:
		if strings.HasPrefix(raw, "[") {
			return schema.DecodeAnswer(q, []byte(raw))
		}
		var values []string
		for v := range strings.SplitSeq(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		return schema.ChoicesAnswer(values...), nil
	case schema.MultiInputQuestion:
		if raw == "" {
			return schema.Answer{Kind: schema.AnswerEmpty}, nil
		}
		return schema.ParseRecord(raw, q.Repeating)
	default:
		return schema.TextAnswer(raw), nil
	}
}

// BuildCatalogModel flattens the catalog into one record per question.
func BuildCatalogModel() schema.CatalogRenderModel {
	model := schema.CatalogRenderModel{
		Title:       "Green Analytical Chemistry assessment catalog",
		Description: "Question scores roll up by question weight into dimension scores, and selected dimension scores roll up by dimension weight into the overall score.",
	}
	for _, d := range catalog.Dimensions() {
		for _, m := range d.Modules {
			for _, q := range m.Questions {
				model.Dimensions = append(model.Dimensions, schema.CatalogRecord{
					DimensionID:   d.ID,
					DimensionName: d.Name,
					DefaultWeight: d.DefaultWeight,
					ModuleID:      m.ID,
					ModuleName:    m.Name,
					QuestionID:    q.ID,
					Title:         q.Title,
					Type:          string(q.Type),
					Scale:         string(q.Scale),
					Scoring:       describeScoring(&q),
				})
			}
		}
	}
	return model
}

func describeScoring(q *schema.Question) string {
	switch q.Type {
	case schema.InputQuestion:
		parts := make([]string, 0, len(q.Rules))
		for _, r := range q.Rules {
			parts = append(parts, fmt.Sprintf("%s:%g", describeInterval(r), r.Score))
		}
		return strings.Join(parts, " ")
	case schema.SelectQuestion:
		parts := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			parts = append(parts, fmt.Sprintf("%s=%g", o.Value, o.Score))
		}
		return strings.Join(parts, " ")
	case schema.CheckboxQuestion:
		parts := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			parts = append(parts, fmt.Sprintf("%s=-%g", o.Value, o.Score))
		}
		return "10-Σ/10 " + strings.Join(parts, " ")
	case schema.MultiInputQuestion:
		keys := make([]string, len(q.Fields))
		for i, f := range q.Fields {
			keys[i] = f.Key
		}
		if q.Repeating {
			return fmt.Sprintf("%s([%s]...)", q.Formula, strings.Join(keys, ","))
		}
		return fmt.Sprintf("%s(%s)", q.Formula, strings.Join(keys, ","))
	default:
		return ""
	}
}

func describeInterval(r schema.ScoringRule) string {
	switch {
	case r.Min == nil && r.Max == nil:
		return "any"
	case r.Min == nil:
		return fmt.Sprintf("<%g", *r.Max)
	case r.Max == nil:
		return fmt.Sprintf(">=%g", *r.Min)
	default:
		return fmt.Sprintf("[%g,%g)", *r.Min, *r.Max)
	}
}

// applyConfig applies selection and weight overrides from the config.
func applyConfig(session *AssessmentSession, cfg *contract.Config) error {
	switch {
	case len(cfg.Selected) > 0:
		if err := session.SelectDimensions(cfg.Selected); err != nil {
			return err
		}
	case len(session.Selected()) == 0:
		if err := session.SelectDimensions(catalog.IDs()); err != nil {
			return err
		}
	}
	for _, dimID := range sortedKeys(cfg.DimensionWeights) {
		if err := session.SetDimensionWeight(dimID, cfg.DimensionWeights[dimID]); err != nil {
			return err
		}
	}
	for _, dimID := range sortedKeys(cfg.QuestionWeights) {
		if err := session.SetQuestionWeights(dimID, cfg.QuestionWeights[dimID]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
