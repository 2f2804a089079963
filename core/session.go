package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"sync"

	"github.com/gacscore/gacscore/core/algo"
	"github.com/gacscore/gacscore/schema"
)

// AssessmentSession owns the answers, weights and cached scores of one project.
// Every mutation recomputes the affected dimension and the overall score
// synchronously, then calls the change hook outside the lock.
type AssessmentSession struct {
	mu             sync.Mutex
	reg            *algo.Registry
	weights        *WeightManager
	answers        map[string]map[string]schema.Answer
	questionScores map[string]map[string]float64
	scores         map[string]float64
	selected       []string
	total          float64
	name           string
	onChange       func()
}

// NewSession creates an empty session over the registry.
func NewSession(reg *algo.Registry) *AssessmentSession {
	s := &AssessmentSession{
		reg:     reg,
		weights: NewWeightManager(reg),
	}
	s.clear()
	return s
}

// OnChange registers a hook called after every mutation. Pass nil to remove it.
func (s *AssessmentSession) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Registry returns the scoring registry of the session.
func (s *AssessmentSession) Registry() *algo.Registry {
	return s.reg
}

// Name returns the project name.
func (s *AssessmentSession) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetName sets the project name used for store keys.
func (s *AssessmentSession) SetName(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
	s.notify()
}

// Reset clears answers, weights, scores and the selection. The name is kept.
func (s *AssessmentSession) Reset() {
	s.mu.Lock()
	s.clear()
	s.mu.Unlock()
	s.notify()
}

// LoadAllData replaces the session with a possibly partial project state.
// Per-dimension answers in AllAnswers override those under Dimensions.
// Unknown dimensions and questions are dropped and malformed answers are
// kept as unscorable text; both are reported in the returned error while the
// rest of the state still loads. Loading does not fire the change hook.
func (s *AssessmentSession) LoadAllData(state schema.ProjectState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
	if state.Name != "" {
		s.name = state.Name
	}

	var warnings []error
	s.selected, warnings = s.filterDimensions(state.SelectedDimensions)

	for _, dimID := range slices.Sorted(maps.Keys(state.CustomWeights)) {
		if err := s.weights.SetDimensionWeight(dimID, state.CustomWeights[dimID]); err != nil {
			warnings = append(warnings, err)
		}
	}

	for _, dimID := range slices.Sorted(maps.Keys(state.Dimensions)) {
		ds := state.Dimensions[dimID]
		if s.reg.Dimension(dimID) == nil {
			warnings = append(warnings, fmt.Errorf("unknown dimension %q", dimID))
			continue
		}
		if len(ds.QuestionWeights) > 0 {
			warnings = append(warnings, s.loadQuestionWeights(dimID, ds.QuestionWeights)...)
		}
		warnings = append(warnings, s.storeRaw(dimID, ds.Answers)...)
	}

	for _, dimID := range slices.Sorted(maps.Keys(state.AllAnswers)) {
		if s.reg.Dimension(dimID) == nil {
			warnings = append(warnings, fmt.Errorf("unknown dimension %q", dimID))
			continue
		}
		warnings = append(warnings, s.storeRaw(dimID, state.AllAnswers[dimID])...)
	}

	for _, d := range s.reg.Dimensions() {
		s.recomputeDimension(d.ID)
	}
	s.recomputeTotal()
	return errors.Join(warnings...)
}

// GetAllData returns the consolidated project state.
func (s *AssessmentSession) GetAllData() schema.ProjectState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := schema.ProjectState{
		Name:               s.name,
		SelectedDimensions: slices.Clone(s.selected),
		CustomWeights:      s.weights.DimensionWeights(),
		Scores:             maps.Clone(s.scores),
		AllAnswers:         make(map[string]map[string]json.RawMessage),
		Dimensions:         make(map[string]schema.DimensionState),
		TotalScore:         s.total,
	}
	if state.SelectedDimensions == nil {
		state.SelectedDimensions = []string{}
	}
	for _, d := range s.reg.Dimensions() {
		ds := s.dimensionState(d.ID)
		state.Dimensions[d.ID] = ds
		if len(ds.Answers) > 0 {
			state.AllAnswers[d.ID] = ds.Answers
		}
	}
	return state
}

// DimensionState returns the persisted shape of one dimension.
func (s *AssessmentSession) DimensionState(dimID string) schema.DimensionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dimensionState(dimID)
}

// SaveAnswers merges answers into a dimension. Empty answers delete the stored one.
// Unknown questions are skipped and reported; the rest are saved.
func (s *AssessmentSession) SaveAnswers(dimID string, answers map[string]schema.Answer) error {
	s.mu.Lock()
	if s.reg.Dimension(dimID) == nil {
		s.mu.Unlock()
		return fmt.Errorf("unknown dimension %q", dimID)
	}
	var errs []error
	for _, qID := range slices.Sorted(maps.Keys(answers)) {
		if s.reg.Question(dimID, qID) == nil {
			errs = append(errs, fmt.Errorf("unknown question %s/%s", dimID, qID))
			continue
		}
		s.setAnswer(dimID, qID, answers[qID])
	}
	s.recomputeDimension(dimID)
	s.recomputeTotal()
	s.mu.Unlock()

	s.notify()
	return errors.Join(errs...)
}

// SaveRawAnswers decodes persisted answer forms against their questions and saves them.
func (s *AssessmentSession) SaveRawAnswers(dimID string, raw map[string]json.RawMessage) error {
	s.mu.Lock()
	if s.reg.Dimension(dimID) == nil {
		s.mu.Unlock()
		return fmt.Errorf("unknown dimension %q", dimID)
	}
	errs := s.storeRaw(dimID, raw)
	s.recomputeDimension(dimID)
	s.recomputeTotal()
	s.mu.Unlock()

	s.notify()
	return errors.Join(errs...)
}

// GetAnswers returns a copy of the answers of a dimension.
func (s *AssessmentSession) GetAnswers(dimID string) map[string]schema.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]schema.Answer, len(s.answers[dimID]))
	for qID, a := range s.answers[dimID] {
		out[qID] = a.Clone()
	}
	return out
}

// Answer returns the stored answer of one question.
func (s *AssessmentSession) Answer(dimID, qID string) (schema.Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.answers[dimID][qID]
	return a.Clone(), ok
}

// SetQuestionWeights merges question weights into a dimension and rescores it.
func (s *AssessmentSession) SetQuestionWeights(dimID string, weights map[string]float64) error {
	s.mu.Lock()
	if err := s.weights.SetWeights(dimID, weights); err != nil {
		s.mu.Unlock()
		return err
	}
	s.recomputeDimension(dimID)
	s.recomputeTotal()
	s.mu.Unlock()

	s.notify()
	return nil
}

// GetQuestionWeights returns the question weights of a dimension.
func (s *AssessmentSession) GetQuestionWeights(dimID string) map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weights.GetWeights(dimID)
}

// NormalizeQuestionWeights resets the question weights of a dimension to the uniform split.
func (s *AssessmentSession) NormalizeQuestionWeights(dimID string) error {
	s.mu.Lock()
	if err := s.weights.Normalize(dimID); err != nil {
		s.mu.Unlock()
		return err
	}
	s.recomputeDimension(dimID)
	s.recomputeTotal()
	s.mu.Unlock()

	s.notify()
	return nil
}

// QuestionWeightSum returns the ordered question weight sum of a dimension.
func (s *AssessmentSession) QuestionWeightSum(dimID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weights.Sum(dimID)
}

// SetScore overrides the cached score of a dimension until its answers or weights change.
func (s *AssessmentSession) SetScore(dimID string, score float64) error {
	s.mu.Lock()
	if s.reg.Dimension(dimID) == nil {
		s.mu.Unlock()
		return fmt.Errorf("unknown dimension %q", dimID)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		score = 0
	}
	s.scores[dimID] = score
	s.recomputeTotal()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Score returns the cached score of a dimension.
func (s *AssessmentSession) Score(dimID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scores[dimID]
}

// GetTotalScore returns the cached overall score.
func (s *AssessmentSession) GetTotalScore() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// SelectDimensions replaces the selection. Duplicates are dropped and unknown ids
// are skipped and reported.
func (s *AssessmentSession) SelectDimensions(ids []string) error {
	s.mu.Lock()
	selected, warnings := s.filterDimensions(ids)
	s.selected = selected
	s.recomputeTotal()
	s.mu.Unlock()

	s.notify()
	return errors.Join(warnings...)
}

// Selected returns the selected dimensions in selection order.
func (s *AssessmentSession) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.selected)
}

// SetDimensionWeight sets a top-level dimension weight.
func (s *AssessmentSession) SetDimensionWeight(dimID string, weight float64) error {
	s.mu.Lock()
	if err := s.weights.SetDimensionWeight(dimID, weight); err != nil {
		s.mu.Unlock()
		return err
	}
	s.recomputeTotal()
	s.mu.Unlock()

	s.notify()
	return nil
}

// DimensionWeights returns a copy of all dimension weights.
func (s *AssessmentSession) DimensionWeights() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weights.DimensionWeights()
}

// NormalizeDimensionWeights splits 100 evenly across the selected dimensions.
func (s *AssessmentSession) NormalizeDimensionWeights() error {
	s.mu.Lock()
	if err := s.weights.NormalizeDimensions(s.selected); err != nil {
		s.mu.Unlock()
		return err
	}
	s.recomputeTotal()
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *AssessmentSession) clear() {
	s.weights.Reset()
	s.answers = make(map[string]map[string]schema.Answer)
	s.questionScores = make(map[string]map[string]float64)
	s.scores = make(map[string]float64)
	s.selected = nil
	s.total = 0
}

func (s *AssessmentSession) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *AssessmentSession) filterDimensions(ids []string) ([]string, []error) {
	var out []string
	var warnings []error
	for _, id := range ids {
		if s.reg.Dimension(id) == nil {
			warnings = append(warnings, fmt.Errorf("unknown dimension %q", id))
			continue
		}
		if slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out, warnings
}

func (s *AssessmentSession) loadQuestionWeights(dimID string, weights map[string]float64) []error {
	var warnings []error
	known := make(map[string]float64, len(weights))
	for qID, w := range weights {
		if s.reg.Question(dimID, qID) == nil {
			warnings = append(warnings, fmt.Errorf("unknown question %s/%s", dimID, qID))
			continue
		}
		known[qID] = w
	}
	if err := s.weights.SetWeights(dimID, known); err != nil {
		warnings = append(warnings, err)
	}
	return warnings
}

func (s *AssessmentSession) storeRaw(dimID string, raw map[string]json.RawMessage) []error {
	var warnings []error
	for _, qID := range slices.Sorted(maps.Keys(raw)) {
		q := s.reg.Question(dimID, qID)
		if q == nil {
			warnings = append(warnings, fmt.Errorf("unknown question %s/%s", dimID, qID))
			continue
		}
		a, err := schema.DecodeAnswer(q, raw[qID])
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%s: %w", dimID, err))
		}
		s.setAnswer(dimID, qID, a)
	}
	return warnings
}

func (s *AssessmentSession) setAnswer(dimID, qID string, a schema.Answer) {
	if a.Kind == schema.AnswerEmpty || (a.IsEmpty() && a.Kind != schema.AnswerChoices) {
		delete(s.answers[dimID], qID)
		return
	}
	if s.answers[dimID] == nil {
		s.answers[dimID] = make(map[string]schema.Answer)
	}
	s.answers[dimID][qID] = a.Clone()
}

// recomputeDimension rescores every answered question of a dimension.
func (s *AssessmentSession) recomputeDimension(dimID string) {
	scores := make(map[string]float64, len(s.answers[dimID]))
	for qID, a := range s.answers[dimID] {
		scores[qID] = s.reg.Score(dimID, qID, a)
	}
	s.questionScores[dimID] = scores
	s.scores[dimID] = s.dimensionScore(dimID)
}

func (s *AssessmentSession) recomputeTotal() {
	total := 0.0
	for _, dimID := range s.selected {
		total += s.scores[dimID] * s.weights.DimensionWeight(dimID) / 100
	}
	s.total = total
}

func (s *AssessmentSession) dimensionState(dimID string) schema.DimensionState {
	ds := schema.DimensionState{
		Answers:         make(map[string]json.RawMessage, len(s.answers[dimID])),
		QuestionWeights: s.weights.GetWeights(dimID),
		QuestionScores:  maps.Clone(s.questionScores[dimID]),
		Score:           s.scores[dimID],
	}
	if ds.QuestionScores == nil {
		ds.QuestionScores = map[string]float64{}
	}
	for qID, a := range s.answers[dimID] {
		raw, err := a.Encode()
		if err != nil {
			continue
		}
		ds.Answers[qID] = raw
	}
	return ds
}
