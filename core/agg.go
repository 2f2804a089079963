package core

import (
	"slices"
	"time"

	"github.com/gacscore/gacscore/schema"
)

// DimensionScore recomputes Σ raw(q)·w(q)/100 over the dimension's questions in
// catalog order. Unanswered questions and unknown dimensions contribute 0.
func (s *AssessmentSession) DimensionScore(dimID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dimensionScore(dimID)
}

// OverallScore recomputes Σ DimensionScore·dimWeight/100 over the selected
// dimensions in selection order. Unlike GetTotalScore it ignores SetScore overrides.
func (s *AssessmentSession) OverallScore() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overallScore()
}

// BuildReport produces the full scored view of the session.
// Output writers render this and never score on their own.
func (s *AssessmentSession) BuildReport(tolerance float64) schema.AssessmentReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := schema.AssessmentReport{
		ProjectName: s.name,
		GeneratedAt: time.Now(),
		Dimensions:  make([]schema.DimensionReport, 0, len(s.reg.Dimensions())),
	}
	for _, d := range s.reg.Dimensions() {
		selected := slices.Contains(s.selected, d.ID)
		weights := s.weights.seeded(d.ID)
		dr := schema.DimensionReport{
			DimensionID: d.ID,
			Name:        d.Name,
			Selected:    selected,
			Weight:      s.weights.DimensionWeight(d.ID),
			Score:       s.dimensionScore(d.ID),
		}
		if selected {
			dr.Contribution = dr.Score * dr.Weight / 100
		}
		dr.Label = schema.GetPlainLabel(dr.Score)
		for _, m := range d.Modules {
			for _, q := range m.Questions {
				qr := schema.QuestionReport{
					DimensionID: d.ID,
					ModuleID:    m.ID,
					QuestionID:  q.ID,
					Title:       q.Title,
					Type:        q.Type,
					Scale:       q.Scale,
					Weight:      weights[q.ID],
				}
				if a, ok := s.answers[d.ID][q.ID]; ok {
					qr.Answered = true
					qr.RawScore = s.reg.Score(d.ID, q.ID, a)
					qr.Contribution = qr.RawScore * qr.Weight / 100
				}
				dr.Questions = append(dr.Questions, qr)
			}
		}
		report.Dimensions = append(report.Dimensions, dr)
	}
	report.OverallScore = s.overallScore()
	report.Label = schema.GetPlainLabel(report.OverallScore)
	report.WeightCheck = s.checkWeights(tolerance)
	return report
}

func (s *AssessmentSession) dimensionScore(dimID string) float64 {
	d := s.reg.Dimension(dimID)
	if d == nil {
		return 0
	}
	weights := s.weights.seeded(dimID)
	total := 0.0
	for _, qID := range d.QuestionIDs() {
		a, ok := s.answers[dimID][qID]
		if !ok {
			continue
		}
		total += s.reg.Score(dimID, qID, a) * weights[qID] / 100
	}
	return total
}

func (s *AssessmentSession) overallScore() float64 {
	total := 0.0
	for _, dimID := range s.selected {
		total += s.dimensionScore(dimID) * s.weights.DimensionWeight(dimID) / 100
	}
	return total
}
