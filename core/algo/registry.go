package algo

import "github.com/gacscore/gacscore/schema"

// Registry resolves (dimension, question) pairs to their schema and scores answers.
// It is shared by interactive scoring and every reporting path.
type Registry struct {
	dims      []schema.Dimension
	dimIndex  map[string]int
	questions map[schema.QuestionKey]*schema.Question
}

// NewRegistry indexes the given dimensions. The slice is not copied and must not be mutated.
func NewRegistry(dims []schema.Dimension) *Registry {
	r := &Registry{
		dims:      dims,
		dimIndex:  make(map[string]int, len(dims)),
		questions: make(map[schema.QuestionKey]*schema.Question),
	}
	for i := range dims {
		d := &dims[i]
		r.dimIndex[d.ID] = i
		for mi := range d.Modules {
			for qi := range d.Modules[mi].Questions {
				q := &d.Modules[mi].Questions[qi]
				r.questions[schema.QuestionKey{DimensionID: d.ID, QuestionID: q.ID}] = q
			}
		}
	}
	return r
}

// Dimensions returns the indexed dimensions in catalog order.
func (r *Registry) Dimensions() []schema.Dimension {
	return r.dims
}

// Dimension returns the dimension with the given id, or nil.
func (r *Registry) Dimension(dimID string) *schema.Dimension {
	i, ok := r.dimIndex[dimID]
	if !ok {
		return nil
	}
	return &r.dims[i]
}

// Question returns the question for (dimID, qID), or nil.
func (r *Registry) Question(dimID, qID string) *schema.Question {
	return r.questions[schema.QuestionKey{DimensionID: dimID, QuestionID: qID}]
}

// Score scores an answer for (dimID, qID). Unknown keys score 0.
func (r *Registry) Score(dimID, qID string, a schema.Answer) float64 {
	return ScoreQuestion(r.Question(dimID, qID), a)
}
