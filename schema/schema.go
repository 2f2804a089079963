// Package schema has configs, models and reference types for all parts of gacscore.
package schema

// Dimension is a top-level assessment category with its own weight and question set.
// Dimensions are immutable reference data loaded once from the catalog.
type Dimension struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	DefaultWeight float64  `json:"default_weight"` // Percentage of the overall score (0-100)
	Color         string   `json:"color"`          // Presentation only
	Modules       []Module `json:"modules"`
}

// Module groups related questions under a theme. It does not affect scoring.
type Module struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Question is a single scorable input with a type and scoring method.
// Only the metadata matching Type is populated.
type Question struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Type      QuestionType  `json:"type"`
	Scale     Scale         `json:"scale"`
	Unit      string        `json:"unit,omitempty"`
	Rules     []ScoringRule `json:"rules,omitempty"`     // input
	Options   []Option      `json:"options,omitempty"`   // select, checkbox
	Fields    []FieldSpec   `json:"fields,omitempty"`    // multi-input
	Repeating bool          `json:"repeating,omitempty"` // multi-input answered as a list of records
	Formula   FormulaID     `json:"formula,omitempty"`   // multi-input
}

// ScoringRule is a half-open numeric bucket [Min, Max). A nil bound is unbounded.
type ScoringRule struct {
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Score float64  `json:"score"`
}

// Contains reports whether v falls inside the rule's interval.
func (r ScoringRule) Contains(v float64) bool {
	return (r.Min == nil || v >= *r.Min) && (r.Max == nil || v < *r.Max)
}

// Option is one choice of a select or checkbox question.
// For checkbox questions Score is a penalty deducted from 100.
type Option struct {
	Value string  `json:"value"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// FieldSpec names one numeric sub-field of a multi-input answer.
type FieldSpec struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Unit  string `json:"unit,omitempty"`
}

// QuestionKey identifies a question across the catalog. Question ids repeat
// between dimensions, so lookups must always use both parts.
type QuestionKey struct {
	DimensionID string
	QuestionID  string
}

// String returns the "dim/question" form of the key.
func (k QuestionKey) String() string {
	return k.DimensionID + "/" + k.QuestionID
}

// Questions returns all questions of the dimension in module order.
func (d *Dimension) Questions() []Question {
	var out []Question
	for _, m := range d.Modules {
		out = append(out, m.Questions...)
	}
	return out
}

// QuestionIDs returns the ids of all questions of the dimension in module order.
func (d *Dimension) QuestionIDs() []string {
	var ids []string
	for _, m := range d.Modules {
		for _, q := range m.Questions {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// Question returns the question with the given id, or nil.
func (d *Dimension) Question(id string) *Question {
	for i := range d.Modules {
		for j := range d.Modules[i].Questions {
			if d.Modules[i].Questions[j].ID == id {
				return &d.Modules[i].Questions[j]
			}
		}
	}
	return nil
}

// ModuleOf returns the module that owns the question id, or nil.
func (d *Dimension) ModuleOf(questionID string) *Module {
	for i := range d.Modules {
		for _, q := range d.Modules[i].Questions {
			if q.ID == questionID {
				return &d.Modules[i]
			}
		}
	}
	return nil
}

// Float returns a pointer to v. It keeps rule tables readable.
func Float(v float64) *float64 {
	return &v
}
