package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Answer is the raw user input for one question. It is a tagged union resolved
// once when decoded against the question type.
type Answer struct {
	Kind    AnswerKind
	Text    string              // AnswerText
	Choices []string            // AnswerChoices
	Fields  map[string]string   // AnswerFields
	Rows    []map[string]string // AnswerRows
}

// TextAnswer builds an answer for input and select questions.
func TextAnswer(s string) Answer {
	return Answer{Kind: AnswerText, Text: s}
}

// ChoicesAnswer builds an answer for checkbox questions.
// Repeated values are kept once, in first-seen order.
func ChoicesAnswer(values ...string) Answer {
	choices := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(choices, v) {
			choices = append(choices, v)
		}
	}
	return Answer{Kind: AnswerChoices, Choices: choices}
}

// FieldsAnswer builds an answer for multi-input questions.
func FieldsAnswer(fields map[string]string) Answer {
	return Answer{Kind: AnswerFields, Fields: maps.Clone(fields)}
}

// RowsAnswer builds an answer for repeating multi-input questions.
func RowsAnswer(rows []map[string]string) Answer {
	cloned := make([]map[string]string, len(rows))
	for i, r := range rows {
		cloned[i] = maps.Clone(r)
	}
	return Answer{Kind: AnswerRows, Rows: cloned}
}

// IsEmpty reports whether the answer carries no input.
func (a Answer) IsEmpty() bool {
	switch a.Kind {
	case AnswerText:
		return strings.TrimSpace(a.Text) == ""
	case AnswerChoices:
		return len(a.Choices) == 0
	case AnswerFields:
		return len(a.Fields) == 0
	case AnswerRows:
		return len(a.Rows) == 0
	default:
		return true
	}
}

// Clone returns a deep copy of the answer.
func (a Answer) Clone() Answer {
	switch a.Kind {
	case AnswerChoices:
		return ChoicesAnswer(a.Choices...)
	case AnswerFields:
		return FieldsAnswer(a.Fields)
	case AnswerRows:
		return RowsAnswer(a.Rows)
	default:
		return a
	}
}

// Encode returns the persisted JSON form of the answer:
// text as a JSON string, choices as a JSON string array, and multi-input
// records as a JSON string holding the encoded object or array.
func (a Answer) Encode() (json.RawMessage, error) {
	switch a.Kind {
	case AnswerText:
		return json.Marshal(a.Text)
	case AnswerChoices:
		choices := a.Choices
		if choices == nil {
			choices = []string{}
		}
		return json.Marshal(choices)
	case AnswerFields:
		inner, err := json.Marshal(a.Fields)
		if err != nil {
			return nil, fmt.Errorf("failed to encode fields: %w", err)
		}
		return json.Marshal(string(inner))
	case AnswerRows:
		inner, err := json.Marshal(a.Rows)
		if err != nil {
			return nil, fmt.Errorf("failed to encode rows: %w", err)
		}
		return json.Marshal(string(inner))
	default:
		return json.Marshal("")
	}
}

// MarshalJSON implements json.Marshaler using Encode.
func (a Answer) MarshalJSON() ([]byte, error) {
	return a.Encode()
}

// DecodeAnswer resolves a persisted answer against the question type.
// Malformed multi-input records are returned as an error together with a
// text answer holding the raw input, which always scores 0.
func DecodeAnswer(q *Question, raw json.RawMessage) (Answer, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Answer{Kind: AnswerEmpty}, nil
	}

	switch q.Type {
	case CheckboxQuestion:
		var choices []string
		if err := json.Unmarshal(raw, &choices); err == nil {
			return ChoicesAnswer(choices...), nil
		}
		// Older files stored the array as a JSON string.
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Answer{Kind: AnswerEmpty}, fmt.Errorf("checkbox answer for %s is neither an array nor a string: %w", q.ID, err)
		}
		if strings.TrimSpace(s) == "" {
			return ChoicesAnswer(), nil
		}
		if err := json.Unmarshal([]byte(s), &choices); err != nil {
			return Answer{Kind: AnswerEmpty}, fmt.Errorf("checkbox answer for %s is not a string array: %w", q.ID, err)
		}
		return ChoicesAnswer(choices...), nil

	case MultiInputQuestion:
		text := string(raw)
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			text = s
		}
		if strings.TrimSpace(text) == "" {
			return Answer{Kind: AnswerEmpty}, nil
		}
		a, err := ParseRecord(text, q.Repeating)
		if err != nil {
			return TextAnswer(text), fmt.Errorf("multi-input answer for %s: %w", q.ID, err)
		}
		return a, nil

	default:
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return TextAnswer(s), nil
		}
		// Accept bare JSON numbers for numeric input.
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return TextAnswer(n.String()), nil
		}
		return Answer{Kind: AnswerEmpty}, fmt.Errorf("answer for %s is not a string", q.ID)
	}
}

// RowsKey is the object key holding the rows of a repeating record.
const RowsKey = "reagents"

// ParseRecord parses a multi-input JSON document into a fields or rows answer.
// Numeric values may be JSON numbers or strings. Repeating records accept a
// top-level array, an object with the rows under RowsKey or under its only
// array-valued key, or a single object taken as one row.
func ParseRecord(text string, repeating bool) (Answer, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return Answer{}, fmt.Errorf("malformed record: %w", err)
	}

	if !repeating {
		obj, ok := doc.(map[string]any)
		if !ok {
			return Answer{}, errors.New("record must be a JSON object")
		}
		return FieldsAnswer(flattenRecord(obj)), nil
	}

	var list []any
	switch v := doc.(type) {
	case []any:
		list = v
	case map[string]any:
		rows, err := recordRows(v)
		if err != nil {
			return Answer{}, err
		}
		list = rows
	default:
		return Answer{}, errors.New("rows must be a JSON array")
	}

	rows := make([]map[string]string, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return Answer{}, fmt.Errorf("row %d must be a JSON object", i)
		}
		rows = append(rows, flattenRecord(obj))
	}
	return Answer{Kind: AnswerRows, Rows: rows}, nil
}

// recordRows picks the row list out of a repeating record object.
func recordRows(obj map[string]any) ([]any, error) {
	if v, ok := obj[RowsKey]; ok {
		arr, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%q must be a JSON array", RowsKey)
		}
		return arr, nil
	}
	var arrays []string
	for _, k := range slices.Sorted(maps.Keys(obj)) {
		if _, ok := obj[k].([]any); ok {
			arrays = append(arrays, k)
		}
	}
	switch len(arrays) {
	case 0:
		return []any{obj}, nil
	case 1:
		return obj[arrays[0]].([]any), nil
	default:
		return nil, fmt.Errorf("record has several lists (%s) and no %q key", strings.Join(arrays, ", "), RowsKey)
	}
}

// flattenRecord converts decoded JSON values to their string form.
// Values that are not strings or numbers become empty strings and fail numeric parsing later.
func flattenRecord(obj map[string]any) map[string]string {
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		default:
			out[k] = ""
		}
	}
	return out
}
