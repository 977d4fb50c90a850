// Package answer holds the typed answer values collected by a questionnaire.
package answer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/boozedog/contextcrafter/internal/catalog"
)

// Value is either a single string or an ordered sequence of strings.
// The zero value is an empty single string.
type Value struct {
	list  bool
	text  string
	items []string
}

// Text returns a single-string value.
func Text(s string) Value {
	return Value{text: s}
}

// List returns a sequence value. The items are copied.
func List(items ...string) Value {
	c := make([]string, len(items))
	copy(c, items)
	return Value{list: true, items: c}
}

// IsList reports whether v holds a sequence.
func (v Value) IsList() bool { return v.list }

// String returns the single-string content. It is empty for sequences.
func (v Value) String() string { return v.text }

// Items returns a copy of the sequence content.
func (v Value) Items() []string {
	if !v.list {
		return nil
	}
	return slices.Clone(v.items)
}

// Clone returns a value that shares no memory with v.
func (v Value) Clone() Value {
	if v.list {
		return List(v.items...)
	}
	return v
}

// Populated reports whether the value counts as answered: a string with
// non-whitespace content, or a non-empty sequence.
func (v Value) Populated() bool {
	if v.list {
		return len(v.items) > 0
	}
	return strings.TrimSpace(v.text) != ""
}

// Format renders the value for prompt text. Sequences are joined with ", "
// in selection order; strings are returned verbatim.
func (v Value) Format() string {
	if v.list {
		return strings.Join(v.items, ", ")
	}
	return v.text
}

// Equal reports whether two values have the same shape and content.
func (v Value) Equal(o Value) bool {
	if v.list != o.list {
		return false
	}
	if v.list {
		return slices.Equal(v.items, o.items)
	}
	return v.text == o.text
}

// Fits reports whether the value shape matches the question kind.
func (v Value) Fits(k catalog.Kind) bool {
	return v.list == k.IsMulti()
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.list {
		items := v.items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(v.text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("decode answer list: %w", err)
		}
		*v = List(items...)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode answer text: %w", err)
	}
	*v = Text(s)
	return nil
}

// Answer pairs a question id with its value.
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      Value  `json:"value"`
}
