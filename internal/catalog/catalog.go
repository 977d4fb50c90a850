package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotFound is returned when a template id is not in the catalog.
var ErrNotFound = errors.New("template not found")

// Kind is the input kind of a question.
type Kind string

const (
	KindText        Kind = "text"
	KindTextarea    Kind = "textarea"
	KindSelect      Kind = "select"
	KindRadio       Kind = "radio"
	KindMultiSelect Kind = "multiselect"
)

// ValidKinds is the set of all valid question kinds.
var ValidKinds = map[Kind]bool{
	KindText:        true,
	KindTextarea:    true,
	KindSelect:      true,
	KindRadio:       true,
	KindMultiSelect: true,
}

// HasChoices reports whether questions of this kind carry a choice list.
func (k Kind) HasChoices() bool {
	return k == KindSelect || k == KindRadio || k == KindMultiSelect
}

// IsMulti reports whether answers of this kind are a sequence of strings.
func (k Kind) IsMulti() bool {
	return k == KindMultiSelect
}

// Question is one input definition within a template.
type Question struct {
	ID          string   `yaml:"id" json:"id" validate:"required"`
	Kind        Kind     `yaml:"type" json:"type" validate:"required,oneof=text textarea select radio multiselect"`
	Label       string   `yaml:"label" json:"label" validate:"required"`
	Placeholder string   `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Required    bool     `yaml:"required" json:"required"`
	Choices     []string `yaml:"options,omitempty" json:"options,omitempty" validate:"omitempty,dive,required"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// Template is a named, ordered set of questions for one task category.
type Template struct {
	ID          string     `yaml:"id" json:"id" validate:"required"`
	Title       string     `yaml:"title" json:"title" validate:"required"`
	Description string     `yaml:"description" json:"description"`
	Icon        string     `yaml:"icon" json:"icon"`
	Questions   []Question `yaml:"questions" json:"questions" validate:"required,min=1,dive"`
}

// Question returns the question with the given id.
func (t Template) Question(id string) (Question, bool) {
	i := t.Index(id)
	if i < 0 {
		return Question{}, false
	}
	return t.Questions[i], true
}

// Index returns the position of the question with the given id, or -1.
func (t Template) Index(id string) int {
	return slices.IndexFunc(t.Questions, func(q Question) bool { return q.ID == id })
}

// QuestionIDs returns the question ids in presentation order.
func (t Template) QuestionIDs() []string {
	ids := make([]string, len(t.Questions))
	for i, q := range t.Questions {
		ids[i] = q.ID
	}
	return ids
}

// RequiredCount returns the number of required questions.
func (t Template) RequiredCount() int {
	n := 0
	for _, q := range t.Questions {
		if q.Required {
			n++
		}
	}
	return n
}

func (t Template) clone() Template {
	c := t
	c.Questions = make([]Question, len(t.Questions))
	for i, q := range t.Questions {
		q.Choices = slices.Clone(q.Choices)
		c.Questions[i] = q
	}
	return c
}

// Catalog is an ordered, read-only set of templates.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

// New validates the templates and builds a catalog preserving their order.
func New(templates []Template) (*Catalog, error) {
	if err := Validate(templates); err != nil {
		return nil, err
	}

	c := &Catalog{
		templates: make([]Template, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}
	for i, t := range templates {
		c.templates[i] = t.clone()
		c.byID[t.ID] = i
	}
	return c, nil
}

// Lookup returns the template with the given id.
func (c *Catalog) Lookup(id string) (Template, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Template{}, false
	}
	return c.templates[i].clone(), true
}

// Get is Lookup with a named error for unknown ids.
func (c *Catalog) Get(id string) (Template, error) {
	t, ok := c.Lookup(id)
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

// All returns every template in catalog order.
func (c *Catalog) All() []Template {
	out := make([]Template, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.clone()
	}
	return out
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}
