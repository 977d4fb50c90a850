package prompt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/catalog"
)

// ErrTemplateNotFound is returned when generating for an unknown template.
var ErrTemplateNotFound = catalog.ErrNotFound

// Generated is a rendered prompt pair and the answers it was built from.
type Generated struct {
	ID             string
	TaskType       string
	Responses      []answer.Answer
	Structured     string
	Conversational string
	CreatedAt      time.Time
}

// ByStyle returns the text for one style.
func (g Generated) ByStyle(style Style) string {
	if style == Conversational {
		return g.Conversational
	}
	return g.Structured
}

type generatedJSON struct {
	ID             string          `json:"id"`
	TaskType       string          `json:"taskType"`
	Responses      []answer.Answer `json:"responses"`
	Structured     string          `json:"structured"`
	Conversational string          `json:"conversational"`
	Timestamp      int64           `json:"timestamp"`
}

// MarshalJSON writes the creation time as Unix milliseconds.
func (g Generated) MarshalJSON() ([]byte, error) {
	responses := g.Responses
	if responses == nil {
		responses = []answer.Answer{}
	}
	return json.Marshal(generatedJSON{
		ID:             g.ID,
		TaskType:       g.TaskType,
		Responses:      responses,
		Structured:     g.Structured,
		Conversational: g.Conversational,
		Timestamp:      g.CreatedAt.UnixMilli(),
	})
}

func (g *Generated) UnmarshalJSON(data []byte) error {
	var raw generatedJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*g = Generated{
		ID:             raw.ID,
		TaskType:       raw.TaskType,
		Responses:      raw.Responses,
		Structured:     raw.Structured,
		Conversational: raw.Conversational,
		CreatedAt:      time.UnixMilli(raw.Timestamp),
	}
	return nil
}

// TemplateSource looks templates up by id.
type TemplateSource interface {
	Get(id string) (catalog.Template, error)
}

// Generator creates Generated records.
type Generator struct {
	source TemplateSource
	now    func() time.Time
	newID  func() string
}

// NewGenerator returns a generator reading templates from source.
func NewGenerator(source TemplateSource) *Generator {
	return &Generator{
		source: source,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Create renders both styles for the template and answers. The answers are
// copied into the record.
func (g *Generator) Create(templateID string, set answer.Set) (Generated, error) {
	t, err := g.source.Get(templateID)
	if err != nil {
		return Generated{}, fmt.Errorf("generate prompt: %w", err)
	}

	snapshot := set.Clone()
	structured, err := Render(t, snapshot, Structured)
	if err != nil {
		return Generated{}, err
	}
	conversational, err := Render(t, snapshot, Conversational)
	if err != nil {
		return Generated{}, err
	}

	return Generated{
		ID:             g.newID(),
		TaskType:       t.ID,
		Responses:      snapshot.Answers(t.QuestionIDs()),
		Structured:     structured,
		Conversational: conversational,
		CreatedAt:      g.now(),
	}, nil
}
