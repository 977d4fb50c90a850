// Package workflow implements the questionnaire state machine: one question
// at a time, required answers gate forward movement, and the running answer
// set is reported after every mutation.
package workflow

import (
	"errors"
	"fmt"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/catalog"
)

var (
	// ErrUnknownQuestion is returned when an answer targets a question the
	// template does not define.
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrShapeMismatch is returned when an answer's shape does not match
	// the question kind.
	ErrShapeMismatch = errors.New("answer shape does not match question type")
)

// Transition is the outcome of Advance.
type Transition int

const (
	// Blocked means the current required question has no answer.
	Blocked Transition = iota
	// Moved means the position advanced to the next question.
	Moved
	// Completed means the last question was passed and the session is complete.
	Completed
	// Ignored means Advance was called from the terminal state.
	Ignored
)

func (t Transition) String() string {
	switch t {
	case Blocked:
		return "blocked"
	case Moved:
		return "moved"
	case Completed:
		return "completed"
	case Ignored:
		return "ignored"
	}
	return fmt.Sprintf("transition(%d)", int(t))
}

// Snapshot is the persisted form of a session.
type Snapshot struct {
	TaskType    string          `json:"taskType"`
	CurrentStep int             `json:"currentStep"`
	Responses   []answer.Answer `json:"responses"`
	IsComplete  bool            `json:"isComplete"`
}

// Option configures a Machine.
type Option func(*Machine)

// OnChange registers a callback that receives a snapshot after every
// answer mutation and navigation.
func OnChange(fn func(Snapshot)) Option {
	return func(m *Machine) { m.onChange = fn }
}

// OnComplete registers a callback invoked the first time the machine
// enters the terminal state with all required answers populated.
func OnComplete(fn func(Snapshot)) Option {
	return func(m *Machine) { m.onComplete = fn }
}

// Machine is the response collector for one template. It is not safe for
// concurrent use.
type Machine struct {
	tmpl      catalog.Template
	answers   answer.Set
	pos       int // 0..N; N is the terminal state
	completed bool
	signaled  bool

	onChange   func(Snapshot)
	onComplete func(Snapshot)
}

// New returns a machine at the first question with no answers.
func New(t catalog.Template, opts ...Option) *Machine {
	m := &Machine{
		tmpl:    t,
		answers: answer.Set{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Template returns the template the machine collects answers for.
func (m *Machine) Template() catalog.Template { return m.tmpl }

// Position returns the current index. It equals the question count in the
// terminal state.
func (m *Machine) Position() int { return m.pos }

// Terminal reports whether the machine is past the last question.
func (m *Machine) Terminal() bool { return m.pos >= len(m.tmpl.Questions) }

// IsComplete reports whether the session has been completed.
func (m *Machine) IsComplete() bool { return m.completed }

// Restore loads answers and the completed flag from a snapshot of the same
// template. Unknown question ids and shape mismatches are dropped, and a
// snapshot missing a required answer is not complete. The
// position is reset to the first question. It reports false, leaving the
// machine untouched, when the snapshot belongs to another template.
func (m *Machine) Restore(s Snapshot) bool {
	if s.TaskType != m.tmpl.ID {
		return false
	}

	set := answer.Set{}
	for _, a := range s.Responses {
		q, ok := m.tmpl.Question(a.QuestionID)
		if !ok || !a.Value.Fits(q.Kind) {
			continue
		}
		set[a.QuestionID] = a.Value
	}
	m.answers = set.Clone()
	m.completed = s.IsComplete && len(MissingRequired(m.tmpl, set)) == 0
	m.signaled = m.completed
	m.pos = 0
	return true
}

// Resume is Restore followed by moving to the snapshot's step, clamped to
// the question range.
func (m *Machine) Resume(s Snapshot) bool {
	if !m.Restore(s) {
		return false
	}
	m.pos = max(0, min(s.CurrentStep, len(m.tmpl.Questions)-1))
	return true
}

// Reconcile restores s against t and returns the surviving answers and
// whether the session is complete. Generation reads stored sessions through
// it so dropped and wrong-shape answers never reach a prompt.
func Reconcile(t catalog.Template, s Snapshot) (answer.Set, bool) {
	m := New(t)
	if !m.Restore(s) {
		return answer.Set{}, false
	}
	return m.Answers(), m.IsComplete()
}

// SetAnswer stores v for the question. The value is copied. Any change
// reopens a completed session: it completes again by advancing past the
// last question.
func (m *Machine) SetAnswer(questionID string, v answer.Value) error {
	q, ok := m.tmpl.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if !v.Fits(q.Kind) {
		return fmt.Errorf("%w: %s is %s", ErrShapeMismatch, questionID, q.Kind)
	}

	m.answers[questionID] = v.Clone()
	if m.completed {
		m.completed = false
		m.signaled = false
		if m.Terminal() {
			m.pos = len(m.tmpl.Questions) - 1
		}
	}
	m.emit()
	return nil
}

// Current returns the question at the current position. It reports false
// in the terminal state.
func (m *Machine) Current() (catalog.Question, bool) {
	if m.Terminal() {
		return catalog.Question{}, false
	}
	return m.tmpl.Questions[m.pos], true
}

// IsCurrentQuestionSatisfied reports whether the machine may advance from
// the current question.
func (m *Machine) IsCurrentQuestionSatisfied() bool {
	q, ok := m.Current()
	if !ok {
		return true
	}
	return Satisfied(q, m.answers)
}

// Advance moves forward one question, completing the session when it
// passes the last one. Leaving the last question also requires every
// required answer to be populated.
func (m *Machine) Advance() Transition {
	if m.Terminal() {
		return Ignored
	}
	if !m.IsCurrentQuestionSatisfied() {
		return Blocked
	}
	if m.pos == len(m.tmpl.Questions)-1 && len(MissingRequired(m.tmpl, m.answers)) > 0 {
		return Blocked
	}

	m.pos++
	if !m.Terminal() {
		m.emit()
		return Moved
	}

	m.completed = true
	m.emit()
	if !m.signaled {
		m.signaled = true
		if m.onComplete != nil {
			m.onComplete(m.Snapshot())
		}
	}
	return Completed
}

// Retreat moves back one question. It reports false at the first question.
func (m *Machine) Retreat() bool {
	if m.pos == 0 {
		return false
	}
	m.pos--
	m.emit()
	return true
}

// CompletenessRatio returns populated required answers over required
// questions.
func (m *Machine) CompletenessRatio() float64 {
	return Completeness(m.tmpl, m.answers)
}

// Answers returns a copy of the answer set.
func (m *Machine) Answers() answer.Set { return m.answers.Clone() }

// Answer returns the stored value for a question.
func (m *Machine) Answer(questionID string) (answer.Value, bool) {
	v, ok := m.answers.Get(questionID)
	if !ok {
		return answer.Value{}, false
	}
	return v.Clone(), true
}

// Snapshot returns the persisted form of the session. The step is clamped
// to the last question in the terminal state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		TaskType:    m.tmpl.ID,
		CurrentStep: max(0, min(m.pos, len(m.tmpl.Questions)-1)),
		Responses:   m.answers.Answers(m.tmpl.QuestionIDs()),
		IsComplete:  m.completed,
	}
}

func (m *Machine) emit() {
	if m.onChange != nil {
		m.onChange(m.Snapshot())
	}
}
