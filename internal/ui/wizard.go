package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/catalog"
	"github.com/boozedog/contextcrafter/internal/workflow"
)

// ErrWizardCancelled is returned by RunWizard when the user quits early.
var ErrWizardCancelled = errors.New("wizard cancelled")

// RunWizard runs the interactive questionnaire over m until it completes
// or the user quits.
func RunWizard(m *workflow.Machine) error {
	p := tea.NewProgram(NewWizard(m))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run wizard: %w", err)
	}
	if !final.(Wizard).Completed() {
		return ErrWizardCancelled
	}
	return nil
}

// Wizard is a bubbletea model presenting one question at a time.
type Wizard struct {
	machine *workflow.Machine
	input   textinput.Model
	area    textarea.Model
	cursor  int
	hint    string
	done    bool
	quit    bool
}

// NewWizard builds a wizard positioned at the machine's current question.
func NewWizard(m *workflow.Machine) Wizard {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 60

	ta := textarea.New()
	ta.SetWidth(60)
	ta.SetHeight(5)
	ta.ShowLineNumbers = false

	w := Wizard{machine: m, input: ti, area: ta}
	w.load()
	return w
}

// Completed reports whether the questionnaire finished.
func (w Wizard) Completed() bool { return w.done }

// Cancelled reports whether the user quit before finishing.
func (w Wizard) Cancelled() bool { return w.quit }

func (w Wizard) Init() tea.Cmd {
	return textinput.Blink
}

// load syncs the input widgets with the current question's stored answer.
func (w *Wizard) load() {
	w.hint = ""
	w.cursor = 0
	w.input.Blur()
	w.area.Blur()

	q, ok := w.machine.Current()
	if !ok {
		return
	}
	v, _ := w.machine.Answer(q.ID)

	switch q.Kind {
	case catalog.KindText:
		w.input.Placeholder = q.Placeholder
		w.input.SetValue(v.String())
		w.input.CursorEnd()
		w.input.Focus()
	case catalog.KindTextarea:
		w.area.Placeholder = q.Placeholder
		w.area.SetValue(v.String())
		w.area.Focus()
	case catalog.KindSelect, catalog.KindRadio:
		if i := slices.Index(q.Choices, v.String()); i >= 0 {
			w.cursor = i
		}
	}
}

func (w Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return w.updateInputs(msg)
	}

	q, ok := w.machine.Current()
	if !ok {
		w.done = true
		return w, tea.Quit
	}

	switch key.String() {
	case "ctrl+c", "esc":
		w.quit = true
		return w, tea.Quit
	case "shift+tab":
		if !w.commitText(q) {
			return w, nil
		}
		if w.machine.Retreat() {
			w.load()
		}
		return w, nil
	case "tab":
		if !w.commitText(q) {
			return w, nil
		}
		return w.advance()
	}

	switch q.Kind {
	case catalog.KindText:
		if key.Type == tea.KeyEnter {
			if !w.commitText(q) {
				return w, nil
			}
			return w.advance()
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		w.commitText(q)
		return w, cmd

	case catalog.KindTextarea:
		var cmd tea.Cmd
		w.area, cmd = w.area.Update(msg)
		w.commitText(q)
		return w, cmd
	}

	// Choice kinds.
	switch key.String() {
	case "up", "k":
		if w.cursor > 0 {
			w.cursor--
		}
	case "down", "j":
		if w.cursor < len(q.Choices)-1 {
			w.cursor++
		}
	case " ", "space":
		w.pick(q)
	case "enter":
		if !q.Kind.IsMulti() && !w.pick(q) {
			return w, nil
		}
		return w.advance()
	}
	return w, nil
}

func (w Wizard) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var c1, c2 tea.Cmd
	w.input, c1 = w.input.Update(msg)
	w.area, c2 = w.area.Update(msg)
	return w, tea.Batch(c1, c2)
}

// commitText stores the text widget's content when it differs from the
// stored answer. It reports false when the answer was rejected.
func (w *Wizard) commitText(q catalog.Question) bool {
	var text string
	switch q.Kind {
	case catalog.KindText:
		text = w.input.Value()
	case catalog.KindTextarea:
		text = w.area.Value()
	default:
		return true
	}
	cur, ok := w.machine.Answer(q.ID)
	if (ok && cur.String() == text) || (!ok && text == "") {
		return true
	}
	return w.store(q.ID, answer.Text(text))
}

// pick selects the choice under the cursor. Multi-choice toggles it,
// keeping the other selections in the order they were made.
func (w *Wizard) pick(q catalog.Question) bool {
	choice := q.Choices[w.cursor]
	if !q.Kind.IsMulti() {
		return w.store(q.ID, answer.Text(choice))
	}

	cur, _ := w.machine.Answer(q.ID)
	items := cur.Items()
	if i := slices.Index(items, choice); i >= 0 {
		items = slices.Delete(items, i, i+1)
	} else {
		items = append(items, choice)
	}
	return w.store(q.ID, answer.List(items...))
}

// store sets the answer, showing a rejection as the hint.
func (w *Wizard) store(id string, v answer.Value) bool {
	if err := w.machine.SetAnswer(id, v); err != nil {
		w.hint = "Answer not saved: " + err.Error()
		return false
	}
	return true
}

func (w Wizard) advance() (tea.Model, tea.Cmd) {
	switch w.machine.Advance() {
	case workflow.Blocked:
		w.hint = "This question is required."
		if missing := workflow.MissingRequired(w.machine.Template(), w.machine.Answers()); len(missing) > 0 {
			if q, _ := w.machine.Current(); missing[0].ID != q.ID {
				w.hint = fmt.Sprintf("Answer %q before finishing.", missing[0].Label)
			}
		}
		return w, nil
	case workflow.Completed, workflow.Ignored:
		w.done = true
		return w, tea.Quit
	}
	w.load()
	return w, nil
}

func (w Wizard) View() string {
	t := w.machine.Template()
	var b strings.Builder

	b.WriteString("\n" + StyleHeader.Render(strings.TrimSpace(t.Icon+" "+t.Title)) + "\n")
	step, pct := StepProgress(w.machine.Position(), len(t.Questions))
	b.WriteString(StyleSubtle.Render(step+" • "+pct) + "\n\n")

	q, ok := w.machine.Current()
	if !ok {
		b.WriteString(StyleSuccess.Render("Questionnaire complete.") + "\n")
		return b.String()
	}

	label := StyleTitle.Render(q.Label)
	if q.Required {
		label += StyleError.Render(" *")
	}
	b.WriteString(label + "\n")
	if q.Description != "" {
		b.WriteString(StyleSubtle.Render(q.Description) + "\n")
	}
	b.WriteString("\n")

	help := "enter next • shift+tab back • esc quit"
	switch q.Kind {
	case catalog.KindText:
		b.WriteString(w.input.View() + "\n")
	case catalog.KindTextarea:
		b.WriteString(w.area.View() + "\n")
		help = "tab next • shift+tab back • esc quit"
	default:
		v, _ := w.machine.Answer(q.ID)
		for i, c := range q.Choices {
			cursor := "  "
			style := StyleChoiceNormal
			if i == w.cursor {
				cursor = "▶ "
				style = StyleChoiceActive
			}
			mark := ""
			if q.Kind.IsMulti() {
				mark = "[ ] "
				if chosen(v, c) {
					mark = "[x] "
				}
			} else if chosen(v, c) {
				mark = "• "
			}
			b.WriteString(cursor + style.Render(mark+c) + "\n")
		}
		if q.Kind.IsMulti() {
			help = "↑/↓ move • space toggle • enter next • shift+tab back • esc quit"
		} else {
			help = "↑/↓ move • enter select • shift+tab back • esc quit"
		}
	}

	switch {
	case w.hint != "":
		b.WriteString("\n" + StyleWarning.Render(w.hint) + "\n")
	case !w.machine.IsCurrentQuestionSatisfied():
		b.WriteString("\n" + StyleSubtle.Render("Required: answer to continue.") + "\n")
	}
	b.WriteString("\n" + Bar(w.machine.CompletenessRatio(), 20) + "\n")
	b.WriteString(StyleSubtle.Render(help) + "\n")
	return b.String()
}
