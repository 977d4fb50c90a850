package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/catalog"
	"github.com/boozedog/contextcrafter/internal/workflow"
)

// RenderQuestion describes a question and its current answer for
// non-interactive output.
func RenderQuestion(q catalog.Question, v answer.Value, answered bool) string {
	var b strings.Builder

	label := StyleTitle.Render(q.Label)
	if q.Required {
		label += StyleError.Render(" *")
	}
	fmt.Fprintf(&b, "%s %s\n", label, StyleSubtle.Render("("+q.ID+", "+string(q.Kind)+")"))
	if q.Description != "" {
		fmt.Fprintf(&b, "%s\n", StyleSubtle.Render(q.Description))
	}

	if q.Kind.HasChoices() {
		for i, c := range q.Choices {
			open, fill, shut := "(", " ", ")"
			if q.Kind.IsMulti() {
				open, shut = "[", "]"
			}
			if answered && chosen(v, c) {
				fill = "x"
			}
			mark := open + fill + shut
			fmt.Fprintf(&b, "  %s %d. %s\n", mark, i+1, c)
		}
	} else if q.Placeholder != "" && !(answered && v.Populated()) {
		fmt.Fprintf(&b, "  %s\n", StyleSubtle.Render(q.Placeholder))
	}

	if answered && v.Populated() {
		fmt.Fprintf(&b, "Answer: %s\n", StyleAnswer.Render(v.Format()))
	}
	return b.String()
}

func chosen(v answer.Value, choice string) bool {
	if v.IsList() {
		return slices.Contains(v.Items(), choice)
	}
	return v.String() == choice
}

// RenderStatus describes the machine's position, current question and
// completeness.
func RenderStatus(m *workflow.Machine) string {
	var b strings.Builder
	t := m.Template()

	fmt.Fprintf(&b, "%s\n", StyleHeader.Render(strings.TrimSpace(t.Icon+" "+t.Title)))
	step, pct := StepProgress(m.Position(), len(t.Questions))
	fmt.Fprintf(&b, "%s  %s\n\n", step, StyleSubtle.Render(pct))

	if q, ok := m.Current(); ok {
		v, answered := m.Answer(q.ID)
		b.WriteString(RenderQuestion(q, v, answered))
		b.WriteString("\n")
	}
	if m.IsComplete() {
		fmt.Fprintf(&b, "%s\n", StyleSuccess.Render("Questionnaire complete."))
	}
	fmt.Fprintf(&b, "%s\n", Bar(m.CompletenessRatio(), 20))
	return b.String()
}
