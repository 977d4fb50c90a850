// Package prompt renders collected answers into prompt text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/catalog"
)

// Style selects a prompt layout.
type Style string

const (
	Structured     Style = "structured"
	Conversational Style = "conversational"
)

// Styles lists every style in display order.
var Styles = []Style{Structured, Conversational}

// StyleFromAlias resolves style aliases to canonical styles.
func StyleFromAlias(s string) (Style, error) {
	aliases := map[string]Style{
		"structured":     Structured,
		"s":              Structured,
		"markdown":       Structured,
		"md":             Structured,
		"conversational": Conversational,
		"c":              Conversational,
		"chat":           Conversational,
		"natural":        Conversational,
	}

	if style, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return style, nil
	}
	return "", fmt.Errorf("unknown style %q: use structured or conversational", s)
}

const (
	structuredInstructions = "Please provide a comprehensive response that addresses all the requirements listed above. " +
		"Ensure your output is well-structured, clear, and directly applicable to the specified context."
	conversationalClosing = "Could you please help me with this? " +
		"I'm looking for a comprehensive response that takes into account all the context I've provided above."
)

// Render produces the prompt text for the template and answers in the given
// style. Questions are visited in template order and unpopulated answers
// are omitted.
func Render(t catalog.Template, set answer.Set, style Style) (string, error) {
	switch style {
	case Structured:
		return renderStructured(t, set), nil
	case Conversational:
		return renderConversational(t, set), nil
	}
	return "", fmt.Errorf("render prompt: unknown style %q", style)
}

type detail struct {
	label string
	value string
}

func details(t catalog.Template, set answer.Set) []detail {
	var out []detail
	for _, q := range t.Questions {
		v, ok := set.Get(q.ID)
		if !ok || !v.Populated() {
			continue
		}
		out = append(out, detail{label: q.Label, value: v.Format()})
	}
	return out
}

func renderStructured(t catalog.Template, set answer.Set) string {
	lines := []string{
		"# " + t.Title + " Prompt",
		"",
		"## Task Overview",
		t.Description,
		"",
		"## Requirements",
	}
	for _, d := range details(t, set) {
		lines = append(lines, "- **"+d.label+"**: "+d.value)
	}
	lines = append(lines,
		"",
		"## Instructions",
		structuredInstructions,
	)
	return strings.Join(lines, "\n")
}

func renderConversational(t catalog.Template, set answer.Set) string {
	lines := []string{
		"I need help with " + strings.ToLower(t.Title) + ". " + t.Description,
		"",
		"Here are the details:",
	}
	for _, d := range details(t, set) {
		lines = append(lines, "- "+d.label+": "+d.value)
	}
	lines = append(lines,
		"",
		conversationalClosing,
	)
	return strings.Join(lines, "\n")
}
