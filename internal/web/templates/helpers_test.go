package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/catalog"
	"github.com/boozedog/contextcrafter/internal/prompt"
)

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", time.Now().Add(-10 * time.Second), "just now"},
		{"1 minute ago", time.Now().Add(-1 * time.Minute), "1 minute ago"},
		{"5 minutes ago", time.Now().Add(-5 * time.Minute), "5 minutes ago"},
		{"1 hour ago", time.Now().Add(-1 * time.Hour), "1 hour ago"},
		{"3 hours ago", time.Now().Add(-3 * time.Hour), "3 hours ago"},
		{"yesterday", time.Now().Add(-30 * time.Hour), "yesterday"},
		{"5 days ago", time.Now().Add(-5 * 24 * time.Hour), "5 days ago"},
		{"old date falls back to format", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2025-01-01 00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := relativeTime(tt.t)
			if got != tt.want {
				t.Errorf("relativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestURLs(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"questionnaire", questionnaireURL("code-generation"), "/questionnaire/code-generation"},
		{"escaped", questionnaireURL("a b"), "/questionnaire/a%20b"},
		{"prompt", promptURL("abc"), "/history/abc"},
		{"prompt style", promptStyleURL("abc", prompt.Conversational), "/history/abc?style=conversational"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one\ntwo", 10); got != "one" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("ééééé", 3); got != "ééé…" {
		t.Errorf("firstLine = %q", got)
	}
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestQuestionnairePageEscapes(t *testing.T) {
	tmpl := catalog.Template{
		ID:    "t",
		Title: "Test",
		Questions: []catalog.Question{
			{ID: "goal", Kind: catalog.KindText, Label: "Goal <b>", Required: true},
			{ID: "tags", Kind: catalog.KindMultiSelect, Label: "Tags", Choices: []string{"a", "b"}},
		},
	}

	out := render(t, QuestionnairePage(QuestionnaireData{
		Template: tmpl,
		Question: tmpl.Questions[0],
		Value:    answer.Text(`"><script>`),
		Error:    "This question is required.",
	}))
	if strings.Contains(out, `"><script>`) {
		t.Error("answer value was not escaped")
	}
	if !strings.Contains(out, "Goal &lt;b&gt;") {
		t.Error("label was not escaped")
	}
	for _, want := range []string{"Question 1 of 2", `class="req"`, "This question is required.", `value="back" disabled`} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}

	out = render(t, QuestionnairePage(QuestionnaireData{
		Template: tmpl,
		Question: tmpl.Questions[1],
		Value:    answer.List("b"),
		Position: 1,
		Ratio:    1,
		Complete: true,
	}))
	for _, want := range []string{`type="checkbox"`, `value="b" checked`, "Finish", "Ready to generate", `href="/result"`} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(out, `value="a" checked`) {
		t.Error("unselected choice rendered as checked")
	}
}

func TestPromptPage(t *testing.T) {
	g := prompt.Generated{
		ID:             "abc",
		TaskType:       "learning",
		Structured:     "# Task: Learning\n",
		Conversational: "I need help with learning.",
		CreatedAt:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	out := render(t, PromptPage(PromptData{Prompt: g, Title: "Learning", Style: prompt.Structured, Preview: "<h1>Task: Learning</h1>"}))
	if !strings.Contains(out, "<h1>Task: Learning</h1>") {
		t.Error("preview HTML should be rendered raw")
	}
	if !strings.Contains(out, `href="/history/abc?style=conversational"`) {
		t.Error("missing style toggle")
	}

	out = render(t, PromptPage(PromptData{Prompt: g, Title: "Learning", Style: prompt.Conversational, Preview: "<h1>x</h1>"}))
	if !strings.Contains(out, "I need help with learning.") || strings.Contains(out, "Preview</h2>") {
		t.Error("conversational page should show plain text without preview")
	}
}

func TestHistoryPageEmpty(t *testing.T) {
	out := render(t, HistoryPage(HistoryData{}))
	if !strings.Contains(out, "No prompts yet") {
		t.Error("missing empty state")
	}
}
