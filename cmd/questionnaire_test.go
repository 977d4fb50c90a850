package cmd

import (
	"strings"
	"testing"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/workflow"
)

func TestStart(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "start", "learning")
	for _, want := range []string{"Started 🎓 Learning & Explanation", "Question 1 of 4", "Topic *"} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want substring %q", out, want)
		}
	}

	s := env.session(t)
	if s.TaskType != "learning" || s.CurrentStep != 0 || s.IsComplete || len(s.Responses) != 0 {
		t.Errorf("session = %+v", s)
	}
}

func TestStartUnknownTemplate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runCmd(t, "start", "nope")
	if err == nil || !strings.Contains(err.Error(), "template not found") {
		t.Fatalf("err = %v", err)
	}
}

func TestStartReplacesSession(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "start", "learning")
	env.mustRun(t, "answer", "Go")

	env.mustRun(t, "start", "debugging")
	s := env.session(t)
	if s.TaskType != "debugging" || len(s.Responses) != 0 {
		t.Errorf("session = %+v", s)
	}
}

func TestAnswerAndNext(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "start", "learning")

	_, err := env.runCmd(t, "next")
	if err == nil || !strings.Contains(err.Error(), `"Topic" is required`) {
		t.Fatalf("next on blank required: err = %v", err)
	}

	out := env.mustRun(t, "answer", "Go", "generics")
	if !strings.Contains(out, "Saved Topic: Go generics") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "50%") {
		t.Errorf("output = %q, want half complete", out)
	}

	out = env.mustRun(t, "next")
	if !strings.Contains(out, "Question 2 of 4") || !strings.Contains(out, "( ) 1. Beginner") {
		t.Errorf("output = %q", out)
	}
	if got := env.session(t).CurrentStep; got != 1 {
		t.Errorf("step = %d, want 1", got)
	}
}

func TestAnswerMultiChoice(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "start", "learning")

	env.mustRun(t, "answer", "--question", "format", "Examples, Analogies", "Diagrams described in text")

	set := answer.FromAnswers(env.session(t).Responses)
	v, _ := set.Get("format")
	want := []string{"Examples", "Analogies", "Diagrams described in text"}
	got := v.Items()
	if len(got) != len(want) {
		t.Fatalf("format = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("format[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if env.session(t).CurrentStep != 0 {
		t.Error("answering another question should not move")
	}
}

func TestAnswerErrors(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "start", "learning")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no value", []string{"answer"}, "no answer given"},
		{"clear with value", []string{"answer", "--clear", "x"}, "--clear takes no values"},
		{"unknown question", []string{"answer", "--question", "nope", "x"}, `unknown question "nope"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.runCmd(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestAnswerClear(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "start", "learning")
	env.mustRun(t, "answer", "Go")

	out := env.mustRun(t, "answer", "--clear")
	if !strings.Contains(out, "Cleared Topic") {
		t.Errorf("output = %q", out)
	}
	v, ok := answer.FromAnswers(env.session(t).Responses).Get("topic")
	if !ok || v.Populated() {
		t.Errorf("topic = %+v, %v; want stored empty answer", v, ok)
	}
}

func TestBack(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "start", "learning")

	out := env.mustRun(t, "back")
	if !strings.Contains(out, "Already at the first question.") {
		t.Errorf("output = %q", out)
	}

	env.mustRun(t, "answer", "Go")
	env.mustRun(t, "next")
	out = env.mustRun(t, "back")
	if !strings.Contains(out, "Question 1 of 4") || !strings.Contains(out, "Answer: Go") {
		t.Errorf("output = %q", out)
	}
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "start", "learning")
	env.mustRun(t, "answer", "Go")

	out := env.mustRun(t, "status")
	for _, want := range []string{"🎓 Learning & Explanation", "Question 1 of 4", "Answer: Go", "Almost ready"} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want substring %q", out, want)
		}
	}
}

// completeLearning answers every learning question through the CLI.
func completeLearning(t *testing.T, env *testEnv) {
	t.Helper()
	env.mustRun(t, "start", "learning")
	env.mustRun(t, "answer", "Go generics")
	env.mustRun(t, "next")
	env.mustRun(t, "answer", "Intermediate")
	env.mustRun(t, "next")
	env.mustRun(t, "answer", "Examples")
	env.mustRun(t, "next")
	out := env.mustRun(t, "next")
	if !strings.Contains(out, "Questionnaire complete.") {
		t.Fatalf("output = %q", out)
	}
}

func TestGenerateGate(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "start", "learning")

	_, err := env.runCmd(t, "generate")
	if err == nil || !strings.Contains(err.Error(), "questionnaire not complete") {
		t.Fatalf("err = %v", err)
	}
	if len(env.Records.Prompts()) != 0 {
		t.Error("a blocked generate should not store a prompt")
	}
}

func TestGenerate(t *testing.T) {
	env := newTestEnv(t)
	completeLearning(t, env)

	s := env.session(t)
	if !s.IsComplete || s.CurrentStep != 3 {
		t.Fatalf("session = %+v", s)
	}

	out := env.mustRun(t, "generate")
	for _, want := range []string{
		"=== structured ===",
		"# Learning & Explanation Prompt",
		"- **Topic**: Go generics",
		"- **Explanation Format**: Examples",
		"=== conversational ===",
		"I need help with learning & explanation.",
		"- Current Knowledge Level: Intermediate",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want substring %q", out, want)
		}
	}
	if strings.Contains(out, "Why are you learning this?") {
		t.Error("unanswered optional question should be omitted")
	}

	out = env.mustRun(t, "generate", "--style", "c")
	if strings.Contains(out, "===") || !strings.HasPrefix(out, "I need help with") {
		t.Errorf("single style output = %q", out)
	}

	if got := len(env.Records.Prompts()); got != 2 {
		t.Errorf("history len = %d, want 2", got)
	}
}

func TestGenerateBadStyle(t *testing.T) {
	env := newTestEnv(t)
	completeLearning(t, env)

	if _, err := env.runCmd(t, "generate", "--style", "poem"); err == nil {
		t.Fatal("expected error for unknown style")
	}
	if len(env.Records.Prompts()) != 0 {
		t.Error("no prompt should be stored for a bad style")
	}
}

func TestAnswerAfterCompleteReopens(t *testing.T) {
	env := newTestEnv(t)
	completeLearning(t, env)

	out := env.mustRun(t, "answer", "--question", "level", "Advanced")
	if !strings.Contains(out, "run 'ccraft next' to finish") {
		t.Errorf("output = %q", out)
	}
	if env.session(t).IsComplete {
		t.Fatal("changing an answer should reopen the session")
	}
	if _, err := env.runCmd(t, "generate"); err == nil || !strings.Contains(err.Error(), "questionnaire not complete") {
		t.Fatalf("generate on reopened session: err = %v", err)
	}

	out = env.mustRun(t, "next")
	if !strings.Contains(out, "Questionnaire complete.") {
		t.Fatalf("output = %q", out)
	}
	out = env.mustRun(t, "generate", "--style", "s")
	if !strings.Contains(out, "- **Current Knowledge Level**: Advanced") {
		t.Errorf("output = %q", out)
	}
}

func TestClearedRequiredAnswerBlocksGenerate(t *testing.T) {
	env := newTestEnv(t)
	completeLearning(t, env)

	env.mustRun(t, "answer", "--question", "topic", "--clear")
	if _, err := env.runCmd(t, "generate", "--style", "s"); err == nil || !strings.Contains(err.Error(), "questionnaire not complete") {
		t.Fatalf("err = %v", err)
	}
	_, err := env.runCmd(t, "next")
	if err == nil || !strings.Contains(err.Error(), `cannot finish: "Topic" is required`) {
		t.Fatalf("next: err = %v", err)
	}
	if len(env.Records.Prompts()) != 0 {
		t.Error("no prompt should be stored")
	}
}

func TestGenerateDropsWrongShapeAnswers(t *testing.T) {
	env := newTestEnv(t)
	env.Records.SaveSession(workflow.Snapshot{
		TaskType:    "learning",
		CurrentStep: 3,
		Responses: []answer.Answer{
			{QuestionID: "topic", Value: answer.Text("Go")},
			{QuestionID: "level", Value: answer.Text("Beginner")},
			{QuestionID: "format", Value: answer.Text("Examples")},
		},
		IsComplete: true,
	})

	out := env.mustRun(t, "generate", "--style", "s")
	if !strings.Contains(out, "- **Topic**: Go") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "Explanation Format") {
		t.Error("a text value for a multi-choice question should be dropped")
	}
}

func TestNextBlockedOnMissingRequired(t *testing.T) {
	env := newTestEnv(t)
	env.Records.SaveSession(workflow.Snapshot{
		TaskType:    "learning",
		CurrentStep: 3,
		Responses:   []answer.Answer{{QuestionID: "topic", Value: answer.Text("Go")}},
	})

	_, err := env.runCmd(t, "next")
	if err == nil || !strings.Contains(err.Error(), `"Current Knowledge Level" is required`) {
		t.Fatalf("err = %v", err)
	}
	if env.session(t).IsComplete {
		t.Error("session should not complete")
	}
}
