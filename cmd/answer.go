package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/catalog"
	"github.com/boozedog/contextcrafter/internal/ui"
)

var answerCmd = &cobra.Command{
	Use:   "answer [values...]",
	Short: "Answer the current question",
	Long: `Stores an answer for the current question, or for --question.
Multi-choice questions take several arguments or a comma-separated list.
Other questions join the arguments with spaces.`,
	RunE: runAnswer,
}

var (
	answerQuestion string
	answerClear    bool
)

func init() {
	answerCmd.Flags().StringVar(&answerQuestion, "question", "", "question ID (default: current question)")
	answerCmd.Flags().BoolVar(&answerClear, "clear", false, "store an empty answer")
	rootCmd.AddCommand(answerCmd)
}

func runAnswer(_ *cobra.Command, args []string) error {
	if len(args) == 0 && !answerClear {
		return errors.New("no answer given: pass a value or use --clear")
	}
	if len(args) > 0 && answerClear {
		return errors.New("--clear takes no values")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.session()
	if err != nil {
		return err
	}

	var q catalog.Question
	if answerQuestion != "" {
		var ok bool
		if q, ok = m.Template().Question(answerQuestion); !ok {
			return fmt.Errorf("unknown question %q for %s", answerQuestion, m.Template().ID)
		}
	} else {
		var ok bool
		if q, ok = m.Current(); !ok {
			return errors.New("questionnaire complete: use --question to change an answer")
		}
	}

	v := argsValue(q, args)
	wasComplete := m.IsComplete()
	if err := m.SetAnswer(q.ID, v); err != nil {
		return err
	}

	if v.Populated() {
		fmt.Printf("Saved %s: %s\n", q.Label, v.Format())
	} else {
		fmt.Printf("Cleared %s\n", q.Label)
	}
	fmt.Println(ui.Bar(m.CompletenessRatio(), 20))
	if wasComplete {
		fmt.Println("Answers changed: run 'ccraft next' to finish the questionnaire again.")
	}
	return nil
}

// argsValue builds an answer of the right shape for q from command
// arguments.
func argsValue(q catalog.Question, args []string) answer.Value {
	if !q.Kind.IsMulti() {
		return answer.Text(strings.Join(args, " "))
	}
	var items []string
	for _, arg := range args {
		for part := range strings.SplitSeq(arg, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
	}
	return answer.List(items...)
}
