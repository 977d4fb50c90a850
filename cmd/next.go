package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boozedog/contextcrafter/internal/ui"
	"github.com/boozedog/contextcrafter/internal/workflow"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Move to the next question",
	Args:  cobra.NoArgs,
	RunE:  runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.session()
	if err != nil {
		return err
	}

	switch m.Advance() {
	case workflow.Blocked:
		if q, ok := m.Current(); ok && !m.IsCurrentQuestionSatisfied() {
			return fmt.Errorf("%q is required: run 'ccraft answer <value>' first", q.Label)
		}
		missing := workflow.MissingRequired(m.Template(), m.Answers())
		return fmt.Errorf("cannot finish: %q is required (ccraft answer --question %s <value>)", missing[0].Label, missing[0].ID)
	case workflow.Completed:
		fmt.Println("Questionnaire complete. Run 'ccraft generate' to build the prompt.")
		return nil
	case workflow.Ignored:
		fmt.Println("Questionnaire already complete. Run 'ccraft generate' to build the prompt.")
		return nil
	}

	printCurrent(m)
	return nil
}

// printCurrent prints the step label and the current question.
func printCurrent(m *workflow.Machine) {
	q, ok := m.Current()
	if !ok {
		return
	}
	v, answered := m.Answer(q.ID)
	step, _ := ui.StepProgress(m.Position(), len(m.Template().Questions))
	fmt.Printf("%s\n%s", step, ui.RenderQuestion(q, v, answered))
}
