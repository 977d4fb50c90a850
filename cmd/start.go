package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/ui"
	"github.com/boozedog/contextcrafter/internal/workflow"
)

var startCmd = &cobra.Command{
	Use:   "start <template-id>",
	Short: "Start a questionnaire, replacing any in progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.catalog.Get(args[0])
	if err != nil {
		return err
	}

	a.records.ClearSession()
	m := workflow.New(t)
	a.records.SaveSession(m.Snapshot())

	q, _ := m.Current()
	step, _ := ui.StepProgress(m.Position(), len(t.Questions))
	fmt.Printf("Started %s %s\n\n", t.Icon, t.Title)
	fmt.Printf("%s\n%s", step, ui.RenderQuestion(q, answer.Value{}, false))
	return nil
}
