package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boozedog/contextcrafter/internal/ui"
	"github.com/boozedog/contextcrafter/internal/workflow"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard [template-id]",
	Short: "Answer a questionnaire interactively",
	Long: `Opens an interactive questionnaire. With a template id it resumes a stored
session for that template or starts a new one. Without one it resumes the
stored session. Quitting keeps progress; finishing generates the prompt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWizard,
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var m *workflow.Machine
	if len(args) == 0 {
		if m, err = a.session(); err != nil {
			return err
		}
	} else {
		t, err := a.catalog.Get(args[0])
		if err != nil {
			return err
		}
		m = workflow.New(t, workflow.OnChange(a.records.SaveSession))
		if s, ok := a.records.LoadSessionFor(t.ID); ok {
			m.Resume(s)
		} else {
			a.records.ClearSession()
			a.records.SaveSession(m.Snapshot())
		}
	}

	if err := ui.RunWizard(m); err != nil {
		if errors.Is(err, ui.ErrWizardCancelled) {
			fmt.Fprintln(os.Stderr, "Progress saved. Run 'ccraft wizard' to continue.")
			return nil
		}
		return err
	}

	g, err := a.generate(m.Snapshot())
	if err != nil {
		return err
	}
	fmt.Println(ui.StylePromptBox.Render(g.Structured))
	fmt.Fprintf(os.Stderr, "Saved prompt %s. Run 'ccraft history show 1 --style c' for the conversational version.\n", g.ID)
	return nil
}
