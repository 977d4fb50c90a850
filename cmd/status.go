package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boozedog/contextcrafter/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current question and completeness",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.session()
	if err != nil {
		return err
	}
	fmt.Print(ui.RenderStatus(m))
	return nil
}
