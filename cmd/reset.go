package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the questionnaire in progress",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var resetAll bool

func init() {
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "also delete the prompt history")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.records.ClearSession()
	if resetAll {
		a.records.ClearPrompts()
		fmt.Println("Session and history cleared.")
		return nil
	}
	fmt.Println("Session cleared.")
	return nil
}
