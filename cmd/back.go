package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backCmd = &cobra.Command{
	Use:   "back",
	Short: "Move to the previous question",
	Args:  cobra.NoArgs,
	RunE:  runBack,
}

func init() {
	rootCmd.AddCommand(backCmd)
}

func runBack(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.session()
	if err != nil {
		return err
	}

	if !m.Retreat() {
		fmt.Println("Already at the first question.")
	}
	printCurrent(m)
	return nil
}
