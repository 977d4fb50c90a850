package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"ls"},
	Short:   "List the available task templates",
	Args:    cobra.NoArgs,
	RunE:    runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, t := range a.catalog.All() {
		fmt.Printf("%-20s %s %-28s %d questions\n", t.ID, t.Icon, t.Title, len(t.Questions))
	}
	return nil
}
