package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a prompt from the completed questionnaire",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var generateStyle string

func init() {
	generateCmd.Flags().StringVar(&generateStyle, "style", "both", "output style: structured, conversational or both")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	styles, err := parseStyles(generateStyle)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, ok := a.records.LoadSession()
	if !ok {
		return errNoSession
	}
	g, err := a.generate(s)
	if err != nil {
		return err
	}

	printPrompt(g, styles)
	fmt.Fprintf(os.Stderr, "Saved prompt %s\n", g.ID)
	return nil
}
