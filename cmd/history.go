package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/boozedog/contextcrafter/internal/persist"
	"github.com/boozedog/contextcrafter/internal/prompt"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: fmt.Sprintf("List the last %d generated prompts", persist.HistoryLimit),
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id|n>",
	Short: "Print a stored prompt by id, id prefix or list position",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored prompts",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyStyle string

func init() {
	historyShowCmd.Flags().StringVar(&historyStyle, "style", "structured", "output style: structured, conversational or both")
	historyCmd.AddCommand(historyShowCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	history := a.records.Prompts()
	if len(history) == 0 {
		fmt.Println("No prompts yet.")
		return nil
	}
	for i, g := range history {
		title := g.TaskType
		if t, ok := a.catalog.Lookup(g.TaskType); ok {
			title = t.Title
		}
		fmt.Printf("%2d. %s  %-28s %s\n", i+1, shortID(g), title, g.CreatedAt.Local().Format(time.DateTime))
	}
	return nil
}

func runHistoryShow(_ *cobra.Command, args []string) error {
	styles, err := parseStyles(historyStyle)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	g, ok := a.records.FindPrompt(args[0])
	if !ok {
		return fmt.Errorf("prompt not found: %s", args[0])
	}
	printPrompt(g, styles)
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.records.ClearPrompts()
	fmt.Println("History cleared.")
	return nil
}

func shortID(g prompt.Generated) string {
	id, _, _ := strings.Cut(g.ID, "-")
	return id
}
