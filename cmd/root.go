package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ccraft",
	Short: "Build structured AI prompts from guided questionnaires",
	Long: `Pick a task template, answer its questions one at a time, and generate a
prompt in a structured (markdown) or conversational style. Progress and the
last generated prompts are kept between runs.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadDotEnv,
}

var rootStore string

func init() {
	rootCmd.PersistentFlags().StringVar(&rootStore, "store", "", "storage backend override: file, sqlite, redis or memory")
}

// loadDotEnv reads .env from the working directory. Variables already set
// in the environment win.
func loadDotEnv(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
