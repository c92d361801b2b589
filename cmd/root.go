package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zambezi-learn/zambezi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "zambezi",
	Short: "Offline-first study companion for Zambian secondary school",
	Long:  "Zambezi: quizzes, study notes, flashcards and an AI tutor for Grades 8 to 12, with saved materials available offline.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ZAMBEZI_DB env var)")

	rootCmd.AddCommand(materialsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ZAMBEZI_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
