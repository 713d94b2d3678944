package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyos/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studyos",
	Short: "AI study assistant for medical students",
	Long: `StudyOS is a terminal study companion for medical school. Browse the topic
library, read notes per view, and ask the study assistant about whatever
is on screen.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYOS_DB env var)")
	rootCmd.PersistentFlags().StringArray("doc", nil, "Attach a PDF to a topic at start, as TOPIC=PATH (repeatable)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(weaknessCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYOS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// docAttachment is one parsed --doc flag.
type docAttachment struct {
	TopicID string
	Path    string
}

func parseDocFlags(values []string) ([]docAttachment, error) {
	docs := make([]docAttachment, 0, len(values))
	for _, v := range values {
		id, path, ok := strings.Cut(v, "=")
		id, path = strings.TrimSpace(id), strings.TrimSpace(path)
		if !ok || id == "" || path == "" {
			return nil, fmt.Errorf("invalid --doc %q: want TOPIC=PATH", v)
		}
		docs = append(docs, docAttachment{TopicID: id, Path: path})
	}
	return docs, nil
}
