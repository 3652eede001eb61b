package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/level"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy per level and recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.SessionRepo()
		out := cmd.OutOrStdout()

		stats, err := repo.LevelStats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Fprintln(out, "No answers recorded yet.")
			return nil
		}

		lipgloss.Fprintln(out, theme.Title.Render("Accuracy by level"))
		fmt.Fprintf(out, "%-6s  %-40s  %8s  %8s  %s\n", "Level", "Description", "Answered", "Correct", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, s := range stats {
			desc := ""
			if l, ok := level.Default().Get(s.LevelID); ok {
				desc = l.Description()
			}
			fmt.Fprintf(out, "%-6d  %-40s  %8d  %8d  ", s.LevelID, desc, s.Attempted, s.Correct)
			lipgloss.Fprintln(out, theme.Accuracy(s.Accuracy()))
		}

		sessions, err := repo.RecentSessions(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		lipgloss.Fprintln(out, theme.Title.Render("Recent sessions"))
		fmt.Fprintf(out, "%-19s  %-6s  %s\n", "Finished", "Level", "Score")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, s := range sessions {
			fmt.Fprintf(out, "%-19s  %-6d  %d/%d\n",
				s.Timestamp.Local().Format("2006-01-02 15:04:05"), s.LevelID, s.Score, s.TotalTasks)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Maximum number of recent sessions to show")
}
