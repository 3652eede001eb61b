package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/results"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show saved results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		recs, err := results.ReadFile(cfg.ResultsFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintf(out, "No results saved in %s.\n", cfg.ResultsFile)
			return nil
		}

		lipgloss.Fprintln(out, theme.Title.Render("Saved results"))
		for _, r := range recs {
			fmt.Fprintln(out, r.String())
		}
		return nil
	},
}
