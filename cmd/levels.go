package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/level"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the available levels",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		lipgloss.Fprintln(out, theme.Title.Render("Levels"))
		for _, l := range level.Default().All() {
			fmt.Fprintf(out, "%d - %s\n", l.ID, l.Description())
			lipgloss.Fprintln(out, theme.Hint.Render("    "+operationSummary(l)))
		}
	},
}

// operationSummary describes a level's operations, e.g. "operations: * + - (2 operands)".
func operationSummary(l level.Level) string {
	var parts []string
	for _, sym := range l.Symbols() {
		op, _ := l.Operation(sym)
		name := sym
		if name == "" {
			name = "square"
		}
		parts = append(parts, fmt.Sprintf("%s (%s operands)", name, op.Arity))
	}
	return "operations: " + strings.Join(parts, ", ")
}
