package theme

import (
	"fmt"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	TextDim = lipgloss.Color("#94A3B8") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Poor = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// PassThreshold is the accuracy at which a level counts as going well.
const PassThreshold = 0.8

// Accuracy renders a ratio as a percentage, Good at or above PassThreshold
// and Poor below it.
func Accuracy(ratio float64) string {
	style := Poor
	if ratio >= PassThreshold {
		style = Good
	}
	return style.Render(fmt.Sprintf("%5.1f%%", ratio*100))
}
