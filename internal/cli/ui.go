package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vukan322/ghcard/internal/core"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleError.Render("✗")+" "+fmt.Sprintf(format, args...))
}

func printSummary(w io.Writer, stats core.AccountStats, provider string) {
	fmt.Fprintln(w, styleTitle.Render("@"+stats.Login)+" "+styleDim.Render("via "+provider))

	line := func(label string, value any) {
		fmt.Fprintf(w, "  %s %s\n", styleDim.Render(fmt.Sprintf("%-12s", label)), styleNumber.Render(fmt.Sprint(value)))
	}
	line("stars", stats.Stars)
	line("featured", stats.FeaturedRepo)
	line(fmt.Sprintf("commits %d", stats.Year), stats.Commits)
	line("languages", len(stats.Languages))
}
