package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"git.home.luguber.info/inful/crumbler/internal/build"
)

var (
	// titleStyle for the summary header
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	// dimStyle for labels
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	// boxStyle for the summary box with rounded border
	boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1)
)

func outcomeStyle(o build.Outcome) lipgloss.Style {
	switch o {
	case build.OutcomeSuccess:
		return successStyle
	case build.OutcomeWarning:
		return warningStyle
	default:
		return errorStyle
	}
}

// PrintSummary renders the end-of-run box followed by one line per failed file.
func PrintSummary(w io.Writer, rep *build.Report) {
	content := fmt.Sprintf("%s %s\n%s %d/%d  %s %d/%d  %s %d\n%s %s  %s %d  %s %s",
		titleStyle.Render("crumbler"), outcomeStyle(rep.Outcome).Render(string(rep.Outcome)),
		dimStyle.Render("Converted:"), rep.Converted, rep.Documents,
		dimStyle.Render("Copied:"), rep.Copied, rep.Assets,
		dimStyle.Render("Failed:"), rep.Failed,
		dimStyle.Render("Output:"), rep.OutputDir,
		dimStyle.Render("Warnings:"), len(rep.Warnings),
		dimStyle.Render("Took:"), rep.Duration().Truncate(time.Millisecond),
	)
	fmt.Fprintln(w, boxStyle.Render(content))

	for _, f := range rep.Files {
		if f.Status != build.StatusFailed {
			continue
		}
		fmt.Fprintf(w, "%s %s: %s\n", errorStyle.Render("✗"), f.Source, f.Error)
	}
	for _, warning := range rep.Warnings {
		fmt.Fprintf(w, "%s %s\n", warningStyle.Render("!"), warning)
	}
}
