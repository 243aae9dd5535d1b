package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/lmgraph/pkg/landmarks"
)

// stdout receives all user-facing output. Tests swap it.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette & Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared by all commands.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// edgeStyles colour orderings by strength, strongest brightest.
var edgeStyles = map[landmarks.EdgeType]lipgloss.Style{
	landmarks.EdgeNecessary:       lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	landmarks.EdgeGreedyNecessary: lipgloss.NewStyle().Foreground(colorCyan),
	landmarks.EdgeNatural:         lipgloss.NewStyle().Foreground(colorGray),
	landmarks.EdgeReasonable:      lipgloss.NewStyle().Foreground(colorDim),
}

func renderEdgeType(t landmarks.EdgeType) string {
	if s, ok := edgeStyles[t]; ok {
		return s.Render(t.String())
	}
	return t.String()
}

// =============================================================================
// Status Lines
// =============================================================================

func printLine(icon string, style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(stdout, style.Render(icon)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) {
	printLine("✓", styleIconSuccess, format, args...)
}

func printWarning(format string, args ...any) {
	printLine("!", styleIconWarning, "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printLine("›", styleIconInfo, format, args...)
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(stdout, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printStats prints landmark, ordering and SCC counts on one line, with a
// marker telling whether rendered output came from the cache.
func printStats(landmarkCount, orderingCount, sccCount int, cached bool) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d landmarks", landmarkCount)),
		StyleDim.Render(fmt.Sprintf("%d orderings", orderingCount)),
		StyleDim.Render(fmt.Sprintf("%d sccs", sccCount)),
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}
